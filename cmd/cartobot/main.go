// Command cartobot connects to a running game server and plays a single
// game automatically, picking each turn's placement via expectimax search.
package main

import (
	"flag"

	"k8s.io/klog/v2"

	"github.com/lukev/cartobot/internal/config"
	"github.com/lukev/cartobot/internal/driver"
	"github.com/lukev/cartobot/internal/monitor"
	"github.com/lukev/cartobot/internal/protocol"
	"github.com/lukev/cartobot/internal/telemetry"
	"github.com/lukev/cartobot/internal/ui"
)

var (
	flagConfig       = flag.String("config", "", "Path to a YAML config file; flags below override its values.")
	flagServer       = flag.String("server", "", "Game server websocket URL, e.g. ws://localhost:3000/socket.io/?EIO=4&transport=websocket")
	flagSearchBudget = flag.Duration("search_budget", 0, "Wall-clock budget for each turn's search, e.g. 2s")
	flagMonitorAddr  = flag.String("monitor_listen", "", "Address for the spectator HTTP/websocket monitor, e.g. :8090")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		klog.Fatalf("cartobot: %v", err)
	}
	if *flagServer != "" {
		cfg.ServerURL = *flagServer
	}
	if *flagSearchBudget != 0 {
		cfg.SearchBudget = *flagSearchBudget
	}
	if *flagMonitorAddr != "" {
		cfg.MonitorListen = *flagMonitorAddr
	}

	mon := monitor.NewServer()
	go mon.Run()
	go func() {
		if err := mon.ListenAndServe(cfg.MonitorListen); err != nil {
			klog.Warningf("cartobot: monitor server stopped: %v", err)
		}
	}()

	log, err := telemetry.Open()
	if err != nil {
		klog.Fatalf("cartobot: %v", err)
	}
	defer log.Close()

	klog.Infof("cartobot: connecting to %s", cfg.ServerURL)
	conn, err := protocol.Connect(cfg.ServerURL)
	if err != nil {
		klog.Fatalf("cartobot: %v", err)
	}
	defer conn.Close()

	bot := driver.New(conn, mon, log, ui.New(), cfg.SearchBudget)
	if err := bot.Run(); err != nil {
		klog.Fatalf("cartobot: %v", err)
	}
}
