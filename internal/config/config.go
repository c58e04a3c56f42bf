// Package config loads the bot's run configuration: the game server to
// connect to, how long the search gets per turn, and where the spectator
// monitor listens. Values come from an optional YAML file, overridable by
// command-line flags.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is everything cmd/cartobot needs to start a game.
type Config struct {
	ServerURL     string        `yaml:"serverUrl"`
	SearchBudget  time.Duration `yaml:"searchBudget"`
	MonitorListen string        `yaml:"monitorListen"`
}

// Default returns the configuration used when no file and no flags
// override anything: a local game server and a two-second search budget,
// matching the reference bot's hardcoded Duration::from_secs(2).
func Default() Config {
	return Config{
		ServerURL:     "ws://localhost:3000/socket.io/?EIO=4&transport=websocket",
		SearchBudget:  2 * time.Second,
		MonitorListen: ":8090",
	}
}

// rawConfig mirrors Config but keeps the search budget as the duration
// string yaml.v3 actually understands ("5s", "500ms"); Load parses it into
// the real Config.SearchBudget afterwards.
type rawConfig struct {
	ServerURL     string `yaml:"serverUrl"`
	SearchBudget  string `yaml:"searchBudget"`
	MonitorListen string `yaml:"monitorListen"`
}

// Load reads path as YAML over top of Default(), returning Default()
// unchanged if path is empty.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: reading %s", path)
	}

	raw := rawConfig{ServerURL: cfg.ServerURL, SearchBudget: cfg.SearchBudget.String(), MonitorListen: cfg.MonitorListen}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, errors.Wrapf(err, "config: parsing %s", path)
	}

	budget, err := time.ParseDuration(raw.SearchBudget)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: parsing searchBudget %q", raw.SearchBudget)
	}

	return Config{ServerURL: raw.ServerURL, SearchBudget: budget, MonitorListen: raw.MonitorListen}, nil
}
