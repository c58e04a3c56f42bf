package monitor

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"k8s.io/klog/v2"
)

// Snapshot is the latest turn decision published for spectators: enough to
// render "what did the bot just do and why" without replaying the search.
type Snapshot struct {
	ConnectionID       string    `json:"connectionId"`
	Season             string    `json:"season"`
	Card               string    `json:"card"`
	Terrain            string    `json:"terrain"`
	Cells              []int     `json:"cells"`
	PositionsEvaluated uint32    `json:"positionsEvaluated"`
	DepthReached       uint32    `json:"depthReached"`
	DecidedAt          time.Time `json:"decidedAt"`
}

// Server wires a Hub and the latest Snapshot behind a small HTTP surface:
// /healthz (liveness), /stats (latest Snapshot as JSON), /watch (a
// websocket stream of every Snapshot as it's published).
type Server struct {
	hub *Hub

	mu       sync.RWMutex
	latest   Snapshot
	hasState bool
}

// NewServer builds a Server. Call Run (in its own goroutine) before serving.
func NewServer() *Server {
	return &Server{hub: NewHub()}
}

// Run starts the underlying hub loop; blocks until the process exits.
func (s *Server) Run() {
	s.hub.Run()
}

// Publish records snapshot as the latest decision and broadcasts it to any
// connected spectators.
func (s *Server) Publish(snapshot Snapshot) {
	s.mu.Lock()
	s.latest = snapshot
	s.hasState = true
	s.mu.Unlock()

	payload, err := json.Marshal(snapshot)
	if err != nil {
		klog.Warningf("monitor: failed to marshal snapshot: %v", err)
		return
	}
	s.hub.BroadcastMessage(payload)
}

// Router builds the HTTP router for this Server.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if !s.hasState {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.latest)
	})

	router.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		ServeWs(s.hub, w, r)
	})

	return router
}

// ListenAndServe starts the HTTP server on addr; blocks until it exits.
func (s *Server) ListenAndServe(addr string) error {
	klog.Infof("monitor: listening on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}
