package driver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/lukev/cartobot/internal/protocol"
)

// fakeServer is a minimal Engine.IO/Socket.IO v4 peer good enough to drive
// a Bot through one full game: it performs the open/connect handshake,
// lets the test script scripted events at its own pace, and records every
// event the bot sends back.
type fakeServer struct {
	httpServer *httptest.Server
	conn       *gws.Conn
	received   chan wireEvent
}

type wireEvent struct {
	name string
	data json.RawMessage
}

var upgrader = gws.Upgrader{}

func newFakeServer(t *testing.T) *fakeServer {
	fs := &fakeServer{received: make(chan wireEvent, 64)}

	mux := http.NewServeMux()
	mux.HandleFunc("/socket.io/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		fs.conn = conn

		require.NoError(t, conn.WriteMessage(gws.TextMessage, []byte("0{}")))

		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		require.Equal(t, "40", string(msg))
		require.NoError(t, conn.WriteMessage(gws.TextMessage, []byte("40")))

		go fs.drainIncoming(t)
	})
	fs.httpServer = httptest.NewServer(mux)
	return fs
}

func (fs *fakeServer) drainIncoming(t *testing.T) {
	for {
		_, msg, err := fs.conn.ReadMessage()
		if err != nil {
			return
		}
		body := string(msg)
		if !strings.HasPrefix(body, "42") {
			continue
		}
		var elems []json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(body[2:]), &elems))
		var name string
		require.NoError(t, json.Unmarshal(elems[0], &name))
		var data json.RawMessage
		if len(elems) > 1 {
			data = elems[1]
		}
		fs.received <- wireEvent{name: name, data: data}
	}
}

func (fs *fakeServer) emit(t *testing.T, event string, payload interface{}) {
	arg, err := json.Marshal(payload)
	require.NoError(t, err)
	msg := fmt.Sprintf(`2["%s",%s]`, event, arg)
	require.NoError(t, fs.conn.WriteMessage(gws.TextMessage, []byte("4"+msg)))
}

func (fs *fakeServer) awaitEvent(t *testing.T, name string) wireEvent {
	t.Helper()
	for {
		select {
		case ev := <-fs.received:
			if ev.name == name {
				return ev
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for event %q", name)
		}
	}
}

func (fs *fakeServer) wsURL() string {
	return "ws" + strings.TrimPrefix(fs.httpServer.URL, "http") + "/socket.io/?EIO=4&transport=websocket"
}

func (fs *fakeServer) close() {
	if fs.conn != nil {
		fs.conn.Close()
	}
	fs.httpServer.Close()
}

func TestBotPlaysASingleTurnAndReportsFinishTurn(t *testing.T) {
	fs := newFakeServer(t)
	defer fs.close()

	conn, err := protocol.Connect(fs.wsURL())
	require.NoError(t, err)
	defer conn.Close()

	bot := New(conn, nil, nil, nil, 50*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- bot.Run() }()

	fs.awaitEvent(t, "enterGame")
	fs.awaitEvent(t, "startGame")

	fs.emit(t, "newDegrees", []map[string]string{
		{"card": "wald1"}, {"card": "wasser1"}, {"card": "dorf1"}, {"card": "distanz1"},
	})

	allEmpty := make([]map[string]string, 121)
	for i := range allEmpty {
		allEmpty[i] = map[string]string{"landscape": "EMPTY"}
	}
	for _, idx := range []int{14, 30, 60, 90, 106} {
		allEmpty[idx] = map[string]string{"landscape": "MOUNTAIN"}
	}
	for _, idx := range []int{16, 23, 31, 89, 97, 104} {
		allEmpty[idx] = map[string]string{"landscape": "Ruin"}
	}

	fs.emit(t, "newTurn", map[string]interface{}{
		"playerId":    "p1",
		"fields":      allEmpty,
		"usedCards":   []map[string]string{},
		"exploreCard": map[string]string{"name": "ackerland"},
	})

	finish := fs.awaitEvent(t, "finishTurn")
	var payload struct {
		PlayerID string            `json:"playerId"`
		Fields   map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(finish.data, &payload))
	require.Equal(t, "p1", payload.PlayerID)
	require.NotEmpty(t, payload.Fields)

	fs.emit(t, "finalScoring", 42)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("bot.Run did not return after finalScoring")
	}
}

func TestBotAbortsOnUnknownDegreeCard(t *testing.T) {
	fs := newFakeServer(t)
	defer fs.close()

	conn, err := protocol.Connect(fs.wsURL())
	require.NoError(t, err)
	defer conn.Close()

	bot := New(conn, nil, nil, nil, 50*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- bot.Run() }()

	fs.awaitEvent(t, "enterGame")
	fs.awaitEvent(t, "startGame")

	fs.emit(t, "newDegrees", []map[string]string{
		{"card": "notARealCard"}, {"card": "wasser1"}, {"card": "dorf1"}, {"card": "distanz1"},
	})

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("bot.Run did not abort on an unknown degree card")
	}
}

func TestBotAbortsOnRejectedTurn(t *testing.T) {
	fs := newFakeServer(t)
	defer fs.close()

	conn, err := protocol.Connect(fs.wsURL())
	require.NoError(t, err)
	defer conn.Close()

	bot := New(conn, nil, nil, nil, 50*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- bot.Run() }()

	fs.awaitEvent(t, "enterGame")
	fs.awaitEvent(t, "startGame")

	fs.emit(t, "newDegrees", []map[string]string{
		{"card": "wald1"}, {"card": "wasser1"}, {"card": "dorf1"}, {"card": "distanz1"},
	})

	allEmpty := make([]map[string]string, 121)
	for i := range allEmpty {
		allEmpty[i] = map[string]string{"landscape": "EMPTY"}
	}
	for _, idx := range []int{14, 30, 60, 90, 106} {
		allEmpty[idx] = map[string]string{"landscape": "MOUNTAIN"}
	}
	for _, idx := range []int{16, 23, 31, 89, 97, 104} {
		allEmpty[idx] = map[string]string{"landscape": "Ruin"}
	}

	fs.emit(t, "newTurn", map[string]interface{}{
		"playerId":    "p1",
		"fields":      allEmpty,
		"usedCards":   []map[string]string{},
		"exploreCard": map[string]string{"name": "ackerland"},
	})

	fs.awaitEvent(t, "finishTurn")
	fs.emit(t, "receivedTurn", false)

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("bot.Run did not abort on a rejected turn")
	}
}
