package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsToEveryRegisteredClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := &Client{hub: hub, send: make(chan []byte, 8)}
	c2 := &Client{hub: hub, send: make(chan []byte, 8)}

	hub.register <- c1
	hub.register <- c2

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, time.Millisecond)

	msg := []byte(`{"season":"spring"}`)
	hub.BroadcastMessage(msg)

	for _, c := range []*Client{c1, c2} {
		select {
		case got := <-c.send:
			assert.Equal(t, msg, got)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for broadcast message")
		}
	}

	hub.unregister <- c1
	hub.unregister <- c2
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, time.Millisecond)
}

func TestHubDropsSlowClientInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := &Client{hub: hub, send: make(chan []byte)} // unbuffered, nobody reads it
	hub.register <- slow
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, time.Millisecond)

	hub.BroadcastMessage([]byte("first"))

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, time.Millisecond)
}
