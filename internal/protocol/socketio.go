// Package protocol implements the Engine.IO v4 / Socket.IO v4 framing used
// to talk to the game server over a plain WebSocket, and the event
// payloads the bot actually needs to understand.
package protocol

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// Engine.IO packet type prefixes.
const (
	engineIOOpen    = '0'
	engineIOClose   = '1'
	engineIOPing    = '2'
	engineIOPong    = '3'
	engineIOMessage = '4'
	engineIONoop    = '6'
)

// Socket.IO packet type prefixes (carried inside an Engine.IO message packet).
const (
	socketIOConnect = '0'
	socketIOEvent   = '2'
)

// Conn is a Socket.IO v4 connection over a raw WebSocket, the transport
// the game server speaks. Every method is synchronous and meant to be
// driven by a single goroutine (the driver's event loop), matching the
// blocking request/response style of the reference client this is
// grounded on.
type Conn struct {
	ws *websocket.Conn
}

// Connect dials url, performs the Engine.IO open handshake and the
// Socket.IO connect handshake, and returns a ready-to-use Conn.
func Connect(url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "protocol: dial")
	}

	c := &Conn{ws: ws}

	t, _, err := c.readEngineIOPacket()
	if err != nil {
		return nil, errors.Wrap(err, "protocol: engine.io handshake")
	}
	if t != engineIOOpen {
		return nil, errors.Errorf("protocol: expected engine.io open packet, got type %q", t)
	}

	if err := c.writeSocketIOPacket(string(socketIOConnect)); err != nil {
		return nil, errors.Wrap(err, "protocol: socket.io connect")
	}

	t, _, err = c.readSocketIOPacket()
	if err != nil {
		return nil, errors.Wrap(err, "protocol: socket.io connect handshake")
	}
	if t != socketIOConnect {
		return nil, errors.Errorf("protocol: expected socket.io connect ack, got type %q", t)
	}

	return c, nil
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.ws.Close()
}

func (c *Conn) readRawMessage() (string, error) {
	msgType, data, err := c.ws.ReadMessage()
	if err != nil {
		return "", err
	}
	if msgType != websocket.TextMessage {
		return "", errors.Errorf("protocol: unexpected websocket message type %d", msgType)
	}
	return string(data), nil
}

func (c *Conn) writeRawMessage(msg string) error {
	return c.ws.WriteMessage(websocket.TextMessage, []byte(msg))
}

func (c *Conn) readEngineIOPacket() (byte, string, error) {
	msg, err := c.readRawMessage()
	if err != nil {
		return 0, "", err
	}
	if len(msg) == 0 {
		return 0, "", errors.New("protocol: empty engine.io packet")
	}
	return msg[0], msg[1:], nil
}

func (c *Conn) writeEngineIOPacket(msg string) error {
	return c.writeRawMessage(msg)
}

// readSocketIOPacket reads Engine.IO packets, transparently answering
// pings and discarding noops, until a Socket.IO message packet arrives.
func (c *Conn) readSocketIOPacket() (byte, string, error) {
	for {
		t, msg, err := c.readEngineIOPacket()
		if err != nil {
			return 0, "", err
		}

		switch t {
		case engineIOPing:
			if err := c.writeEngineIOPacket(string(engineIOPong)); err != nil {
				return 0, "", errors.Wrap(err, "protocol: pong")
			}
		case engineIOMessage:
			if len(msg) == 0 {
				return 0, "", errors.New("protocol: empty socket.io packet")
			}
			return msg[0], msg[1:], nil
		case engineIONoop:
			// ignored
		default:
			return 0, "", errors.Errorf("protocol: unexpected engine.io packet type %q", t)
		}
	}
}

func (c *Conn) writeSocketIOPacket(msg string) error {
	return c.writeEngineIOPacket(string(engineIOMessage) + msg)
}

// ReadEvent blocks for the next Socket.IO event packet and returns its
// event name and first data argument's raw JSON (nil if the event carried
// no argument).
func (c *Conn) ReadEvent() (string, json.RawMessage, error) {
	t, payload, err := c.readSocketIOPacket()
	if err != nil {
		return "", nil, err
	}
	if t != socketIOEvent {
		return "", nil, errors.Errorf("protocol: unexpected socket.io packet type %q", t)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &elems); err != nil {
		return "", nil, errors.Wrapf(err, "protocol: parsing event payload %q", payload)
	}
	if len(elems) == 0 {
		return "", nil, errors.New("protocol: event payload has no event name")
	}

	var event string
	if err := json.Unmarshal(elems[0], &event); err != nil {
		return "", nil, errors.Wrap(err, "protocol: event name is not a string")
	}

	if len(elems) < 2 {
		return event, nil, nil
	}
	return event, elems[1], nil
}

// WriteEvent sends a Socket.IO event, JSON-marshaling arg as the event's
// single data argument. Pass nil for an event with no argument.
func (c *Conn) WriteEvent(event string, arg interface{}) error {
	var elems []interface{}
	if arg == nil {
		elems = []interface{}{event}
	} else {
		elems = []interface{}{event, arg}
	}

	payload, err := json.Marshal(elems)
	if err != nil {
		return errors.Wrapf(err, "protocol: marshaling event %q", event)
	}

	return c.writeSocketIOPacket(string(socketIOEvent) + string(payload))
}
