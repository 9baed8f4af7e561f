package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"setgame/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Client is one websocket connection to a session hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// connID is the id the socket was opened with. It never changes, so the
	// pumps may log it.
	connID string

	// ClientID and joined belong to the hub goroutine. A join message may
	// replace ClientID.
	ClientID string
	joined   bool
}

func NewClient(hub *Hub, conn *websocket.Conn, clientID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		connID:   clientID,
		ClientID: clientID,
	}
}

func (c *Client) keepAlive() {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
}

// forward hands env to the hub. It reports false once the hub has stopped.
func (c *Client) forward(env protocol.Envelope) bool {
	select {
	case c.hub.incoming <- IncomingMessage{Client: c, Envelope: env}:
		return true
	case <-c.hub.quit:
		return false
	}
}

func (c *Client) detach() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.quit:
	}
	c.conn.Close()
}

// ReadPump decodes frames from the socket and forwards them to the hub
// until the connection fails or the hub stops.
func (c *Client) ReadPump() {
	defer c.detach()
	c.keepAlive()

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error (conn %s): %v", c.connID, err)
			}
			return
		}
		var env protocol.Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			log.Printf("ws parse error (conn %s): %v", c.connID, err)
			continue
		}
		if !c.forward(env) {
			return
		}
	}
}

func (c *Client) write(kind int, data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(kind, data)
}

// WritePump drains the send queue onto the socket and keeps the connection
// alive with pings. It exits when the hub closes the queue.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		var err error
		select {
		case data, ok := <-c.send:
			if !ok {
				c.write(websocket.CloseMessage, nil)
				return
			}
			err = c.write(websocket.TextMessage, data)
		case <-ticker.C:
			err = c.write(websocket.PingMessage, nil)
		}
		if err != nil {
			return
		}
	}
}

// enqueue drops data rather than block the hub on a slow reader. Only the
// hub goroutine calls it, since that goroutine also closes send.
func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		log.Printf("client %s send buffer full, dropping message", c.ClientID)
	}
}

// SendEnvelope queues a typed message for this client.
func (c *Client) SendEnvelope(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("marshal %s: %v", env.Type, err)
		return
	}
	c.enqueue(data)
}

// IncomingMessage pairs a message with its source client.
type IncomingMessage struct {
	Client   *Client
	Envelope protocol.Envelope
}
