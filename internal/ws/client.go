package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"envio-courier-tracking/internal/logx"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	sendBufferSize = 256
)

// Command is an inbound client message steering its tracking session.
type Command struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// Command types understood by the read loop.
const (
	CommandSelect  = "select"
	CommandRefresh = "refresh"
)

// Client is one WebSocket subscriber.
type Client struct {
	ID     string
	conn   *websocket.Conn
	send   chan []byte
	logger logx.Logger
}

func NewClient(id string, conn *websocket.Conn, logger logx.Logger) *Client {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Client{
		ID:     id,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: logger,
	}
}

// Send queues a message for delivery. Returns false when the buffer is full.
func (c *Client) Send(message []byte) bool {
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// WritePump drains the send channel onto the connection and keeps the
// connection alive with pings. It returns when the send channel is closed
// or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debug("ws write failed",
					logx.String("client_id", c.ID),
					logx.Any("err", err),
				)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump consumes inbound frames, refreshing the read deadline on pongs,
// and hands decoded commands to onCommand. It returns when the connection
// drops. Unparseable frames are ignored.
func (c *Client) ReadPump(onCommand func(Command)) {
	defer c.conn.Close()

	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil || cmd.Type == "" {
			continue
		}
		if onCommand != nil {
			onCommand(cmd)
		}
	}
}
