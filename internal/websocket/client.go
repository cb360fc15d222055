package websocket

import (
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"

	"interview-insights-be/pkg/debounce"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // drafts carry whole transcripts
)

// inboundFrame is what the UI sends over the socket. Currently only draft
// frames: transcript text as the user types it.
type inboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan []byte

	// Trailing-edge debouncer for draft validation. Created on the first
	// draft frame, so validation is only armed once the user has typed.
	debouncer *debounce.Debouncer
}

// readPump pumps messages from the websocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		if c.debouncer != nil {
			c.debouncer.Stop()
		}
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Hub", "Unexpected websocket close", map[string]interface{}{"error": err.Error()})
			}
			break
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		if frame.Type == "draft" {
			c.handleDraft(frame.Text)
		}
	}
}

// handleDraft coalesces keystroke bursts: only the last draft within the
// debounce window gets validated, and the findings are pushed back to this
// client only.
func (c *Client) handleDraft(text string) {
	if c.debouncer == nil {
		c.debouncer = debounce.New(debounce.DefaultDelay)
	}

	c.debouncer.Call(func() {
		findings := c.Hub.validateDraft(text)
		payload, err := json.Marshal(map[string]interface{}{
			"type": "validation",
			"data": map[string]interface{}{
				"valid":    len(findings) == 0,
				"findings": findings,
			},
		})
		if err != nil {
			return
		}

		select {
		case c.Send <- payload:
		default:
		}
	})
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
