package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/talentflow/talentflow/internal/model"
)

// Watch subscribes to the server's change feed and calls fn for every change
// event until ctx is cancelled or the connection drops. Cancellation returns
// nil; a dropped connection returns an error.
func (c *Client) Watch(ctx context.Context, fn func(model.ChangeEvent)) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/ws"
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect to change feed: %w", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			conn.Close()
		case <-done:
		}
	}()

	for {
		var msg model.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("change feed closed: %w", err)
		}
		if msg.Type != model.MessageChange {
			continue
		}

		var event model.ChangeEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			c.logger.Warn("dropping malformed change event", "error", err)
			continue
		}
		fn(event)
	}
}
