package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Change is one message on the /todos/watch change feed.
type Change struct {
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
}

// Watch subscribes to the server change feed and signals once per change.
// The returned channel is closed when ctx ends or the connection drops.
func (c *Client) Watch(ctx context.Context) (<-chan struct{}, error) {
	u := c.baseURL.JoinPath("todos", "watch")
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("remote: dial watch: %w", err)
	}

	out := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()
	go func() {
		defer close(out)
		defer close(done)
		defer conn.Close()
		for {
			var change Change
			if err := conn.ReadJSON(&change); err != nil {
				if ctx.Err() == nil {
					c.logger.Debug("watch closed", "err", err)
				}
				return
			}
			select {
			case out <- struct{}{}:
			default:
				// a signal is already queued; one resync covers both.
			}
		}
	}()
	return out, nil
}
