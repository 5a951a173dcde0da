package spectator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"memoryscramble/internal/wsutil"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// Client is a middleman between one spectator's websocket connection and
// its hub, mirroring the teacher's ws.Client almost verbatim for the
// transport plumbing (ping/pong keep-alive, write deadlines), with the
// game-message read loop replaced by a board render/watch loop.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	viewerID string
}

// watchLoop renders the board once, sends it, then blocks on board.Watch
// for the next visible change, forever, until the socket's read side fails
// — which is the only signal this unidirectional feed gets that the peer
// is gone, since spectators send nothing.
func (c *Client) watchLoop() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		// ReadMessage blocks until the peer closes or errors; spectators
		// never send application messages, so this goroutine's only job
		// is to detect disconnection and unblock the watch below.
		for {
			if _, _, err := c.conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	if rendering, err := c.hub.board.View(c.viewerID); err == nil {
		wsutil.SafeSend(c.send, []byte(rendering))
	}

	for {
		rendering, err := c.boardWatch(ctx)
		if err != nil {
			// ctx is cancelled once the read goroutine detects the peer is
			// gone; the only other error Watch returns is for a blank viewer
			// id, which ServeWS passes through unchecked, and that is logged.
			if !errors.Is(err, context.Canceled) {
				slog.Warn("spectator watch error", "tag", "spectator", "room", c.hub.roomID, "viewer", c.viewerID, "err", err)
			}
			return
		}
		wsutil.SafeSend(c.send, []byte(rendering))
	}
}

func (c *Client) boardWatch(ctx context.Context) (string, error) {
	return c.hub.board.Watch(ctx, c.viewerID)
}

// writePump pumps messages from send to the websocket connection, exactly
// like the teacher's ws.Client.WritePump.
func (c *Client) writePump() {
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
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			if err := w.Close(); err != nil {
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

// ping is called by Hub.Ping on the scheduler's keep-alive cadence; it is
// harmless to race with writePump's own ticker since WriteControl may be
// called concurrently with writePump's writes, the extra ping is simply
// redundant.
func (c *Client) ping() {
	_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}
