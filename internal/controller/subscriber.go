package controller

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// sseSubscriber frames events for a text/event-stream response. Writes are
// serialized so a join snapshot and a broadcast cannot interleave.
type sseSubscriber struct {
	id      string
	w       http.ResponseWriter
	flusher http.Flusher
	mu      sync.Mutex
	closed  bool
}

func newSSESubscriber(id string, w http.ResponseWriter, flusher http.Flusher) *sseSubscriber {
	return &sseSubscriber{
		id:      id,
		w:       w,
		flusher: flusher,
	}
}

func (s *sseSubscriber) ID() string {
	return s.id
}

func (s *sseSubscriber) Send(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("subscriber is closed")
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	s.flusher.Flush()

	return nil
}

// Close only marks the sink dead; the response itself is torn down by the
// http server when the handler returns.
func (s *sseSubscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	return nil
}

// wsSubscriber frames events as websocket text messages.
type wsSubscriber struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func newWSSubscriber(id string, conn *websocket.Conn) *wsSubscriber {
	return &wsSubscriber{
		id:   id,
		conn: conn,
	}
}

func (s *wsSubscriber) ID() string {
	return s.id
}

func (s *wsSubscriber) Send(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeWait))

	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

func (s *wsSubscriber) Close() error {
	return s.conn.Close()
}
