package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/watchsync/server/internal/service/sync"
	"github.com/watchsync/server/pkg/rest"
)

// WSClient is the websocket variant of SSEClient. Incoming messages are
// drained and ignored; actions go through the REST endpoint.
func (c controller) WSClient(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "room-id")
	if roomId == "" {
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "room not found"})
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.InfoContext(r.Context(), "failed to upgrade connection", "error", err)
		return
	}

	sub := newWSSubscriber(uuid.NewString(), conn)
	if err := c.syncService.JoinRoom(r.Context(), &sync.JoinRoomParams{
		RoomId:     roomId,
		Subscriber: sub,
	}); err != nil {
		c.logger.InfoContext(r.Context(), "failed to join room", "roomId", roomId, "error", err)
		conn.Close()
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	if err := c.syncService.LeaveRoom(r.Context(), &sync.LeaveRoomParams{
		RoomId:     roomId,
		Subscriber: sub,
	}); err != nil {
		c.logger.InfoContext(r.Context(), "failed to leave room", "roomId", roomId, "error", err)
	}
}
