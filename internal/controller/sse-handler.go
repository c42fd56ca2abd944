package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/watchsync/server/internal/service/sync"
	"github.com/watchsync/server/pkg/rest"
)

// SSEClient subscribes the caller to the room's event stream. The first
// event is a snapshot of the room's current playback state; subsequent
// events are the actions of other clients. The subscription lasts until
// the client closes the connection.
func (c controller) SSEClient(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "room-id")
	if roomId == "" {
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "room not found"})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		c.logger.InfoContext(r.Context(), "streaming unsupported by response writer")
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := newSSESubscriber(uuid.NewString(), w, flusher)
	if err := c.syncService.JoinRoom(r.Context(), &sync.JoinRoomParams{
		RoomId:     roomId,
		Subscriber: sub,
	}); err != nil {
		c.logger.InfoContext(r.Context(), "failed to join room", "roomId", roomId, "error", err)
		return
	}

	<-r.Context().Done()

	if err := c.syncService.LeaveRoom(r.Context(), &sync.LeaveRoomParams{
		RoomId:     roomId,
		Subscriber: sub,
	}); err != nil {
		c.logger.InfoContext(r.Context(), "failed to leave room", "roomId", roomId, "error", err)
	}
}
