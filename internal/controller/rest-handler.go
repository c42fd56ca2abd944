package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	o "github.com/skewb1k/optional"

	"github.com/watchsync/server/internal/service/sync"
	"github.com/watchsync/server/pkg/rest"
)

type actionRequest struct {
	Action string           `json:"action" validate:"required"`
	Time   o.Field[float64] `json:"time"`
}

type actionResponse struct {
	Success     bool    `json:"success"`
	SentTo      int     `json:"sent_to"`
	CurrentTime float64 `json:"current_time"`
}

// HandleAction applies a playback action to the room and fans it out to
// the room's subscribers.
func (c controller) HandleAction(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "room-id")
	if roomId == "" {
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "room not found"})
		return
	}

	var req actionRequest
	if err := rest.ReadJSON(r, &req); err != nil {
		c.logger.InfoContext(r.Context(), "failed to read action request", "error", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		c.logger.InfoContext(r.Context(), "invalid action request", "errors", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	params := sync.ActionParams{
		RoomId: roomId,
		Action: req.Action,
	}
	if req.Time.Defined {
		params.Time = req.Time.Value
	}

	resp, err := c.syncService.HandleAction(r.Context(), &params)
	if err != nil {
		if errors.Is(err, sync.ErrEmptyAction) {
			rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"error": err.Error()})
			return
		}

		c.logger.InfoContext(r.Context(), "failed to handle action", "roomId", roomId, "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": err.Error()})
		return
	}

	rest.WriteJSON(w, http.StatusOK, actionResponse{
		Success:     true,
		SentTo:      resp.SentTo,
		CurrentTime: resp.CurrentTime,
	})
}

// Resync returns the room's estimated playback state for clients catching
// up after a gap. Read-only.
func (c controller) Resync(w http.ResponseWriter, r *http.Request) {
	roomId := chi.URLParam(r, "room-id")
	if roomId == "" {
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "room not found"})
		return
	}

	syncState, err := c.syncService.Resync(r.Context(), roomId)
	if err != nil {
		c.logger.InfoContext(r.Context(), "failed to resync", "roomId", roomId, "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": err.Error()})
		return
	}

	rest.WriteJSON(w, http.StatusOK, syncState)
}

func (c controller) Healthz(w http.ResponseWriter, r *http.Request) {
	rooms, subscribers := c.syncService.Stats()

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		"status":      "ok",
		"rooms":       rooms,
		"subscribers": subscribers,
	})
}
