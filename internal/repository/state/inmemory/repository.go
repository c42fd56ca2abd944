package inmemory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/watchsync/server/internal/repository/state"
)

type repo struct {
	playbacks map[string]state.Playback
	mu        sync.RWMutex
	logger    *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		playbacks: make(map[string]state.Playback),
		logger:    logger,
	}
}

// GetState returns the zero playback state for rooms that were never set.
// It never inserts.
func (r *repo) GetState(ctx context.Context, roomId string) (state.Playback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.playbacks[roomId], nil
}

func (r *repo) SetState(ctx context.Context, roomId string, playback state.Playback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.DebugContext(ctx, "state.inmemory.SetState", "roomId", roomId, "playback", playback)
	r.playbacks[roomId] = playback

	return nil
}
