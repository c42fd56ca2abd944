package inmemory

import (
	"log/slog"
	"sync"

	"github.com/watchsync/server/internal/domain"
	"github.com/watchsync/server/internal/repository/subscriber"
)

type repo struct {
	// subscribers are kept in registration order per room.
	rooms  map[string][]domain.Subscriber
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		rooms:  make(map[string][]domain.Subscriber),
		logger: logger,
	}
}

func (r *repo) Add(roomId string, sub domain.Subscriber) error {
	funcName := "subscriber.inmemory.Add"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "roomId", roomId, "subscriberId", sub.ID())
	for _, s := range r.rooms[roomId] {
		if s.ID() == sub.ID() {
			r.logger.Info(funcName, "error", subscriber.ErrAlreadyExists)
			return subscriber.ErrAlreadyExists
		}
	}

	r.rooms[roomId] = append(r.rooms[roomId], sub)

	return nil
}

// Remove removes the subscriber by identity. The room's entry is pruned
// when its last subscriber leaves.
func (r *repo) Remove(roomId string, sub domain.Subscriber) error {
	funcName := "subscriber.inmemory.Remove"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "roomId", roomId, "subscriberId", sub.ID())
	subs := r.rooms[roomId]
	for i, s := range subs {
		if s.ID() == sub.ID() {
			r.rooms[roomId] = append(subs[:i:i], subs[i+1:]...)
			if len(r.rooms[roomId]) == 0 {
				delete(r.rooms, roomId)
			}

			return nil
		}
	}

	return subscriber.ErrNotFound
}

// List returns a snapshot of the room's subscribers in registration order.
func (r *repo) List(roomId string) []domain.Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := make([]domain.Subscriber, len(r.rooms[roomId]))
	copy(subs, r.rooms[roomId])

	return subs
}

func (r *repo) Stats() (rooms, subscribers int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms = len(r.rooms)
	for _, subs := range r.rooms {
		subscribers += len(subs)
	}

	return rooms, subscribers
}
