package sync

import (
	"context"
	"errors"
	"log/slog"
	gosync "sync"

	"github.com/jonboulle/clockwork"

	"github.com/watchsync/server/internal/domain"
	"github.com/watchsync/server/internal/repository/state"
)

var ErrEmptyAction = errors.New("action is empty")

// StateRepo stores per-room playback state. Unknown rooms read as the zero
// state and are created on first write.
type StateRepo interface {
	GetState(ctx context.Context, roomId string) (state.Playback, error)
	SetState(ctx context.Context, roomId string, playback state.Playback) error
}

// SubscriberRepo holds the live subscribers of each room in registration
// order.
type SubscriberRepo interface {
	Add(roomId string, sub domain.Subscriber) error
	Remove(roomId string, sub domain.Subscriber) error
	List(roomId string) []domain.Subscriber
	Stats() (rooms, subscribers int)
}

type service struct {
	stateRepo StateRepo
	subRepo   SubscriberRepo
	clock     clockwork.Clock
	logger    *slog.Logger

	mu        gosync.Mutex
	roomLocks map[string]*gosync.Mutex
}

func NewService(stateRepo StateRepo, subRepo SubscriberRepo, clock clockwork.Clock, logger *slog.Logger) *service {
	return &service{
		stateRepo: stateRepo,
		subRepo:   subRepo,
		clock:     clock,
		logger:    logger,
		roomLocks: make(map[string]*gosync.Mutex),
	}
}

// roomLock returns the mutex serializing read-modify-write cycles on a
// single room. Rooms lock independently of each other.
func (s *service) roomLock(roomId string) *gosync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.roomLocks[roomId]
	if !ok {
		lock = &gosync.Mutex{}
		s.roomLocks[roomId] = lock
	}

	return lock
}

func (s *service) Stats() (rooms, subscribers int) {
	return s.subRepo.Stats()
}
