package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/watchsync/server/internal/domain"
	"github.com/watchsync/server/internal/repository/subscriber"
)

// HandleAction applies a client action to the room's playback state,
// persists it and broadcasts {action, time} to every current subscriber of
// the room. Action strings other than play/pause/stop leave the state
// untouched and are fanned out verbatim with the stored position.
func (s *service) HandleAction(ctx context.Context, params *ActionParams) (ActionResponse, error) {
	if params.Action == "" {
		return ActionResponse{}, ErrEmptyAction
	}

	lock := s.roomLock(params.RoomId)
	lock.Lock()
	defer lock.Unlock()

	playback, err := s.stateRepo.GetState(ctx, params.RoomId)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to get state", "error", err)
		return ActionResponse{}, fmt.Errorf("failed to get state: %w", err)
	}

	now := s.clock.Now()

	switch params.Action {
	case ActionPlay:
		playback.IsPlaying = true
		if params.Time != nil {
			playback.Position = *params.Time
		}
		playback.LastUpdate = now.UnixMilli()
	case ActionPause, ActionStop:
		if params.Time != nil {
			// client-authoritative position, elapsed drift is discarded
			playback.Position = *params.Time
		} else if playback.IsPlaying && playback.LastUpdate != 0 {
			playback.Position += float64(now.UnixMilli()-playback.LastUpdate) / 1000
		}
		playback.IsPlaying = false
		playback.LastUpdate = 0
	default:
		// custom client events pass through without touching the state
	}

	if err := s.stateRepo.SetState(ctx, params.RoomId, playback); err != nil {
		s.logger.InfoContext(ctx, "failed to set state", "error", err)
		return ActionResponse{}, fmt.Errorf("failed to set state: %w", err)
	}

	sentTo, err := s.broadcast(ctx, params.RoomId, domain.Event{
		Action: params.Action,
		Time:   playback.Position,
	})
	if err != nil {
		return ActionResponse{}, fmt.Errorf("failed to broadcast event: %w", err)
	}

	return ActionResponse{
		SentTo:      sentTo,
		CurrentTime: playback.Position,
	}, nil
}

// JoinRoom registers the subscriber and pushes one snapshot event to it,
// reflecting the room's current estimated position. Other subscribers are
// not notified.
func (s *service) JoinRoom(ctx context.Context, params *JoinRoomParams) error {
	if err := s.subRepo.Add(params.RoomId, params.Subscriber); err != nil {
		s.logger.InfoContext(ctx, "failed to add subscriber", "error", err)
		return fmt.Errorf("failed to add subscriber: %w", err)
	}

	playback, err := s.stateRepo.GetState(ctx, params.RoomId)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to get state", "error", err)
		return fmt.Errorf("failed to get state: %w", err)
	}

	position, isPlaying := estimate(playback, s.clock.Now())
	action := ActionPause
	if isPlaying {
		action = ActionPlay
	}

	payload, err := json.Marshal(domain.Event{Action: action, Time: position})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := params.Subscriber.Send(payload); err != nil {
		s.logger.InfoContext(ctx, "failed to send snapshot to subscriber", "subscriberId", params.Subscriber.ID(), "error", err)
		s.removeSubscriber(ctx, params.RoomId, params.Subscriber)
		return fmt.Errorf("failed to send snapshot: %w", err)
	}

	s.logger.DebugContext(ctx, "subscriber joined", "roomId", params.RoomId, "subscriberId", params.Subscriber.ID())

	return nil
}

// Resync returns the room's estimated playback state without mutating
// anything or notifying anyone. Unknown rooms read as paused at zero.
func (s *service) Resync(ctx context.Context, roomId string) (SyncState, error) {
	playback, err := s.stateRepo.GetState(ctx, roomId)
	if err != nil {
		s.logger.InfoContext(ctx, "failed to get state", "error", err)
		return SyncState{}, fmt.Errorf("failed to get state: %w", err)
	}

	position, isPlaying := estimate(playback, s.clock.Now())

	return SyncState{
		CurrentTime: position,
		IsPlaying:   isPlaying,
	}, nil
}

// LeaveRoom removes the subscriber by identity. Removing a subscriber that
// already left is a no-op.
func (s *service) LeaveRoom(ctx context.Context, params *LeaveRoomParams) error {
	if err := s.subRepo.Remove(params.RoomId, params.Subscriber); err != nil {
		if !errors.Is(err, subscriber.ErrNotFound) {
			return fmt.Errorf("failed to remove subscriber: %w", err)
		}

		s.logger.DebugContext(ctx, "subscriber already removed", "roomId", params.RoomId, "subscriberId", params.Subscriber.ID())
		return nil
	}

	params.Subscriber.Close()
	s.logger.DebugContext(ctx, "subscriber left", "roomId", params.RoomId, "subscriberId", params.Subscriber.ID())

	return nil
}

// broadcast fans the event out to every subscriber currently registered
// for the room, in registration order. A failed write is isolated: the
// dead subscriber is dropped and delivery continues. Returns the number of
// subscribers registered at broadcast time.
func (s *service) broadcast(ctx context.Context, roomId string, event domain.Event) (int, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	subs := s.subRepo.List(roomId)
	for _, sub := range subs {
		if err := sub.Send(payload); err != nil {
			s.logger.InfoContext(ctx, "failed to send event to subscriber", "roomId", roomId, "subscriberId", sub.ID(), "error", err)
			s.removeSubscriber(ctx, roomId, sub)
		}
	}

	return len(subs), nil
}

func (s *service) removeSubscriber(ctx context.Context, roomId string, sub domain.Subscriber) {
	if err := s.subRepo.Remove(roomId, sub); err != nil && !errors.Is(err, subscriber.ErrNotFound) {
		s.logger.InfoContext(ctx, "failed to remove subscriber", "roomId", roomId, "subscriberId", sub.ID(), "error", err)
	}
	sub.Close()
}
