package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/watchsync/server/internal/repository/state"
)

type repo struct {
	rc             *redis.Client
	expireDuration time.Duration
}

func NewRepo(rc *redis.Client, expireDuration time.Duration) *repo {
	return &repo{
		rc:             rc,
		expireDuration: expireDuration,
	}
}

func (r repo) getPlaybackKey(roomId string) string {
	return "room:" + roomId + ":playback"
}

// GetState returns the zero playback state when the room has no entry.
// HGETALL on a missing key scans into zero values, which is exactly the
// default state contract.
func (r repo) GetState(ctx context.Context, roomId string) (state.Playback, error) {
	playbackKey := r.getPlaybackKey(roomId)
	var playback state.Playback
	if err := r.rc.HGetAll(ctx, playbackKey).Scan(&playback); err != nil {
		return state.Playback{}, fmt.Errorf("failed to get playback: %w", err)
	}

	r.rc.Expire(ctx, playbackKey, r.expireDuration)

	return playback, nil
}

func (r repo) SetState(ctx context.Context, roomId string, playback state.Playback) error {
	playbackKey := r.getPlaybackKey(roomId)
	if err := r.rc.HSet(ctx, playbackKey,
		"position", playback.Position,
		"is_playing", playback.IsPlaying,
		"last_update", playback.LastUpdate,
	).Err(); err != nil {
		return fmt.Errorf("failed to set playback: %w", err)
	}

	r.rc.Expire(ctx, playbackKey, r.expireDuration)

	return nil
}
