package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchsync/server/internal/repository/state"
)

func newTestRepo(t *testing.T) *repo {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})

	return NewRepo(rc, time.Hour)
}

func TestGetStateUnknownRoom(t *testing.T) {
	r := newTestRepo(t)

	playback, err := r.GetState(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, state.Playback{}, playback)
}

func TestSetGetRoundtrip(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	playback := state.Playback{
		Position:   12.5,
		IsPlaying:  true,
		LastUpdate: 1700000000000,
	}
	require.NoError(t, r.SetState(ctx, "room1", playback))

	got, err := r.GetState(ctx, "room1")
	require.NoError(t, err)
	assert.Equal(t, playback, got)
}

func TestSetStateOverwrites(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetState(ctx, "room1", state.Playback{Position: 10, IsPlaying: true, LastUpdate: 500}))
	require.NoError(t, r.SetState(ctx, "room1", state.Playback{Position: 25}))

	got, err := r.GetState(ctx, "room1")
	require.NoError(t, err)
	assert.Equal(t, state.Playback{Position: 25}, got)
}

func TestRoomsAreIndependent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetState(ctx, "room1", state.Playback{Position: 10}))

	got, err := r.GetState(ctx, "room2")
	require.NoError(t, err)
	assert.Equal(t, state.Playback{}, got)
}
