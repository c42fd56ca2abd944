package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/watchsync/server/internal/repository/state"
)

func TestEstimate(t *testing.T) {
	now := time.UnixMilli(1_000_000)

	tests := []struct {
		name         string
		playback     state.Playback
		wantPosition float64
		wantPlaying  bool
	}{
		{
			name:         "zero state",
			playback:     state.Playback{},
			wantPosition: 0,
			wantPlaying:  false,
		},
		{
			name:         "paused returns stored position",
			playback:     state.Playback{Position: 42.5},
			wantPosition: 42.5,
			wantPlaying:  false,
		},
		{
			name:         "playing adds elapsed seconds",
			playback:     state.Playback{Position: 10, IsPlaying: true, LastUpdate: now.Add(-2500 * time.Millisecond).UnixMilli()},
			wantPosition: 12.5,
			wantPlaying:  true,
		},
		{
			name:         "playing with unset last update returns stored position",
			playback:     state.Playback{Position: 10, IsPlaying: true},
			wantPosition: 10,
			wantPlaying:  true,
		},
		{
			name:         "paused last update is ignored",
			playback:     state.Playback{Position: 10, IsPlaying: false, LastUpdate: now.Add(-time.Minute).UnixMilli()},
			wantPosition: 10,
			wantPlaying:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			position, isPlaying := estimate(tt.playback, now)
			assert.Equal(t, tt.wantPosition, position)
			assert.Equal(t, tt.wantPlaying, isPlaying)
		})
	}
}
