package sync

import (
	"time"

	"github.com/watchsync/server/internal/repository/state"
)

// estimate returns the playback position in seconds and the playing flag
// for the given state at the given instant. While playing, the stored base
// position advances by the wall-clock time elapsed since LastUpdate. The
// result is recomputed on every read and never written back; the store
// keeps the base value from the last explicit action.
func estimate(playback state.Playback, now time.Time) (float64, bool) {
	if !playback.IsPlaying || playback.LastUpdate == 0 {
		return playback.Position, playback.IsPlaying
	}

	return playback.Position + float64(now.UnixMilli()-playback.LastUpdate)/1000, true
}
