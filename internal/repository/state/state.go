package state

// Playback is the stored playback state of a room. Position is the base
// offset in seconds set by the last explicit action; while playing, the
// current offset is derived from Position plus the time elapsed since
// LastUpdate. LastUpdate is a unix timestamp in milliseconds and is 0
// whenever the room is not playing.
type Playback struct {
	Position   float64 `redis:"position"`
	IsPlaying  bool    `redis:"is_playing"`
	LastUpdate int64   `redis:"last_update"`
}
