package sync

import "github.com/watchsync/server/internal/domain"

const (
	ActionPlay  = "play"
	ActionPause = "pause"
	ActionStop  = "stop"
)

type ActionParams struct {
	// Time is the client-authoritative position in seconds. Absent means
	// "derive it from the stored state".
	Time   *float64
	Action string
	RoomId string
}

type ActionResponse struct {
	SentTo      int
	CurrentTime float64
}

type JoinRoomParams struct {
	Subscriber domain.Subscriber
	RoomId     string
}

type LeaveRoomParams struct {
	Subscriber domain.Subscriber
	RoomId     string
}

type SyncState struct {
	CurrentTime float64 `json:"current_time"`
	IsPlaying   bool    `json:"is_playing"`
}
