package domain

// Event is the payload pushed to room subscribers. One event per message;
// framing is up to the transport sink.
type Event struct {
	Action string  `json:"action"`
	Time   float64 `json:"time"`
}

// Subscriber is a live connection registered to receive events for a room.
type Subscriber interface {
	ID() string
	Send(payload []byte) error
	Close() error
}
