package inmemory

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchsync/server/internal/repository/subscriber"
)

type stubSubscriber struct {
	id string
}

func (s *stubSubscriber) ID() string                { return s.id }
func (s *stubSubscriber) Send(payload []byte) error { return nil }
func (s *stubSubscriber) Close() error              { return nil }

func TestAddAndList(t *testing.T) {
	r := NewRepo(slog.Default())

	sub1 := &stubSubscriber{id: "sub1"}
	sub2 := &stubSubscriber{id: "sub2"}
	sub3 := &stubSubscriber{id: "sub3"}
	require.NoError(t, r.Add("room1", sub1))
	require.NoError(t, r.Add("room1", sub2))
	require.NoError(t, r.Add("room1", sub3))

	subs := r.List("room1")
	require.Len(t, subs, 3)
	assert.Equal(t, "sub1", subs[0].ID(), "registration order must be preserved")
	assert.Equal(t, "sub2", subs[1].ID())
	assert.Equal(t, "sub3", subs[2].ID())

	assert.Empty(t, r.List("room2"))
}

func TestAddDuplicate(t *testing.T) {
	r := NewRepo(slog.Default())

	sub := &stubSubscriber{id: "sub1"}
	require.NoError(t, r.Add("room1", sub))
	assert.ErrorIs(t, r.Add("room1", sub), subscriber.ErrAlreadyExists)

	// the same id may subscribe to a different room
	require.NoError(t, r.Add("room2", sub))
}

func TestRemove(t *testing.T) {
	r := NewRepo(slog.Default())

	sub1 := &stubSubscriber{id: "sub1"}
	sub2 := &stubSubscriber{id: "sub2"}
	require.NoError(t, r.Add("room1", sub1))
	require.NoError(t, r.Add("room1", sub2))

	require.NoError(t, r.Remove("room1", sub1))
	assert.ErrorIs(t, r.Remove("room1", sub1), subscriber.ErrNotFound)

	subs := r.List("room1")
	require.Len(t, subs, 1)
	assert.Equal(t, "sub2", subs[0].ID())
}

func TestRemoveLastSubscriberPrunesRoom(t *testing.T) {
	r := NewRepo(slog.Default())

	sub := &stubSubscriber{id: "sub1"}
	require.NoError(t, r.Add("room1", sub))

	rooms, subscribers := r.Stats()
	assert.Equal(t, 1, rooms)
	assert.Equal(t, 1, subscribers)

	require.NoError(t, r.Remove("room1", sub))

	rooms, subscribers = r.Stats()
	assert.Equal(t, 0, rooms)
	assert.Equal(t, 0, subscribers)
}
