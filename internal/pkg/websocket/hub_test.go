package websocket

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestHubNotifyReachesListeners(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	listener := make(chan *Event, 1)
	hub.AddEventListener(listener)
	defer hub.RemoveEventListener(listener)

	hub.Notify("assignment_submitted", map[string]string{"title": "Homework 1"})

	select {
	case event := <-listener:
		require.Equal(t, "assignment_submitted", event.Event)
		require.False(t, event.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("event never reached listener")
	}
}

func TestHubDropsEventsWithoutSessions(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	require.Zero(t, hub.ClientCount())

	// No connected sessions and no listeners: the event is dropped without
	// blocking the sender
	done := make(chan struct{})
	go func() {
		hub.Notify("assignment_submitted", nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked with no connected sessions")
	}
}

func TestHubRemoveEventListener(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	listener := make(chan *Event, 1)
	hub.AddEventListener(listener)
	hub.RemoveEventListener(listener)

	hub.Notify("assignment_submitted", nil)

	select {
	case <-listener:
		t.Fatal("removed listener still received an event")
	case <-time.After(100 * time.Millisecond):
	}
}
