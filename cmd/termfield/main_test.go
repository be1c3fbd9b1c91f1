package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestPollEventsForwards(t *testing.T) {
	events := []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'v', tcell.ModNone),
		tcell.NewEventResize(80, 24),
	}
	i := 0
	poll := func() tcell.Event {
		if i >= len(events) {
			return nil
		}
		ev := events[i]
		i++
		return ev
	}

	out := make(chan tcell.Event, len(events))
	pollEvents(poll, out, make(chan struct{}))

	if len(out) != len(events) {
		t.Fatalf("forwarded %d events, want %d", len(out), len(events))
	}
	if _, ok := (<-out).(*tcell.EventKey); !ok {
		t.Error("first event should be the key")
	}
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	// poll never runs dry and nobody reads out
	poll := func() tcell.Event { return tcell.NewEventResize(80, 24) }
	out := make(chan tcell.Event, 1)
	done := make(chan struct{})

	finished := make(chan struct{})
	go func() {
		pollEvents(poll, out, done)
		close(finished)
	}()

	close(done)
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("pollEvents still blocked after done was closed")
	}
}
