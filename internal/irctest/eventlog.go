package irctest

import "github.com/twirc/twirc"

// An EventLog records every event fanned out by a client so interaction
// callbacks can assert on what subscribers observed. Register Handler on
// the client; the log itself is read from callbacks only, after a sync
// barrier has drained the loop.
type EventLog struct {
	events []*twirc.Event
}

// First returns the earliest recorded event matching the kind and verb,
// nil when none matched.
func (log *EventLog) First(kind, verb string) *twirc.Event {
	for _, event := range log.events {
		if event.Kind() == kind && event.Verb() == verb {
			return event
		}
	}

	return nil
}

// Last returns the latest recorded event matching the kind and verb, nil
// when none matched.
func (log *EventLog) Last(kind, verb string) *twirc.Event {
	for i := len(log.events) - 1; i >= 0; i-- {
		if event := log.events[i]; event.Kind() == kind && event.Verb() == verb {
			return event
		}
	}

	return nil
}

// Count reports how many recorded events match the kind and verb.
func (log *EventLog) Count(kind, verb string) int {
	count := 0
	for _, event := range log.events {
		if event.Kind() == kind && event.Verb() == verb {
			count++
		}
	}

	return count
}

// Handler appends every event to the log. Add it to the client under test.
func (log *EventLog) Handler(event *twirc.Event, _ *twirc.Client) {
	log.events = append(log.events, event)
}
