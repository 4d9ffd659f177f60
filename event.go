package twirc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/twirc/twirc/tag"
)

// An Event is any thing that passes through the client's event loop: a
// decoded protocol frame (kind "packet"), a semantic chat event (kind
// "chat"), a lifecycle notification (kind "client"), an error (kind
// "error") or parsed user input (kind "input"). It's not thread safe,
// because it's processed in sequence and should not be used off the
// goroutine that processed it.
type Event struct {
	kind string
	verb string
	name string

	Time time.Time

	// Command, Params and Raw describe the wire frame for packet events.
	// Params includes the trailing parameter when one was present.
	Command string
	Params  []string
	Raw     string

	Sender Prefix
	Tags   tag.Map
	Text   string

	// Channel is the derived channel key (lowercased, no #) when the frame
	// had parameters, and the bound channel for chat and input events.
	Channel string

	IsAction bool
	IsSelf   bool

	// Target is the hosted channel on hosting events, "" when hosting
	// stopped.
	Target string

	// NoticeID is the service's message id on notice events.
	NoticeID string

	// Code and Reason carry the transport close information on close
	// events.
	Code   int
	Reason string

	ctx    context.Context
	cancel context.CancelFunc
	killed bool
}

// NewEvent makes a new event with Kind, Verb and Time set and Tags
// initialized.
func NewEvent(kind, verb string) Event {
	return Event{
		kind: kind,
		verb: verb,
		name: kind + "." + verb,

		Time: time.Now(),
		Tags: make(tag.Map),
	}
}

// NewErrorEvent makes an event of kind `error` and verb `code` with the
// text. It's absolutely trivial, but it's good to have standardized.
func NewErrorEvent(code, text string) Event {
	event := NewEvent("error", code)
	event.Text = text

	return event
}

// Kind gets the event's kind.
func (event *Event) Kind() string {
	return event.kind
}

// Verb gets the event's verb.
func (event *Event) Verb() string {
	return event.verb
}

// Name gets the event name, which is Kind and Verb separated by a dot.
func (event *Event) Name() string {
	return event.name
}

// IsEither returns true if the event has the kind and one of the verbs.
func (event *Event) IsEither(kind string, verbs ...string) bool {
	if event.kind != kind {
		return false
	}

	for i := range verbs {
		if event.verb == verbs[i] {
			return true
		}
	}

	return false
}

// Arg gets a parameter by index, or "" when out of range. Saves a bounds
// check in every handler.
func (event *Event) Arg(index int) string {
	if index < 0 || index >= len(event.Params) {
		return ""
	}

	return event.Params[index]
}

// Context gets the event's context if it's part of the loop, or
// `context.Background` otherwise. Client.Emit will set this context on its
// copy and return it.
func (event *Event) Context() context.Context {
	if event.ctx == nil {
		return context.Background()
	}

	return event.ctx
}

// Kill stops propagation of the event to handlers registered after the one
// calling it.
func (event *Event) Kill() {
	event.killed = true
}

// Killed returns true if Kill has been called.
func (event *Event) Killed() bool {
	return event.killed
}

// MarshalJSON makes a JSON object from the event.
func (event *Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"kind":    event.kind,
		"verb":    event.verb,
		"time":    event.Time,
		"command": event.Command,
		"params":  event.Params,
		"sender":  event.Sender,
		"tags":    event.Tags,
		"text":    event.Text,
		"channel": event.Channel,
		"raw":     event.Raw,
	})
}
