package twirc

import (
	"sort"
	"sync"

	"github.com/twirc/twirc/tag"
)

// A Channel holds the observed state of one chat room: the service's room
// state broadcasts, our own per-channel user state, the hosted target and
// the moderator set. Entries are created on the first state broadcast and
// kept for the lifetime of the client even after parting; the table
// reflects what has been observed, not current membership.
//
// Mutation happens on the client's event loop; the accessor methods take
// the channel's lock and return copies where it matters, so they are safe
// from any goroutine.
type Channel struct {
	name string

	mutex      sync.RWMutex
	roomstate  tag.Map
	userstate  tag.Map
	hosting    string
	moderators map[string]bool
}

func newChannel(name string) *Channel {
	return &Channel{
		name:       name,
		moderators: make(map[string]bool),
	}
}

// Name gets the channel key (lowercased, without the # prefix).
func (channel *Channel) Name() string {
	return channel.name
}

// RoomState returns a copy of the last room state tags, nil if none has
// been received.
func (channel *Channel) RoomState() tag.Map {
	channel.mutex.RLock()
	defer channel.mutex.RUnlock()

	return channel.roomstate.Clone()
}

// UserState returns a copy of our own user state in this channel, nil if
// none has been received.
func (channel *Channel) UserState() tag.Map {
	channel.mutex.RLock()
	defer channel.mutex.RUnlock()

	return channel.userstate.Clone()
}

// Hosting returns the hosted channel, or "" when not hosting.
func (channel *Channel) Hosting() string {
	channel.mutex.RLock()
	defer channel.mutex.RUnlock()

	return channel.hosting
}

// IsModerator reports whether the username is in the observed moderator
// set.
func (channel *Channel) IsModerator(username string) bool {
	channel.mutex.RLock()
	defer channel.mutex.RUnlock()

	return channel.moderators[username]
}

// Moderators returns the observed moderator set, sorted.
func (channel *Channel) Moderators() []string {
	channel.mutex.RLock()
	defer channel.mutex.RUnlock()

	names := make([]string, 0, len(channel.moderators))
	for name := range channel.moderators {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// handle applies a packet event routed to this channel by the client's
// event loop.
func (channel *Channel) handle(event *Event, client *Client) {
	channel.mutex.Lock()
	defer channel.mutex.Unlock()

	switch event.Name() {
	case "packet.roomstate":
		if channel.roomstate == nil {
			channel.roomstate = make(tag.Map, len(event.Tags))
		}
		for key, value := range event.Tags {
			channel.roomstate[key] = value
		}

	case "packet.userstate":
		if channel.userstate == nil {
			channel.userstate = make(tag.Map, len(event.Tags))
		}
		for key, value := range event.Tags {
			channel.userstate[key] = value
		}

	case "packet.hosttarget":
		channel.hosting = event.Target

	case "packet.mode":
		username := event.Arg(2)
		if username == "" {
			break
		}

		switch event.Arg(1) {
		case "+o":
			channel.moderators[username] = true
		case "-o":
			delete(channel.moderators, username)
		}
	}
}

// setModerators replaces the moderator set, used by the mods roster
// notice.
func (channel *Channel) setModerators(names []string) {
	channel.mutex.Lock()
	defer channel.mutex.Unlock()

	channel.moderators = make(map[string]bool, len(names))
	for _, name := range names {
		channel.moderators[name] = true
	}
}
