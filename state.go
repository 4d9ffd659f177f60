package twirc

import (
	"sort"

	"github.com/twirc/twirc/tag"
)

// ClientState is a JSON-friendly snapshot of the session, mostly there for
// debug front-ends.
type ClientState struct {
	Status          string         `json:"status"`
	Username        string         `json:"username"`
	GlobalUserState tag.Map        `json:"globalUserState,omitempty"`
	Channels        []ChannelState `json:"channels"`
}

// ChannelState is the snapshot of one observed channel.
type ChannelState struct {
	Name       string   `json:"name"`
	Hosting    string   `json:"hosting,omitempty"`
	Moderators []string `json:"moderators,omitempty"`
	RoomState  tag.Map  `json:"roomState,omitempty"`
	UserState  tag.Map  `json:"userState,omitempty"`
}

// State snapshots the client. The copy is detached; mutating it does not
// affect the client.
func (client *Client) State() ClientState {
	client.mutex.RLock()
	defer client.mutex.RUnlock()

	state := ClientState{
		Status:          client.status.String(),
		Username:        client.config.Username,
		GlobalUserState: client.globalUserState.Clone(),
		Channels:        make([]ChannelState, 0, len(client.channels)),
	}

	for _, name := range client.channelNamesLocked() {
		channel := client.channels[name]
		state.Channels = append(state.Channels, ChannelState{
			Name:       channel.Name(),
			Hosting:    channel.Hosting(),
			Moderators: channel.Moderators(),
			RoomState:  channel.RoomState(),
			UserState:  channel.UserState(),
		})
	}

	return state
}

func (client *Client) channelNamesLocked() []string {
	names := make([]string, 0, len(client.channels))
	for name := range client.channels {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
