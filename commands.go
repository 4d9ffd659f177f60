package twirc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/twirc/twirc/ircutil"
)

// Fallback values for the permissive numeric arguments.
const (
	DefaultSlowSeconds       = 120
	DefaultTimeoutSeconds    = 1
	DefaultCommercialSeconds = 30
)

var hexColorBody = regexp.MustCompile(`^[a-fA-F0-9]{6}$`)
var hexColor = regexp.MustCompile(`^#[a-fA-F0-9]{6}$`)

// Join enters a channel.
func (client *Client) Join(channel string) error {
	channel = ircutil.Channel(channel)
	if channel == "" {
		return fmt.Errorf("%w: empty channel name", ErrInvalidArgument)
	}

	return client.Sendf("JOIN %s", channel)
}

// Part leaves a channel. The channel's state entry is kept; it reflects
// what has been observed, not current membership.
func (client *Client) Part(channel string) error {
	channel = ircutil.Channel(channel)
	if channel == "" {
		return fmt.Errorf("%w: empty channel name", ErrInvalidArgument)
	}

	return client.Sendf("PART %s", channel)
}

// Pong answers a server ping, referencing the same token. An empty token
// sends a bare PONG.
func (client *Client) Pong(token string) error {
	if token == "" {
		return client.Send("PONG")
	}

	return client.Sendf("PONG :%s", token)
}

// Say sends a chat message to the channel.
func (client *Client) Say(channel, message string) error {
	return client.say(channel, message, false)
}

// Sayf is Say with a fmt.Sprintf.
func (client *Client) Sayf(channel, format string, a ...interface{}) error {
	return client.Say(channel, fmt.Sprintf(format, a...))
}

// Action sends a /me-style action message to the channel.
func (client *Client) Action(channel, message string) error {
	return client.say(channel, message, true)
}

// Actionf is Action with a fmt.Sprintf.
func (client *Client) Actionf(channel, format string, a ...interface{}) error {
	return client.Action(channel, fmt.Sprintf(format, a...))
}

func (client *Client) say(channel, message string, action bool) error {
	channel = ircutil.Channel(channel)
	if channel == "" {
		return fmt.Errorf("%w: empty channel name", ErrInvalidArgument)
	}
	if message == "" {
		return fmt.Errorf("%w: empty message", ErrInvalidArgument)
	}

	if action {
		message = ircutil.Action(message)
	}

	return client.Sendf("PRIVMSG %s :%s", channel, message)
}

// sayCommand sends a chat slash-command to the channel. On the wire it is a
// plain message, indistinguishable from the same command typed by a user.
func (client *Client) sayCommand(channel, command string, args ...string) error {
	if command == "" {
		return fmt.Errorf("%w: no command to send", ErrInvalidArgument)
	}

	line := "/" + command
	for _, arg := range args {
		if arg != "" {
			line += " " + arg
		}
	}

	return client.say(channel, line, false)
}

// stateSuffix implements the shared on/off toggle convention for the room
// mode commands: the on branch is the bare command, the off branch gets an
// "off" suffix.
func stateSuffix(on bool) string {
	if on {
		return ""
	}

	return "off"
}

// statePrefix is stateSuffix's sibling for the un-style command pairs.
func statePrefix(on bool) string {
	if on {
		return ""
	}

	return "un"
}

func (client *Client) roomMode(channel, command string, on bool, args ...string) error {
	return client.sayCommand(channel, command+stateSuffix(on), args...)
}

// EmoteOnly restricts the channel to emote-only messages.
func (client *Client) EmoteOnly(channel string) error {
	return client.roomMode(channel, "emoteonly", true)
}

// EmoteOnlyOff lifts the emote-only restriction.
func (client *Client) EmoteOnlyOff(channel string) error {
	return client.roomMode(channel, "emoteonly", false)
}

// Subscribers restricts the channel to subscribers.
func (client *Client) Subscribers(channel string) error {
	return client.roomMode(channel, "subscribers", true)
}

// SubscribersOff lifts the subscribers-only restriction.
func (client *Client) SubscribersOff(channel string) error {
	return client.roomMode(channel, "subscribers", false)
}

// R9kBeta enables the unique-messages filter.
func (client *Client) R9kBeta(channel string) error {
	return client.roomMode(channel, "r9kbeta", true)
}

// R9kBetaOff disables the unique-messages filter.
func (client *Client) R9kBetaOff(channel string) error {
	return client.roomMode(channel, "r9kbeta", false)
}

// Slow enables slow mode with the given delay between messages. Invalid or
// non-positive delays fall back to the 120 second default rather than
// failing the call.
func (client *Client) Slow(channel string, seconds int) error {
	if seconds <= 0 {
		seconds = DefaultSlowSeconds
	}

	return client.roomMode(channel, "slow", true, strconv.Itoa(seconds))
}

// SlowOff disables slow mode.
func (client *Client) SlowOff(channel string) error {
	return client.roomMode(channel, "slow", false)
}

// Ban bans a user from the channel. The reason may be empty.
func (client *Client) Ban(channel, username, reason string) error {
	return client.ban(channel, username, reason, true)
}

// Unban lifts a ban.
func (client *Client) Unban(channel, username string) error {
	return client.ban(channel, username, "", false)
}

func (client *Client) ban(channel, username, reason string, on bool) error {
	username = ircutil.Username(username)
	if username == "" {
		return fmt.Errorf("%w: empty username", ErrInvalidArgument)
	}

	return client.sayCommand(channel, statePrefix(on)+"ban", username, reason)
}

// Timeout times a user out for the given number of seconds. Invalid or
// non-positive durations fall back to the one second default rather than
// failing the call. The reason may be empty.
func (client *Client) Timeout(channel, username string, seconds int, reason string) error {
	username = ircutil.Username(username)
	if username == "" {
		return fmt.Errorf("%w: empty username", ErrInvalidArgument)
	}

	if seconds <= 0 {
		seconds = DefaultTimeoutSeconds
	}

	return client.sayCommand(channel, "timeout", username, strconv.Itoa(seconds), reason)
}

// Mod grants a user moderator status.
func (client *Client) Mod(channel, username string) error {
	return client.mod(channel, username, true)
}

// Unmod revokes a user's moderator status.
func (client *Client) Unmod(channel, username string) error {
	return client.mod(channel, username, false)
}

func (client *Client) mod(channel, username string, on bool) error {
	username = ircutil.Username(username)
	if username == "" {
		return fmt.Errorf("%w: empty username", ErrInvalidArgument)
	}

	return client.sayCommand(channel, statePrefix(on)+"mod", username)
}

// Mods asks for the channel's moderator roster. The answer arrives as a
// room_mods notice, which also refreshes the channel's moderator set.
func (client *Client) Mods(channel string) error {
	return client.sayCommand(channel, "mods")
}

// Host hosts another channel.
func (client *Client) Host(channel, target string) error {
	target = ircutil.Username(target)
	if target == "" {
		return fmt.Errorf("%w: empty host target", ErrInvalidArgument)
	}

	return client.sayCommand(channel, "host", target)
}

// Unhost stops hosting.
func (client *Client) Unhost(channel string) error {
	return client.sayCommand(channel, "unhost")
}

// Clear wipes the channel's chat history.
func (client *Client) Clear(channel string) error {
	return client.sayCommand(channel, "clear")
}

// Color sets the client's message color. Hex colors may omit the leading
// #; named colors pass through as-is. The validated value is the one sent.
func (client *Client) Color(color string) error {
	if color == "" {
		return fmt.Errorf("%w: no color to send", ErrInvalidArgument)
	}

	if hexColorBody.MatchString(color) {
		color = "#" + color
	}
	if strings.HasPrefix(color, "#") && !hexColor.MatchString(color) {
		return fmt.Errorf("%w: malformed color %q", ErrInvalidArgument, color)
	}

	return client.sayCommand("jtv", "color", color)
}

// Commercial runs an ad break of the given length. Invalid or non-positive
// lengths fall back to the 30 second default rather than failing the call.
func (client *Client) Commercial(channel string, seconds int) error {
	if seconds <= 0 {
		seconds = DefaultCommercialSeconds
	}

	return client.sayCommand(channel, "commercial", strconv.Itoa(seconds))
}

// Whisper sends a direct message through the service's whisper command.
func (client *Client) Whisper(username, message string) error {
	username = ircutil.Username(username)
	if username == "" {
		return fmt.Errorf("%w: empty username", ErrInvalidArgument)
	}
	if message == "" {
		return fmt.Errorf("%w: empty message", ErrInvalidArgument)
	}

	return client.sayCommand("jtv", "w", username, message)
}
