// Package handlers contains optional event handlers for the chat client.
package handlers

import (
	"github.com/twirc/twirc"
	"github.com/twirc/twirc/ircutil"
)

// Input translates input.* events, as produced by Client.EmitInput, into
// chat commands. Front-ends bind a line of user input to a channel and
// this handler does the rest.
func Input(event *twirc.Event, client *twirc.Client) {
	if event.Kind() != "input" {
		return
	}

	switch event.Verb() {

	// /text (or text without a command) sends a message to the bound
	// channel.
	case "text", "say":
		event.Kill()

		if event.Text == "" {
			return
		}
		if event.Channel == "" {
			client.EmitNonBlocking(twirc.NewErrorEvent("input", "No channel selected"))
			return
		}

		reportError(client, client.Say(event.Channel, event.Text))

	// /me and /action send the message as an action.
	case "me", "action":
		event.Kill()

		if usage(client, event.Text == "", "Usage: /me <text...>") {
			return
		}

		reportError(client, client.Action(event.Channel, event.Text))

	case "join":
		event.Kill()

		if usage(client, event.Text == "", "Usage: /join <channel>") {
			return
		}

		reportError(client, client.Join(event.Text))

	case "part", "leave":
		event.Kill()

		channel := event.Text
		if channel == "" {
			channel = event.Channel
		}
		if usage(client, channel == "", "Usage: /part <channel>") {
			return
		}

		reportError(client, client.Part(channel))

	case "ban":
		event.Kill()

		username, reason := ircutil.ParseArgAndText(event.Text)
		if usage(client, username == "", "Usage: /ban <username> [reason...]") {
			return
		}

		reportError(client, client.Ban(event.Channel, username, reason))

	case "unban":
		event.Kill()

		if usage(client, event.Text == "", "Usage: /unban <username>") {
			return
		}

		reportError(client, client.Unban(event.Channel, event.Text))

	// /timeout takes an optional duration; anything that does not look
	// numeric falls back to the service default.
	case "timeout":
		event.Kill()

		username, rest := ircutil.ParseArgAndText(event.Text)
		if usage(client, username == "", "Usage: /timeout <username> [seconds] [reason...]") {
			return
		}

		durationArg, reason := ircutil.ParseArgAndText(rest)
		seconds, ok := ircutil.TryInt(durationArg)
		if !ok {
			seconds = 0
			reason = rest
		}

		reportError(client, client.Timeout(event.Channel, username, seconds, reason))

	case "mod":
		event.Kill()
		reportError(client, client.Mod(event.Channel, event.Text))

	case "unmod":
		event.Kill()
		reportError(client, client.Unmod(event.Channel, event.Text))

	case "mods":
		event.Kill()
		reportError(client, client.Mods(event.Channel))

	case "host":
		event.Kill()
		reportError(client, client.Host(event.Channel, event.Text))

	case "unhost":
		event.Kill()
		reportError(client, client.Unhost(event.Channel))

	case "slow":
		event.Kill()

		seconds, _ := ircutil.TryInt(event.Text)
		reportError(client, client.Slow(event.Channel, seconds))

	case "slowoff":
		event.Kill()
		reportError(client, client.SlowOff(event.Channel))

	case "emoteonly":
		event.Kill()
		reportError(client, client.EmoteOnly(event.Channel))

	case "emoteonlyoff":
		event.Kill()
		reportError(client, client.EmoteOnlyOff(event.Channel))

	case "subscribers":
		event.Kill()
		reportError(client, client.Subscribers(event.Channel))

	case "subscribersoff":
		event.Kill()
		reportError(client, client.SubscribersOff(event.Channel))

	case "r9kbeta", "r9kmode":
		event.Kill()
		reportError(client, client.R9kBeta(event.Channel))

	case "r9kbetaoff", "r9kmodeoff":
		event.Kill()
		reportError(client, client.R9kBetaOff(event.Channel))

	case "clear":
		event.Kill()
		reportError(client, client.Clear(event.Channel))

	case "color":
		event.Kill()
		reportError(client, client.Color(event.Text))

	case "commercial":
		event.Kill()

		seconds, _ := ircutil.TryInt(event.Text)
		reportError(client, client.Commercial(event.Channel, seconds))

	case "w", "whisper":
		event.Kill()

		username, message := ircutil.ParseArgAndText(event.Text)
		if usage(client, username == "" || message == "", "Usage: /w <username> <message...>") {
			return
		}

		reportError(client, client.Whisper(username, message))
	}
}

func usage(client *twirc.Client, bad bool, text string) bool {
	if bad {
		client.EmitNonBlocking(twirc.NewErrorEvent("input", text))
	}

	return bad
}

func reportError(client *twirc.Client, err error) {
	if err != nil {
		client.EmitNonBlocking(twirc.NewErrorEvent("input", err.Error()))
	}
}
