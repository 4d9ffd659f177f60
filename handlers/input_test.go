package handlers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twirc/twirc"
	"github.com/twirc/twirc/handlers"
	"github.com/twirc/twirc/internal/irctest"
)

// Wire output is covered by the client tests; this one checks argument
// handling, which needs no connection.
func TestInputErrors(t *testing.T) {
	logger := irctest.EventLog{}

	client := twirc.New(context.Background(), twirc.Config{Username: "test"})
	defer client.Destroy()

	client.AddHandler(handlers.Input)
	client.AddHandler(logger.Handler)

	emit := func(line, channel string) {
		event := twirc.ParseInput(line)
		event.Channel = channel

		_ = client.EmitSync(context.Background(), event)

		// The handler's error events trail the input event; another pass
		// through the loop flushes them.
		_ = client.EmitSync(context.Background(), twirc.NewEvent("test", "sync"))
	}

	table := []struct {
		Name    string
		Line    string
		Channel string
		Error   string
	}{
		{"JoinWithoutChannel", "/join", "", "Usage: /join <channel>"},
		{"PartWithoutChannel", "/part", "", "Usage: /part <channel>"},
		{"MeWithoutText", "/me", "forsen", "Usage: /me <text...>"},
		{"BanWithoutUsername", "/ban", "forsen", "Usage: /ban <username> [reason...]"},
		{"UnbanWithoutUsername", "/unban", "forsen", "Usage: /unban <username>"},
		{"TimeoutWithoutUsername", "/timeout", "forsen", "Usage: /timeout <username> [seconds] [reason...]"},
		{"WhisperWithoutMessage", "/w other_user", "", "Usage: /w <username> <message...>"},
		{"TextWithoutChannel", "Hello, World", "", "No channel selected"},
		{"SayWithoutConnection", "Hello, World", "forsen", twirc.ErrNotConnected.Error()},
		{"BanWithoutConnection", "/ban bad_user", "forsen", twirc.ErrNotConnected.Error()},
	}

	for _, row := range table {
		t.Run(row.Name, func(t *testing.T) {
			emit(row.Line, row.Channel)

			event := logger.Last("error", "input")
			if assert.NotNil(t, event) {
				assert.Equal(t, row.Error, event.Text)
			}
		})
	}
}

func TestInputIgnoresOtherKinds(t *testing.T) {
	logger := irctest.EventLog{}

	client := twirc.New(context.Background(), twirc.Config{Username: "test"})
	defer client.Destroy()

	client.AddHandler(handlers.Input)
	client.AddHandler(logger.Handler)

	event := twirc.NewEvent("chat", "message")
	event.Text = "/ban bad_user"
	_ = client.EmitSync(context.Background(), event)
	_ = client.EmitSync(context.Background(), twirc.NewEvent("test", "sync"))

	assert.Nil(t, logger.Last("error", "input"))

	if message := logger.Last("chat", "message"); assert.NotNil(t, message) {
		assert.False(t, message.Killed())
	}
}
