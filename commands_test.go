package twirc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twirc/twirc"
	"github.com/twirc/twirc/internal/irctest"
)

func TestCommands(t *testing.T) {
	var client *twirc.Client

	interaction := irctest.Interaction{
		Strict: true,
		Lines: []irctest.InteractionLine{
			{Client: "CAP REQ *"},
			{Client: "PASS *"},
			{Client: "NICK test"},
			{Client: "USER test *"},

			{Callback: func() error { return client.Join("Forsen") }},
			{Client: "JOIN #forsen"},
			{Callback: func() error { return client.Part("#Forsen") }},
			{Client: "PART #forsen"},

			{Callback: func() error { return client.Say("forsen", "Hello, World") }},
			{Client: "PRIVMSG #forsen :Hello, World"},
			{Callback: func() error { return client.Sayf("forsen", "Hello, %s", "World") }},
			{Client: "PRIVMSG #forsen :Hello, World"},
			{Callback: func() error { return client.Action("forsen", "waves") }},
			{Client: "PRIVMSG #forsen :\x01ACTION waves\x01"},

			{Callback: func() error { return client.Ban("Forsen", "Bad_User", "spamming") }},
			{Client: "PRIVMSG #forsen :/ban bad_user spamming"},
			{Callback: func() error { return client.Ban("forsen", "bad_user", "") }},
			{Client: "PRIVMSG #forsen :/ban bad_user"},
			{Callback: func() error { return client.Unban("forsen", "Bad_User") }},
			{Client: "PRIVMSG #forsen :/unban bad_user"},
			{Callback: func() error { return client.Timeout("forsen", "bad_user", 600, "calm down") }},
			{Client: "PRIVMSG #forsen :/timeout bad_user 600 calm down"},
			{Callback: func() error { return client.Timeout("forsen", "bad_user", 0, "") }},
			{Client: "PRIVMSG #forsen :/timeout bad_user 1"},

			{Callback: func() error { return client.Slow("forsen", 30) }},
			{Client: "PRIVMSG #forsen :/slow 30"},
			{Callback: func() error { return client.Slow("forsen", 0) }},
			{Client: "PRIVMSG #forsen :/slow 120"},
			{Callback: func() error { return client.SlowOff("forsen") }},
			{Client: "PRIVMSG #forsen :/slowoff"},
			{Callback: func() error { return client.EmoteOnly("forsen") }},
			{Client: "PRIVMSG #forsen :/emoteonly"},
			{Callback: func() error { return client.EmoteOnlyOff("forsen") }},
			{Client: "PRIVMSG #forsen :/emoteonlyoff"},
			{Callback: func() error { return client.Subscribers("forsen") }},
			{Client: "PRIVMSG #forsen :/subscribers"},
			{Callback: func() error { return client.SubscribersOff("forsen") }},
			{Client: "PRIVMSG #forsen :/subscribersoff"},
			{Callback: func() error { return client.R9kBeta("forsen") }},
			{Client: "PRIVMSG #forsen :/r9kbeta"},
			{Callback: func() error { return client.R9kBetaOff("forsen") }},
			{Client: "PRIVMSG #forsen :/r9kbetaoff"},

			{Callback: func() error { return client.Mod("forsen", "New_Mod") }},
			{Client: "PRIVMSG #forsen :/mod new_mod"},
			{Callback: func() error { return client.Unmod("forsen", "new_mod") }},
			{Client: "PRIVMSG #forsen :/unmod new_mod"},
			{Callback: func() error { return client.Mods("forsen") }},
			{Client: "PRIVMSG #forsen :/mods"},

			{Callback: func() error { return client.Host("forsen", "#Other_Channel") }},
			{Client: "PRIVMSG #forsen :/host other_channel"},
			{Callback: func() error { return client.Unhost("forsen") }},
			{Client: "PRIVMSG #forsen :/unhost"},
			{Callback: func() error { return client.Clear("forsen") }},
			{Client: "PRIVMSG #forsen :/clear"},
			{Callback: func() error { return client.Commercial("forsen", 60) }},
			{Client: "PRIVMSG #forsen :/commercial 60"},
			{Callback: func() error { return client.Commercial("forsen", 0) }},
			{Client: "PRIVMSG #forsen :/commercial 30"},

			{Callback: func() error { return client.Color("FF4500") }},
			{Client: "PRIVMSG #jtv :/color #FF4500"},
			{Callback: func() error { return client.Color("#FF4500") }},
			{Client: "PRIVMSG #jtv :/color #FF4500"},
			{Callback: func() error { return client.Color("BlueViolet") }},
			{Client: "PRIVMSG #jtv :/color BlueViolet"},

			{Callback: func() error { return client.Whisper("Other_User", "psst, over here") }},
			{Client: "PRIVMSG #jtv :/w other_user psst, over here"},

			{Callback: func() error { return client.Pong("tmi.twitch.tv") }},
			{Client: "PONG :tmi.twitch.tv"},
			{Callback: func() error { return client.Pong("") }},
			{Client: "PONG"},
		},
	}

	addr, err := interaction.Listen()
	if err != nil {
		t.Fatal("Listen:", err)
	}

	client = twirc.New(context.Background(), testConfig(t, addr))
	defer client.Destroy()

	if err := client.Connect(); err != nil {
		t.Fatal("Connect:", err)
	}

	interaction.Wait()

	if fail := interaction.Failure; fail != nil {
		t.Error("Index:", fail.Index)
		t.Error("NetErr:", fail.NetErr)
		t.Error("CBErr:", fail.CBErr)
		t.Error("Result:", fail.Result)
	}
}

func TestCommandsValidation(t *testing.T) {
	client := twirc.New(context.Background(), twirc.Config{Username: "test"})
	defer client.Destroy()

	// Argument validation fails before any send is attempted, so none of
	// these need a connection.
	assert.ErrorIs(t, client.Join(""), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Join("###"), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Part(""), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Say("", "hello"), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Say("forsen", ""), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Ban("forsen", "", "reason"), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Unban("forsen", "___"), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Timeout("forsen", "", 600, ""), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Mod("forsen", ""), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Host("forsen", ""), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Color(""), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Color("#ZZZZZZ"), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Color("#FF450"), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Whisper("", "psst"), twirc.ErrInvalidArgument)
	assert.ErrorIs(t, client.Whisper("other_user", ""), twirc.ErrInvalidArgument)

	// Valid arguments without a connection surface the transport state.
	assert.ErrorIs(t, client.Say("forsen", "hello"), twirc.ErrNotConnected)
	assert.ErrorIs(t, client.Join("forsen"), twirc.ErrNotConnected)
	assert.ErrorIs(t, client.Pong(""), twirc.ErrNotConnected)
}
