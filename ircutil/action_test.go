package ircutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twirc/twirc/ircutil"
)

func TestParseAction(t *testing.T) {
	table := []struct {
		Name     string
		Input    string
		Expected string
		IsAction bool
	}{
		{"Plain", "hello there", "hello there", false},
		{"Action", "\x01ACTION waves\x01", "waves", true},
		{"EmptyAction", "\x01ACTION \x01", "\x01ACTION \x01", false},
		{"UnterminatedAction", "\x01ACTION waves", "\x01ACTION waves", false},
		{"EmbeddedDelimiter", "\x01ACTION wa\x01ves\x01", "\x01ACTION wa\x01ves\x01", false},
		{"Empty", "", "", false},
	}

	for _, row := range table {
		t.Run(row.Name, func(t *testing.T) {
			text, isAction := ircutil.ParseAction(row.Input)

			assert.Equal(t, row.Expected, text)
			assert.Equal(t, row.IsAction, isAction)
		})
	}
}

func TestActionRoundTrip(t *testing.T) {
	text, isAction := ircutil.ParseAction(ircutil.Action("does stuff"))

	assert.True(t, isAction)
	assert.Equal(t, "does stuff", text)
}

func TestParseArgAndText(t *testing.T) {
	arg, text := ircutil.ParseArgAndText("cool_user stuff and things")
	assert.Equal(t, "cool_user", arg)
	assert.Equal(t, "stuff and things", text)

	arg, text = ircutil.ParseArgAndText("cool_user")
	assert.Equal(t, "cool_user", arg)
	assert.Equal(t, "", text)
}
