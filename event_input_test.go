package twirc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twirc/twirc"
)

func TestParseInput(t *testing.T) {
	table := []struct {
		Input string
		Verb  string
		Text  string
	}{
		{"Hello, World", "text", "Hello, World"},
		{"/me does stuff", "me", "does stuff"},
		{"/ban bad_user spamming", "ban", "bad_user spamming"},
		{"/SLOW 30", "slow", "30"},
		{"/mods", "mods", ""},
		{"", "text", ""},
	}

	for _, row := range table {
		t.Run(row.Input, func(t *testing.T) {
			event := twirc.ParseInput(row.Input)

			assert.Equal(t, "input", event.Kind())
			assert.Equal(t, row.Verb, event.Verb())
			assert.Equal(t, row.Text, event.Text)
		})
	}
}
