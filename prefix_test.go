package twirc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twirc/twirc"
)

func TestParsePrefix(t *testing.T) {
	table := []struct {
		Raw      string
		Expected twirc.Prefix
	}{
		{"cool_user!cool_user@cool_user.tmi.twitch.tv", twirc.Prefix{Nick: "cool_user", User: "cool_user", Host: "cool_user.tmi.twitch.tv"}},
		{"tmi.twitch.tv", twirc.Prefix{Nick: "tmi.twitch.tv"}},
		{"jtv", twirc.Prefix{Nick: "jtv"}},
		{"cool_user@host.example.com", twirc.Prefix{Nick: "cool_user", Host: "host.example.com"}},
		{"cool_user!ident", twirc.Prefix{Nick: "cool_user", User: "ident"}},
		{"", twirc.Prefix{}},
	}

	for _, row := range table {
		t.Run(row.Raw, func(t *testing.T) {
			prefix := twirc.ParsePrefix(row.Raw)

			assert.Equal(t, row.Expected, prefix)
			assert.Equal(t, row.Raw, prefix.String())
			assert.Equal(t, row.Raw == "", prefix.Empty())
		})
	}
}
