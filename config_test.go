package twirc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twirc/twirc"
)

func TestConfigWithDefaults(t *testing.T) {
	table := []struct {
		Name     string
		Config   twirc.Config
		Protocol string
		Host     string
		Port     int
	}{
		{"Empty", twirc.Config{}, "wss", twirc.DefaultWebSocketHost, 443},
		{"Insecure", twirc.Config{Insecure: true}, "ws", twirc.DefaultWebSocketHost, 80},
		{"IRC", twirc.Config{Protocol: "irc"}, "irc", twirc.DefaultIRCHost, 6667},
		{"IRCS", twirc.Config{Protocol: "ircs"}, "ircs", twirc.DefaultIRCHost, 6697},
		{"Overrides", twirc.Config{Protocol: "ws", Host: "localhost", Port: 8080}, "ws", "localhost", 8080},
	}

	for _, row := range table {
		t.Run(row.Name, func(t *testing.T) {
			config := row.Config.WithDefaults()

			assert.Equal(t, row.Protocol, config.Protocol)
			assert.Equal(t, row.Host, config.Host)
			assert.Equal(t, row.Port, config.Port)
			assert.NotEmpty(t, config.Username)
		})
	}
}

func TestAnonymousUsername(t *testing.T) {
	for i := 0; i < 16; i++ {
		name := twirc.AnonymousUsername()

		assert.True(t, strings.HasPrefix(name, "justinfan"), name)
		assert.LessOrEqual(t, len(name), 25)
	}
}
