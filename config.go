package twirc

import (
	"math/rand"
	"strconv"
)

// Default endpoints of the chat service.
const (
	DefaultWebSocketHost = "irc-ws.chat.twitch.tv"
	DefaultIRCHost       = "irc.chat.twitch.tv"
)

// The Config for a chat client.
type Config struct {
	// Protocol picks the transport: "wss" (default), "ws", "ircs" or
	// "irc".
	Protocol string `json:"protocol"`

	// Host is the chat endpoint hostname. Defaults to the service's
	// websocket edge, or the classic IRC edge for the irc protocols.
	Host string `json:"host"`

	// Port defaults to the standard port of the chosen protocol.
	Port int `json:"port"`

	// Insecure selects the unencrypted protocol variant when Protocol is
	// left empty.
	Insecure bool `json:"insecure"`

	// SkipTLSVerification disables certificate verification. Do not do
	// this in production.
	SkipTLSVerification bool `json:"skipTlsVerification"`

	// Username is the login name. An anonymous justinfan guest name is
	// generated when empty.
	Username string `json:"username"`

	// Password is the oauth token, sent with PASS when present. Anonymous
	// connections need none.
	Password string `json:"-"`

	// Debug receives internal diagnostics when set.
	Debug DebugLogger `json:"-"`
}

// WithDefaults returns the config with the default values filled in.
func (config Config) WithDefaults() Config {
	if config.Protocol == "" {
		if config.Insecure {
			config.Protocol = "ws"
		} else {
			config.Protocol = "wss"
		}
	}

	if config.Host == "" {
		switch config.Protocol {
		case "irc", "ircs":
			config.Host = DefaultIRCHost
		default:
			config.Host = DefaultWebSocketHost
		}
	}

	if config.Port == 0 {
		switch config.Protocol {
		case "ws":
			config.Port = 80
		case "irc":
			config.Port = 6667
		case "ircs":
			config.Port = 6697
		default:
			config.Port = 443
		}
	}

	if config.Username == "" {
		config.Username = AnonymousUsername()
	}

	return config
}

// AnonymousUsername returns a justinfan guest name like the web client
// uses for read-only connections.
func AnonymousUsername() string {
	return "justinfan" + strconv.Itoa(1000+rand.Intn(80000))
}
