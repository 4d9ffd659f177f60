package ircutil

import (
	"strings"
)

const (
	actionPrefix = "\x01ACTION "
	actionSuffix = "\x01"
)

// ParseAction unwraps a CTCP ACTION envelope. It returns the inner text and
// whether the message was an action; non-action messages come back
// unchanged.
func ParseAction(text string) (string, bool) {
	if !strings.HasPrefix(text, actionPrefix) || !strings.HasSuffix(text, actionSuffix) {
		return text, false
	}

	inner := text[len(actionPrefix) : len(text)-len(actionSuffix)]
	if inner == "" || strings.Contains(inner, "\x01") {
		return text, false
	}

	return inner, true
}

// Action wraps a message in the CTCP ACTION envelope used for /me-style
// messages.
func Action(text string) string {
	return actionPrefix + text + actionSuffix
}
