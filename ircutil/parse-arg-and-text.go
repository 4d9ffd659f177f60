package ircutil

import (
	"strings"
)

// ParseArgAndText splits a text like "bad_user stuff and things" into
// "bad_user" and "stuff and things". Input commands that take a username
// followed by free text all parse this way.
func ParseArgAndText(s string) (arg, text string) {
	spaceIndex := strings.Index(s, " ")
	if spaceIndex == -1 {
		return s, ""
	}

	return s[:spaceIndex], s[spaceIndex+1:]
}
