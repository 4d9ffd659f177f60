// Package ircutil contains small text helpers shared by the client and its
// handlers: name normalization, the CTCP ACTION envelope and permissive
// argument parsing.
package ircutil

import (
	"strconv"
	"strings"
)

// Username normalizes a login name the way the chat service does: non-word
// characters are stripped, leading underscores dropped, the rest lowercased
// and truncated to 25 characters. It returns "" when nothing remains, which
// callers should treat as invalid input.
func Username(name string) string {
	b := make([]byte, 0, len(name))

	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
			b = append(b, c+('a'-'A'))
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
			b = append(b, c)
		}
	}

	for len(b) > 0 && b[0] == '_' {
		b = b[1:]
	}

	if len(b) > 25 {
		b = b[:25]
	}

	return string(b)
}

// Channel normalizes a channel argument to the canonical #name form. Like
// Username, it returns "" on input that normalizes to nothing.
func Channel(name string) string {
	name = Username(name)
	if name == "" {
		return ""
	}

	return "#" + name
}

// TryInt converts a string to an integer the way the service's tooling
// does: only values that look numeric are converted, everything else is
// rejected. A fractional part is cut off rather than rounded.
func TryInt(s string) (n int, ok bool) {
	if s == "" {
		return 0, false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '-' && c != '.' {
			return 0, false
		}
	}

	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		s = s[:dot]
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}
