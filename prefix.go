package twirc

import "strings"

// A Prefix is the parsed sender of a protocol line. On this network the
// three fields usually agree with each other, but the full nick!user@host
// shape is accepted.
type Prefix struct {
	Nick string `json:"nick"`
	User string `json:"user,omitempty"`
	Host string `json:"host,omitempty"`
}

// ParsePrefix interprets a nick!user@host prefix. It is total: malformed or
// empty input yields an empty Prefix rather than an error, since handlers
// read the nick unconditionally.
func ParsePrefix(raw string) Prefix {
	if raw == "" {
		return Prefix{}
	}

	prefix := Prefix{}

	if at := strings.IndexByte(raw, '@'); at >= 0 {
		prefix.Host = raw[at+1:]
		raw = raw[:at]
	}
	if bang := strings.IndexByte(raw, '!'); bang >= 0 {
		prefix.User = raw[bang+1:]
		raw = raw[:bang]
	}
	prefix.Nick = raw

	return prefix
}

// Empty returns true when no sender was present on the line.
func (prefix Prefix) Empty() bool {
	return prefix == Prefix{}
}

// String re-assembles the wire form of the prefix.
func (prefix Prefix) String() string {
	s := prefix.Nick
	if prefix.User != "" {
		s += "!" + prefix.User
	}
	if prefix.Host != "" {
		s += "@" + prefix.Host
	}

	return s
}
