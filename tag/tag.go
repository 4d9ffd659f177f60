// Package tag decodes the typed message tags attached to chat protocol
// lines. Tag values are loosely typed on the wire; this package gives each
// known key a stable Go shape and applies the service's boolean coercion to
// the rest.
package tag

import (
	"errors"
	"strconv"
	"strings"

	"github.com/twirc/twirc/ircutil"
)

// ErrNilTags is returned by Decode when given a nil map. The tokenizer
// always produces a map, even an empty one, so a nil here is a contract
// violation rather than a protocol edge case.
var ErrNilTags = errors.New("tag: nil tag map")

// A Badge is one entry of the badges or badgeInfo tag. Level holds the
// parsed version when it is cleanly numeric; Raw always keeps the original
// token after the slash.
type Badge struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Raw   string `json:"raw,omitempty"`
}

// A Span is an inclusive character range into the message text. The
// protocol gives no guarantee the offsets fit the message; no bounds
// validation happens here.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// An Emote is one emote id with every occurrence within the message text.
type Emote struct {
	ID    string `json:"id"`
	Spans []Span `json:"spans"`
}

// A Map holds decoded tag values keyed by camel-cased tag name. Values are
// bool, string, []Badge or []Emote.
type Map map[string]interface{}

// Decode converts raw key/value tags into a typed Map. Keys are normalized
// to camelCase; badges and badgeInfo go through the badge decoder, emotes
// through the emote decoder, and every other value is coerced to bool when
// it is a literal "0" or "1". Decode has no side effects and is
// deterministic for a given input.
func Decode(raw map[string]string) (Map, error) {
	if raw == nil {
		return nil, ErrNilTags
	}

	m := make(Map, len(raw))
	for key, value := range raw {
		key = CamelKey(key)

		switch key {
		case "badges", "badgeInfo":
			m[key] = ParseBadges(value)
		case "emotes":
			m[key] = ParseEmotes(value)
		default:
			switch value {
			case "1":
				m[key] = true
			case "0":
				m[key] = false
			default:
				m[key] = value
			}
		}
	}

	return m, nil
}

// CamelKey normalizes a tag key to camelCase identifier form, e.g.
// "display-name" to "displayName".
func CamelKey(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(parts) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(len(key))
	b.WriteString(strings.ToLower(parts[0]))
	for _, part := range parts[1:] {
		part = strings.ToLower(part)
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}

	return b.String()
}

// ParseBadges decodes a badges tag value like "subscriber/12,premium/1".
func ParseBadges(value string) []Badge {
	if value == "" {
		return nil
	}

	tokens := strings.Split(value, ",")
	badges := make([]Badge, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}

		nameLevel := strings.SplitN(token, "/", 2)
		badge := Badge{Name: nameLevel[0]}
		if len(nameLevel) == 2 {
			badge.Raw = nameLevel[1]
			if level, ok := ircutil.TryInt(badge.Raw); ok {
				badge.Level = level
			}
		}

		badges = append(badges, badge)
	}

	return badges
}

// ParseEmotes decodes an emotes tag value like "25:0-4,6-10/1902:12-16"
// into emote spans. Malformed entries are skipped rather than failing the
// whole tag.
func ParseEmotes(value string) []Emote {
	if value == "" {
		return nil
	}

	tokens := strings.Split(value, "/")
	emotes := make([]Emote, 0, len(tokens))
	for _, token := range tokens {
		idSpans := strings.SplitN(token, ":", 2)
		if len(idSpans) != 2 {
			continue
		}

		emote := Emote{ID: idSpans[0]}
		for _, span := range strings.Split(idSpans[1], ",") {
			startEnd := strings.SplitN(span, "-", 2)
			if len(startEnd) != 2 {
				continue
			}

			start, _ := strconv.Atoi(startEnd[0])
			end, _ := strconv.Atoi(startEnd[1])
			emote.Spans = append(emote.Spans, Span{Start: start, End: end})
		}

		emotes = append(emotes, emote)
	}

	return emotes
}

// Bool gets a boolean tag, false if absent or another type.
func (m Map) Bool(key string) bool {
	b, _ := m[key].(bool)
	return b
}

// String gets a string tag, "" if absent or another type.
func (m Map) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// Badges gets a badge-list tag, nil if absent or another type.
func (m Map) Badges(key string) []Badge {
	badges, _ := m[key].([]Badge)
	return badges
}

// Emotes gets an emote-list tag, nil if absent or another type.
func (m Map) Emotes(key string) []Emote {
	emotes, _ := m[key].([]Emote)
	return emotes
}

// Clone returns a shallow copy of the map. Badge and emote slices are
// shared, which is fine as long as nobody mutates them.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}

	clone := make(Map, len(m))
	for key, value := range m {
		clone[key] = value
	}

	return clone
}
