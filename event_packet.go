package twirc

import (
	"errors"
	"strings"
	"time"

	"github.com/twirc/twirc/ircutil"
	"github.com/twirc/twirc/tag"
)

var unescapeTags = strings.NewReplacer("\\\\", "\\", "\\:", ";", "\\s", " ", "\\r", "\r", "\\n", "\n")

// ParsePacket decodes one wire line into an event of kind `packet`. Tags go
// through the typed tag codec, the prefix through the prefix interpreter,
// and the first parameter becomes the derived channel key. The CTCP ACTION
// envelope is left intact; the message handler unwraps it.
func ParsePacket(line string) (Event, error) {
	event := NewEvent("packet", "")
	event.Time = time.Now()
	event.Raw = line

	if len(line) == 0 {
		return event, errors.New("twirc: empty line")
	}

	// Parse tags
	rawTags := make(map[string]string)
	if line[0] == '@' {
		split := strings.SplitN(line, " ", 2)
		if len(split) < 2 {
			return event, errors.New("twirc: incomplete packet")
		}

		for _, token := range strings.Split(split[0][1:], ";") {
			kv := strings.SplitN(token, "=", 2)

			if len(kv) == 2 {
				rawTags[kv[0]] = unescapeTags.Replace(kv[1])
			} else {
				rawTags[kv[0]] = ""
			}
		}

		line = split[1]
	}

	tags, err := tag.Decode(rawTags)
	if err != nil {
		return event, err
	}
	event.Tags = tags

	// Parse prefix
	if line[0] == ':' {
		split := strings.SplitN(line, " ", 2)
		if len(split) < 2 {
			return event, errors.New("twirc: incomplete packet")
		}

		event.Sender = ParsePrefix(split[0][1:])
		line = split[1]
	}

	// Parse body
	split := strings.SplitN(line, " :", 2)
	tokens := strings.Split(split[0], " ")

	event.Command = tokens[0]
	event.Params = tokens[1:]
	if len(split) == 2 {
		event.Text = split[1]
		event.Params = append(event.Params, split[1])
	}

	if len(event.Params) > 0 {
		event.Channel = ircutil.Username(event.Params[0])
	}

	event.verb = strings.ToLower(event.Command)
	event.name = event.kind + "." + event.verb

	return event, nil
}
