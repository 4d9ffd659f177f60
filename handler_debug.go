package twirc

import (
	"encoding/json"
	"log"
)

// DebugLogger is the sink for EnableDebug and the client's internal
// diagnostics.
type DebugLogger interface {
	Println(v ...interface{})
}

type defaultDebugLogger struct{}

func (logger *defaultDebugLogger) Println(v ...interface{}) {
	log.Println(v...)
}

// EnableDebug logs every event that passes through the client as JSON,
// ignoring killed events. You may pass `nil` as a logger to use the
// standard log package's Println.
func EnableDebug(client *Client, logger DebugLogger, indented bool) {
	if logger == nil {
		logger = &defaultDebugLogger{}
	}

	client.AddHandler(func(event *Event, client *Client) {
		var data []byte
		var err error

		if indented {
			data, err = json.MarshalIndent(event, "", "  ")
		} else {
			data, err = json.Marshal(event)
		}
		if err != nil {
			return
		}

		logger.Println(string(data))
	})
}
