// Package transport provides the socket transports the chat client runs
// over: the service's websocket edge and the classic IRC endpoint. The
// client only depends on the Conn interface; reconnect and backoff policy
// stay with the caller.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
)

// A Conn is one live duplex connection delivering text chunks. A chunk may
// contain any number of protocol lines. WriteLine is safe for concurrent
// use and never interleaves partial lines on the wire.
type Conn interface {
	// ReadChunk blocks until the next inbound text chunk arrives.
	ReadChunk() (string, error)

	// WriteLine sends one protocol line; the line terminator is added by
	// the transport where the framing needs one.
	WriteLine(line string) error

	// Close tears the connection down. A blocked ReadChunk returns with an
	// error afterwards.
	Close() error
}

// Config selects and parameterizes a transport.
type Config struct {
	// Protocol is "wss", "ws", "ircs" or "irc".
	Protocol string

	Host string
	Port int

	// SkipTLSVerification disables certificate verification on the secure
	// protocols. Do not do this in production.
	SkipTLSVerification bool
}

// ErrUnknownProtocol is returned by Dial for unsupported protocol names.
var ErrUnknownProtocol = errors.New("transport: unknown protocol")

// Dial opens the transport selected by the config.
func Dial(ctx context.Context, config Config) (Conn, error) {
	addr := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))

	switch config.Protocol {
	case "ws", "wss":
		u := url.URL{Scheme: config.Protocol, Host: addr}
		return DialWebSocket(ctx, u.String(), config.SkipTLSVerification)
	case "irc":
		return DialTCP(ctx, addr, false, false)
	case "ircs":
		return DialTCP(ctx, addr, true, config.SkipTLSVerification)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownProtocol, config.Protocol)
}

// IsNormalClose reports whether a read error is an orderly teardown rather
// than a transport failure.
func IsNormalClose(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || isNormalWebSocketClose(err)
}
