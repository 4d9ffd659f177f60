package twirc

import "errors"

// ErrAlreadyConnected is returned by Connect while a live connection
// exists, whether it is still connecting or fully open.
var ErrAlreadyConnected = errors.New("twirc: connection already open")

// ErrAlreadyClosed is returned by Disconnect when there is no live
// connection to close.
var ErrAlreadyClosed = errors.New("twirc: connection already closed")

// ErrNotConnected is returned if you try to send something without a live
// connection.
var ErrNotConnected = errors.New("twirc: no connection")

// ErrInvalidArgument wraps every argument validation failure. Validation
// happens before any wire I/O, so a command that fails with it has sent
// nothing.
var ErrInvalidArgument = errors.New("twirc: invalid argument")
