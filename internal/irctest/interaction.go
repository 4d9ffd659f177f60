package irctest

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// An Interaction is a "simulated" chat server that will trigger the
// client.
type Interaction struct {
	wg sync.WaitGroup

	Strict  bool
	Lines   []InteractionLine
	Log     []string
	Failure *InteractionFailure
}

// Listen listens for a plain TCP client in a separate goroutine.
func (interaction *Interaction) Listen() (addr string, err error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}

	interaction.wg.Add(1)
	go func() {
		defer interaction.wg.Done()
		defer listener.Close()

		conn, err := listener.Accept()
		if err != nil {
			interaction.Failure = &InteractionFailure{
				Index: -1, NetErr: err,
			}

			return
		}

		defer conn.Close()

		reader := bufio.NewReader(conn)

		interaction.run(
			func() (string, error) {
				_ = conn.SetReadDeadline(time.Now().Add(time.Second * 2))
				return reader.ReadString('\n')
			},
			func(line string) error {
				_ = conn.SetWriteDeadline(time.Now().Add(time.Second * 2))
				_, err := conn.Write(append([]byte(line), '\r', '\n'))
				return err
			},
		)
	}()

	return listener.Addr().String(), nil
}

var upgrader = websocket.Upgrader{
	Subprotocols: []string{"irc"},
}

// ListenWS serves the interaction over a websocket endpoint, one message
// per line. It returns the host:port of the test server.
func (interaction *Interaction) ListenWS() (addr string, err error) {
	interaction.wg.Add(1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer interaction.wg.Done()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			interaction.Failure = &InteractionFailure{
				Index: -1, NetErr: err,
			}

			return
		}

		defer conn.Close()

		interaction.run(
			func() (string, error) {
				_ = conn.SetReadDeadline(time.Now().Add(time.Second * 2))
				_, data, err := conn.ReadMessage()
				return string(data), err
			},
			func(line string) error {
				_ = conn.SetWriteDeadline(time.Now().Add(time.Second * 2))
				return conn.WriteMessage(websocket.TextMessage, []byte(line+"\r\n"))
			},
		)
	}))

	return strings.TrimPrefix(server.URL, "http://"), nil
}

func (interaction *Interaction) run(read func() (string, error), write func(string) error) {
	lines := make([]InteractionLine, len(interaction.Lines))
	copy(lines, interaction.Lines)

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if line.Server != "" {
			err := write(line.Server)
			if err != nil {
				interaction.Failure = &InteractionFailure{
					Index: i, NetErr: err,
				}
				return
			}
		} else if line.Client != "" {
			input, err := read()
			if err != nil {
				interaction.Failure = &InteractionFailure{
					Index: i, NetErr: err,
				}
				return
			}
			input = strings.Replace(input, "\r", "", -1)
			input = strings.Replace(input, "\n", "", 1)

			match := line.Client
			success := false

			if strings.HasSuffix(match, "*") {
				success = strings.HasPrefix(input, match[:len(match)-1])
			} else {
				success = match == input
			}

			interaction.Log = append(interaction.Log, input)

			if !success {
				if !interaction.Strict {
					i--
					continue
				}

				interaction.Failure = &InteractionFailure{
					Index: i, Result: input,
				}
				return
			}
		} else if line.Callback != nil {
			err := line.Callback()
			if err != nil {
				interaction.Failure = &InteractionFailure{
					Index: i, CBErr: err,
				}
				return
			}
		}
	}
}

// Wait waits for the interaction to finish. It's safe to check
// Failure after that.
func (interaction *Interaction) Wait() {
	interaction.wg.Wait()
}

// InteractionFailure signifies a test failure.
type InteractionFailure struct {
	Index  int
	Result string
	NetErr error
	CBErr  error
}

// InteractionLine is part of an interaction, whether it is a line
// that is sent to a client or a line expected from a client.
type InteractionLine struct {
	Client   string
	Server   string
	Callback func() error
}
