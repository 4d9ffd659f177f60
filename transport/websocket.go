package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// A wsConn adapts a websocket connection. Each text message is one chunk
// and may carry several protocol lines.
type wsConn struct {
	conn *websocket.Conn

	mutex sync.Mutex
}

// DialWebSocket connects to the websocket chat edge using the irc
// subprotocol.
func DialWebSocket(ctx context.Context, rawURL string, skipVerify bool) (Conn, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 45 * time.Second,
		Subprotocols:     []string{"irc"},
	}
	if skipVerify {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	conn, resp, err := dialer.DialContext(ctx, rawURL, nil)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return nil, err
	}

	return &wsConn{conn: conn}, nil
}

func (ws *wsConn) ReadChunk() (string, error) {
	for {
		messageType, data, err := ws.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if messageType != websocket.TextMessage {
			continue
		}

		return string(data), nil
	}
}

func (ws *wsConn) WriteLine(line string) error {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	return ws.conn.WriteMessage(websocket.TextMessage, []byte(strings.TrimRight(line, "\r\n")))
}

func (ws *wsConn) Close() error {
	ws.mutex.Lock()
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = ws.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(time.Second))
	ws.mutex.Unlock()

	return ws.conn.Close()
}

// CloseInfo extracts a close code and reason from a read error. Plain
// connection teardowns report code 0 with the error text as reason.
func CloseInfo(err error) (code int, reason string) {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return closeErr.Code, closeErr.Text
	}

	if err == nil || IsNormalClose(err) {
		return 0, "connection closed"
	}

	return 0, err.Error()
}

func isNormalWebSocketClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
