package transport

import (
	"bufio"
	"context"
	"crypto/tls"
	"net"
	"strings"
	"sync"
)

// A tcpConn frames the byte stream by line terminators; every chunk is
// exactly one line.
type tcpConn struct {
	conn   net.Conn
	reader *bufio.Reader

	mutex sync.Mutex
}

// DialTCP connects to a classic IRC endpoint, with TLS when secure is set.
func DialTCP(ctx context.Context, addr string, secure, skipVerify bool) (Conn, error) {
	var conn net.Conn
	var err error

	if secure {
		dialer := tls.Dialer{
			NetDialer: &net.Dialer{},
			Config:    &tls.Config{InsecureSkipVerify: skipVerify},
		}
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	} else {
		dialer := net.Dialer{}
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, err
	}

	return &tcpConn{conn: conn, reader: bufio.NewReader(conn)}, nil
}

func (tc *tcpConn) ReadChunk() (string, error) {
	line, err := tc.reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (tc *tcpConn) WriteLine(line string) error {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if !strings.HasSuffix(line, "\n") {
		line += "\r\n"
	}

	_, err := tc.conn.Write([]byte(line))
	return err
}

func (tc *tcpConn) Close() error {
	return tc.conn.Close()
}
