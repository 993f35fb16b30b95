package chat

import (
	"io"
	"net"
	"sync"
	"time"
)

// fakeConn is an in-memory chat.Conn for engine tests: inbound lines are fed
// through the in channel, written lines are captured on out.
type fakeConn struct {
	in     chan string
	out    chan string
	closed chan struct{}
	once   sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:     make(chan string, 16),
		out:    make(chan string, 256),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) ReadLine() (string, error) {
	select {
	case line := <-c.in:
		return line, nil
	case <-c.closed:
		return "", io.EOF
	}
}

func (c *fakeConn) WriteLine(line string) error {
	select {
	case c.out <- line:
		return nil
	case <-c.closed:
		return net.ErrClosed
	}
}

func (c *fakeConn) SetReadDeadline(time.Time) error { return nil }

func (c *fakeConn) RemoteAddr() string { return "fake:0" }

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}
