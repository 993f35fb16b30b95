/*
Package server provides the network listeners for the chat relay.

This file defines the transport adapters implementing chat.Conn: a raw TCP
line transport (the primary protocol surface) and a WebSocket transport where
one text frame carries one protocol line.
*/
package server

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sabihanjum/Socket-Chat-Server/internal/app/chat"
)

const (
	// maxLineBytes bounds one inbound line. A longer line is a transport
	// violation and ends the connection.
	maxLineBytes = 8192

	// writeWait bounds one outbound write before the connection is considered dead.
	writeWait = 10 * time.Second
)

// tcpConn adapts a net.Conn into the newline-delimited line transport.
type tcpConn struct {
	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
}

// NewTCPConn wraps a TCP connection in a chat.Conn.
func NewTCPConn(conn net.Conn) chat.Conn {
	return &tcpConn{
		conn: conn,
		r:    bufio.NewReaderSize(conn, maxLineBytes),
		w:    bufio.NewWriter(conn),
	}
}

// ReadLine returns the next newline-delimited command, with the trailing
// newline and any trailing \r stripped. Lines longer than maxLineBytes abort
// the connection instead of buffering without bound.
func (c *tcpConn) ReadLine() (string, error) {
	raw, err := c.r.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		return "", fmt.Errorf("line exceeds %d bytes", maxLineBytes)
	}
	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(raw), "\r\n"), nil
}

// WriteLine sends one response line with its terminator. WriteLine is called
// only from the session's write loop, so the buffered writer needs no lock.
func (c *tcpConn) WriteLine(line string) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	if _, err := c.w.WriteString(line + "\n"); err != nil {
		return err
	}

	return c.w.Flush()
}

func (c *tcpConn) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

func (c *tcpConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func (c *tcpConn) Close() error {
	return c.conn.Close()
}

// wsConn adapts a WebSocket connection: one text frame in each direction
// carries exactly one protocol line.
type wsConn struct {
	conn *websocket.Conn
}

// NewWSConn wraps an upgraded WebSocket connection in a chat.Conn.
func NewWSConn(conn *websocket.Conn) chat.Conn {
	conn.SetReadLimit(maxLineBytes)
	return &wsConn{conn: conn}
}

// ReadLine returns the next text frame's payload, trimmed like the TCP
// transport. Non-text frames are skipped.
func (c *wsConn) ReadLine() (string, error) {
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}

		if msgType != websocket.TextMessage {
			continue
		}

		return strings.TrimRight(string(data), "\r\n"), nil
	}
}

func (c *wsConn) WriteLine(line string) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (c *wsConn) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

func (c *wsConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}
