package server

import (
	"bufio"
	"net"
	"strings"
	"testing"
)

// TestTCPConnReadLine verifies newline framing, \r stripping, and the
// oversized-line guard.
func TestTCPConnReadLine(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	c := NewTCPConn(server)

	go func() {
		client.Write([]byte("PING\r\n"))
		client.Write([]byte("MSG hello  world\n"))
	}()

	if got, err := c.ReadLine(); err != nil || got != "PING" {
		t.Fatalf("ReadLine() = (%q, %v), want (%q, nil)", got, err, "PING")
	}

	if got, err := c.ReadLine(); err != nil || got != "MSG hello  world" {
		t.Fatalf("ReadLine() = (%q, %v), want (%q, nil)", got, err, "MSG hello  world")
	}
}

// TestTCPConnRejectsOversizedLine verifies that a line longer than the buffer
// is treated as a transport violation rather than buffered without bound.
func TestTCPConnRejectsOversizedLine(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	c := NewTCPConn(server)

	go func() {
		client.Write([]byte("MSG " + strings.Repeat("a", maxLineBytes) + "\n"))
	}()

	if _, err := c.ReadLine(); err == nil {
		t.Fatal("ReadLine() accepted a line beyond maxLineBytes")
	}
}

// TestTCPConnWriteLine verifies the terminator is appended and the buffer
// flushed per line.
func TestTCPConnWriteLine(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	c := NewTCPConn(server)

	done := make(chan error, 1)
	go func() { done <- c.WriteLine("OK") }()

	line, err := bufio.NewReader(client).ReadString('\n')
	if err != nil {
		t.Fatalf("client read failed: %v", err)
	}
	if line != "OK\n" {
		t.Fatalf("client received %q, want %q", line, "OK\n")
	}
	if err := <-done; err != nil {
		t.Fatalf("WriteLine returned error: %v", err)
	}
}
