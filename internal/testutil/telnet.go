// Package testutil holds helpers shared by network-level tests.
package testutil

import (
	"fmt"
	"net"
	"strings"
	"testing"
	"time"
)

// DefaultTimeout bounds every read in Expect and Command.
const DefaultTimeout = 3 * time.Second

// TelnetClient is a line-oriented test client. Output read past a match is
// kept for the next read so consecutive expectations never lose text.
type TelnetClient struct {
	conn    net.Conn
	pending string
	t       testing.TB
}

// NewTelnetClient dials the given address and returns a test client.
//
// Precondition: addr must be a valid "host:port" string with a listening server.
// Postcondition: Returns a connected TelnetClient or fails the test.
func NewTelnetClient(t testing.TB, addr string) *TelnetClient {
	t.Helper()
	start := time.Now()

	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v [%s]", addr, err, time.Since(start))
	}
	t.Cleanup(func() { conn.Close() })

	t.Logf("telnet client connected to %s [%s]", addr, time.Since(start))
	return &TelnetClient{conn: conn, t: t}
}

// ReadUntil reads until substr appears or timeout elapses and returns the
// output up to and including the first match.
//
// Precondition: substr must be non-empty.
// Postcondition: Returns the output ending in substr, or fails on timeout.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))

	buf := c.pending
	tmp := make([]byte, 1024)
	for {
		if i := strings.Index(buf, substr); i >= 0 {
			end := i + len(substr)
			c.pending = buf[end:]
			return buf[:end]
		}
		n, err := c.conn.Read(tmp)
		buf += string(tmp[:n])
		if err != nil && !strings.Contains(buf, substr) {
			c.pending = buf
			c.t.Fatalf("reading until %q: got %q, error: %v", substr, buf, err)
		}
	}
}

// Expect is ReadUntil with DefaultTimeout.
func (c *TelnetClient) Expect(substr string) string {
	c.t.Helper()
	return c.ReadUntil(substr, DefaultTimeout)
}

// Command sends line and returns everything printed before the next prompt.
func (c *TelnetClient) Command(line, prompt string) string {
	c.t.Helper()
	c.Send(line)
	out := c.Expect(prompt)
	return strings.TrimSuffix(out, prompt)
}

// Send writes a line of text to the server, appending \r\n.
//
// Postcondition: text + \r\n is written to the connection.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(c.conn, "%s\r\n", text); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// WaitClosed fails the test unless the server closes the connection within timeout.
func (c *TelnetClient) WaitClosed(timeout time.Duration) {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))
	tmp := make([]byte, 256)
	for {
		_, err := c.conn.Read(tmp)
		if err == nil {
			continue
		}
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			c.t.Fatalf("connection still open after %s", timeout)
		}
		return
	}
}

// Close closes the underlying connection.
func (c *TelnetClient) Close() {
	c.conn.Close()
}
