package telnet

import (
	"bytes"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// pipeConn returns a Conn over one end of an in-memory pipe and the other end.
func pipeConn(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		client.Close()
	})
	return NewConn(server, time.Second, time.Second), client
}

func feed(client net.Conn, data []byte) {
	go func() { _, _ = client.Write(data) }()
}

// drain reads exactly n bytes from r.
func drain(t *testing.T, r net.Conn, n int) string {
	t.Helper()
	_ = r.SetReadDeadline(time.Now().Add(time.Second))
	buf := make([]byte, n)
	_, err := io.ReadFull(r, buf)
	require.NoError(t, err)
	return string(buf)
}

func TestConn_IDsAreUnique(t *testing.T) {
	a, _ := pipeConn(t)
	b, _ := pipeConn(t)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestConn_ReadLine_Terminators(t *testing.T) {
	for name, input := range map[string]string{
		"crlf": "look\r\n",
		"lf":   "look\n",
		"cr":   "look\r",
	} {
		t.Run(name, func(t *testing.T) {
			conn, client := pipeConn(t)
			feed(client, []byte(input))

			line, err := conn.ReadLine()
			require.NoError(t, err)
			assert.Equal(t, "look", line)
		})
	}
}

func TestConn_ReadLine_ConsecutiveLines(t *testing.T) {
	conn, client := pipeConn(t)
	feed(client, []byte("look\r\ninventory\r\n"))

	first, err := conn.ReadLine()
	require.NoError(t, err)
	second, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "look", first)
	assert.Equal(t, "inventory", second)
}

func TestConn_ReadLine_StripsNegotiationAndControls(t *testing.T) {
	conn, client := pipeConn(t)
	input := []byte{IAC, DO, OptSuppressGoAhead, 'g', 'o', 0x07, ' ', IAC, SB, 24, 0, 'x', IAC, SE, 'n', '\t', 'w', '\r', '\n'}
	feed(client, input)

	line, err := conn.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "go n\tw", line)
}

func TestConn_ReadLine_EOF(t *testing.T) {
	conn, client := pipeConn(t)
	go func() {
		_, _ = client.Write([]byte("partial"))
		client.Close()
	}()

	line, err := conn.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "partial", line)
}

func TestConn_ReadLine_Timeout(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()
	conn := NewConn(server, 20*time.Millisecond, time.Second)

	_, err := conn.ReadLine()
	var ne net.Error
	require.ErrorAs(t, err, &ne)
	assert.True(t, ne.Timeout())
}

func TestConn_WriteLine_NormalizesNewlines(t *testing.T) {
	conn, client := pipeConn(t)
	want := "Location: Cellar\r\nIt is dark.\r\n"

	go func() { _ = conn.WriteLine("Location: Cellar\nIt is dark.") }()
	assert.Equal(t, want, drain(t, client, len(want)))
}

func TestConn_WriteLine_KeepsExistingCRLF(t *testing.T) {
	conn, client := pipeConn(t)
	want := "a\r\nb\r\n"

	go func() { _ = conn.WriteLine("a\r\nb") }()
	assert.Equal(t, want, drain(t, client, len(want)))
}

func TestConn_WriteLines(t *testing.T) {
	conn, client := pipeConn(t)
	want := "one\r\n\r\ntwo\r\nthree\r\n"

	go func() { _ = conn.WriteLines([]string{"one", "", "two\nthree"}) }()
	assert.Equal(t, want, drain(t, client, len(want)))
}

func TestConn_WriteLines_Empty(t *testing.T) {
	conn, _ := pipeConn(t)
	assert.NoError(t, conn.WriteLines(nil))
}

func TestConn_WritePromptAndNegotiate(t *testing.T) {
	conn, client := pipeConn(t)

	go func() {
		_ = conn.Negotiate()
		_ = conn.WritePrompt("> ")
	}()
	got := drain(t, client, 5)
	assert.Equal(t, string([]byte{IAC, WILL, OptSuppressGoAhead})+"> ", got)
}

func TestFilterIAC(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{"plain", []byte("hello world"), []byte("hello world")},
		{"will", []byte{IAC, WILL, OptEcho, 'h', 'i'}, []byte("hi")},
		{"wont", []byte{IAC, WONT, OptSuppressGoAhead, 'o', 'k'}, []byte("ok")},
		{"do", []byte{'a', IAC, DO, OptLinemode, 'b'}, []byte("ab")},
		{"dont", []byte{IAC, DONT, OptEcho}, []byte{}},
		{"subnegotiation", []byte{IAC, SB, 24, 0, 'x', 't', IAC, SE, 'z'}, []byte("z")},
		{"escaped", []byte{'a', IAC, IAC, 'b'}, []byte{'a', IAC, 'b'}},
		{"nop", []byte{'x', IAC, NOP, 'y'}, []byte("xy")},
		{"ga", []byte{'x', IAC, GA}, []byte("x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterIAC(tt.input))
		})
	}
}

func TestPropertyFilterIAC_NoIACBytesPassThrough(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.SliceOfN(rapid.ByteRange(0, 254), 0, 200).Draw(t, "input")
		assert.Equal(t, input, FilterIAC(input))
	})
}

func TestPropertyFilterIAC_OutputNeverLongerThanInput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.SliceOfN(rapid.Byte(), 0, 200).Draw(t, "input")
		assert.LessOrEqual(t, len(FilterIAC(input)), len(input))
	})
}

func TestPropertyReadLine_ReturnsPrintableText(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[ -~]{0,60}`).Draw(t, "text")
		server, client := net.Pipe()
		defer server.Close()
		defer client.Close()
		conn := NewConn(server, time.Second, time.Second)

		go func() { _, _ = client.Write(append([]byte(text), '\r', '\n')) }()
		line, err := conn.ReadLine()
		require.NoError(t, err)
		assert.Equal(t, text, line)
		assert.False(t, bytes.ContainsAny([]byte(line), "\r\n"))
	})
}
