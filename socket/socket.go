/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package socket defines the shared contract for proactor-style socket
// servers and clients: connection lifecycle states, handler/callback
// function types, and the Server/Client interfaces implemented by the
// protocol-specific packages under socket/server and socket/client.
package socket

// DefaultBufferSize is used by handlers and connections when no explicit
// read/write buffer size is configured.
const DefaultBufferSize = 32 * 1024

// EOL is the line terminator recognized by line-oriented handlers.
const EOL = '\n'

// ConnState describes a connection's position in its proactor lifecycle,
// from dial/accept through handler execution to close.
type ConnState uint8

const (
	ConnectionDial ConnState = iota
	ConnectionNew
	ConnectionRead
	ConnectionCloseRead
	ConnectionHandler
	ConnectionWrite
	ConnectionCloseWrite
	ConnectionClose
)

func (s ConnState) String() string {
	switch s {
	case ConnectionDial:
		return "Dial Connection"
	case ConnectionNew:
		return "New Connection"
	case ConnectionRead:
		return "Read Incoming Stream"
	case ConnectionCloseRead:
		return "Close Incoming Stream"
	case ConnectionHandler:
		return "Run HandlerFunc"
	case ConnectionWrite:
		return "Write Outgoing Steam"
	case ConnectionCloseWrite:
		return "Close Outgoing Stream"
	case ConnectionClose:
		return "Close Connection"
	default:
		return "unknown connection state"
	}
}

// errClosedConn is the exact message net.OpError reports once the
// underlying fd has been closed. ErrorFilter silences only this literal
// message: anything wrapping or merely containing it still gets reported.
const errClosedConn = "use of closed network connection"

// ErrorFilter drops the noise a graceful shutdown generates: a
// listener/connection Close causes blocked Accept/Read/Write calls to
// return this exact error, which callers don't want surfaced as a real
// failure.
func ErrorFilter(err error) error {
	if err == nil {
		return nil
	}

	if err.Error() == errClosedConn {
		return nil
	}

	return err
}
