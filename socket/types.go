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

package socket

import (
	"io"
	"net"
)

// Reader is the read side of a connection handed to a HandlerFunc. Close
// shuts down the read half without necessarily closing the write half.
type Reader interface {
	io.Reader
	io.Closer
}

// Writer is the write side of a connection handed to a HandlerFunc. Close
// shuts down the write half without necessarily closing the read half.
type Writer interface {
	io.Writer
	io.Closer
}

// HandlerFunc processes one accepted connection. request is closed by the
// runtime once the handler returns if the handler has not already closed
// it; the same applies to response.
type HandlerFunc func(request Reader, response Writer)

// FuncError receives errors surfaced by a Server or Client that aren't
// tied to a single connection (accept failures, shutdown timeouts, ...).
type FuncError func(errs ...error)

// FuncInfo is called on every ConnState transition for a given connection.
type FuncInfo func(local, remote net.Addr, state ConnState)

// FuncInfoServer is called with a free-form status line for events that
// aren't per-connection (listening, shutting down, ...).
type FuncInfoServer func(msg string)

// UpdateConn lets callers tune a raw net.Conn (deadlines, buffer sizes,
// keep-alive, ...) right after it is accepted or dialed, before any TLS
// handshake or handler runs.
type UpdateConn func(conn net.Conn)

// Response receives the reply stream from Client.Once.
type Response func(r io.Reader)

// Context exposes a single connection's lifecycle and I/O to code that
// needs to drive it directly (as opposed to a HandlerFunc, which is
// handed the split Reader/Writer halves instead).
type Context interface {
	IsConnected() bool
	LocalHost() string
	RemoteHost() string
	Done() <-chan struct{}
	Err() error
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}
