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

package tcp

import (
	"fmt"
	"io"

	libsck "github.com/sabouaram/proactor-echo/socket"
)

// ioResult carries one Read/Write outcome from the Connection's
// callback-driven Handler back to the blocking libsck.Reader/Writer a
// HandlerFunc expects.
type ioResult struct {
	n   int
	err error
}

// handlerAdapter implements Handler by bridging the Connection's
// asynchronous on_started/on_received/on_sent/on_shutdown/on_error
// callbacks to the synchronous libsck.HandlerFunc(Reader, Writer)
// contract: on_started launches the user handler in its own goroutine,
// and every subsequent callback wakes up exactly the Read or Write call
// that is waiting for it.
type handlerAdapter struct {
	hf       libsck.HandlerFunc
	emitInfo func(libsck.ConnState)
	emitErr  func(error)

	readResult  chan ioResult
	writeResult chan ioResult
}

func newHandlerAdapter(hf libsck.HandlerFunc, emitInfo func(libsck.ConnState), emitErr func(error)) *handlerAdapter {
	return &handlerAdapter{
		hf:          hf,
		emitInfo:    emitInfo,
		emitErr:     emitErr,
		readResult:  make(chan ioResult, 2),
		writeResult: make(chan ioResult, 2),
	}
}

func (a *handlerAdapter) OnStarted(c *Connection) {
	a.emitInfo(libsck.ConnectionHandler)

	req := &connReader{c: c, adapter: a}
	resp := &connWriter{c: c, adapter: a}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.emitErr(fmt.Errorf("tcp server: handler panic: %v", r))
			}
			_ = req.Close()
			_ = resp.Close()
		}()

		a.hf(req, resp)
	}()
}

func (a *handlerAdapter) OnReceived(_ *Connection, _ []byte, n int) {
	a.readResult <- ioResult{n: n, err: nil}
}

func (a *handlerAdapter) OnSent(_ *Connection, _ []byte, sent int) {
	a.writeResult <- ioResult{n: sent}
}

func (a *handlerAdapter) OnShutdown(_ *Connection) {
	trySend(a.readResult, ioResult{err: io.EOF})
	trySend(a.writeResult, ioResult{err: io.ErrClosedPipe})
}

func (a *handlerAdapter) OnError(c *Connection, err error) {
	a.emitErr(err)
	trySend(a.readResult, ioResult{err: err})
	trySend(a.writeResult, ioResult{err: err})
	c.Shutdown()
}

func trySend(ch chan ioResult, v ioResult) {
	select {
	case ch <- v:
	default:
	}
}
