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
	"io"
	"net"
)

// connReader is the read half of an accepted connection handed to a
// handler as libsck.Reader. Every Read posts a receive on the underlying
// Connection and blocks until the matching on_received/on_error/
// on_shutdown callback wakes it, so the handler still sees a plain
// blocking io.Reader even though the byte transfer itself runs through
// the completion queue and worker pool.
type connReader struct {
	c       *Connection
	adapter *handlerAdapter
}

func (r *connReader) Read(p []byte) (int, error) {
	if !r.c.Receive(p) {
		return 0, io.EOF
	}
	res := <-r.adapter.readResult
	return res.n, res.err
}

func (r *connReader) Close() error {
	r.c.Shutdown()
	return nil
}

func (r *connReader) LocalAddr() net.Addr  { return r.c.LocalAddr() }
func (r *connReader) RemoteAddr() net.Addr { return r.c.RemoteAddr() }

// connWriter is the write half of an accepted connection handed to a
// handler as libsck.Writer. Write loops over Connection.Send so it
// still honors the io.Writer contract (write p in full, or fail) even
// though a TLS connection only ever accepts up to maxPayload bytes per
// underlying Send call; the loop is exactly the resubmission spec.md
// §4.7 describes for a handler reacting to a short on_sent.
type connWriter struct {
	c       *Connection
	adapter *handlerAdapter
}

func (w *connWriter) Write(p []byte) (int, error) {
	total := 0

	for total < len(p) {
		if !w.c.Send(p[total:]) {
			return total, io.ErrClosedPipe
		}

		res := <-w.adapter.writeResult
		if res.err != nil {
			return total, res.err
		}
		if res.n == 0 {
			return total, io.ErrShortWrite
		}

		total += res.n
	}

	return total, nil
}

func (w *connWriter) Close() error {
	w.c.Shutdown()
	return nil
}

func (w *connWriter) LocalAddr() net.Addr  { return w.c.LocalAddr() }
func (w *connWriter) RemoteAddr() net.Addr { return w.c.RemoteAddr() }
