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

package main

import (
	"io"

	"github.com/sirupsen/logrus"

	libsck "github.com/sabouaram/proactor-echo/socket"
)

// echoHandler is the reference application callback named in spec.md §2:
// out of scope for the core itself, but the handler every Connection in
// this binary is built around. It reads whatever the peer sends and
// writes it straight back, in DefaultBufferSize chunks, closing both
// halves once the peer goes away.
func echoHandler(log *logrus.Logger) libsck.HandlerFunc {
	return func(r libsck.Reader, w libsck.Writer) {
		defer func() {
			_ = r.Close()
			_ = w.Close()
		}()

		buf := make([]byte, libsck.DefaultBufferSize)

		for {
			n, rerr := r.Read(buf)
			if n > 0 {
				if _, werr := w.Write(buf[:n]); werr != nil {
					log.WithError(werr).Debug("echo: write failed")
					return
				}
			}
			if rerr != nil {
				if rerr != io.EOF {
					log.WithError(rerr).Debug("echo: read failed")
				}
				return
			}
		}
	}
}
