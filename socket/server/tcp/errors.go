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

import "errors"

var (
	ErrInvalidAddress  = errors.New("tcp server: invalid or unresolvable address")
	ErrInvalidHandler  = errors.New("tcp server: no handler registered")
	ErrInvalidInstance = errors.New("tcp server: invalid server instance")
	ErrInvalidTLS      = errors.New("tcp server: invalid TLS config")
	ErrShutdownTimeout = errors.New("tcp server: shutdown timeout exceeded")
	ErrGoneTimeout     = errors.New("tcp server: gone timeout exceeded")

	// ErrShortTLSWrite is reported via on_error when a single TLS record
	// write accepts fewer plaintext bytes than it was handed. crypto/tls
	// gives no way to resume mid-record, so a short write desynchronises
	// the connection and is always fatal (spec.md §4.6).
	ErrShortTLSWrite = errors.New("tcp server: short write on TLS record")
)
