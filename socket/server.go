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

import "context"

// Server accepts connections and dispatches each to a HandlerFunc until
// shut down.
type Server interface {
	RegisterFuncError(fct FuncError)
	RegisterFuncInfo(fct FuncInfo)
	RegisterFuncInfoServer(fct FuncInfoServer)

	// Listen blocks accepting connections until ctx is done or Shutdown/
	// Close is called. It returns the reason Listen stopped, or nil on a
	// clean shutdown.
	Listen(ctx context.Context) error

	// Shutdown stops accepting new connections and waits, bounded by ctx,
	// for in-flight connections to finish.
	Shutdown(ctx context.Context) error

	// Done is closed once Shutdown/Close has been requested.
	Done() <-chan struct{}

	IsRunning() bool

	// IsGone reports whether the last run has fully drained: no listener,
	// no open connections.
	IsGone() bool

	OpenConnections() int64

	Close() error
}
