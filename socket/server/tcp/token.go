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

// tokenKind identifies which Connection operation a completion token
// belongs to. A single plain-receive kind is reused for both the Init
// and Started phases of a connection: what differs between a handshake
// byte and an application byte is the Connection's own state, not the
// shape of the read that produced it.
type tokenKind uint8

const (
	tokenReceive tokenKind = iota
	tokenSend
	tokenHandshake
	tokenTLSSend
)

// token is a completion token (spec.md §3): a small heap-allocated record
// identifying one in-flight operation. It carries just enough identity
// for a worker to dispatch a completion back to the Connection method
// that posted it, and is discarded once that dispatch runs.
type token struct {
	kind tokenKind
	conn *Connection

	// userBuf is the caller-supplied destination buffer for a receive.
	userBuf []byte

	// plaintext is the full buffer a send was submitted with; chunk is
	// the prefix of it actually staged for this operation. For a plain
	// send they are identical; for a TLS send chunk is capped to
	// maxPayload (spec.md §4.6).
	plaintext []byte
	chunk     []byte
}

// Completion is one entry drained off the CompletionQueue: the result of
// exactly one posted operation, tagged with the token that describes it.
type Completion struct {
	N     int
	Err   error
	Token *token
}

// run dispatches a completion to the Connection method that understands
// its token kind. It always executes on a worker goroutine (spec.md §5).
func (t *token) run(comp Completion) {
	switch t.kind {
	case tokenReceive:
		t.conn.completeReceive(comp)
	case tokenSend, tokenTLSSend:
		t.conn.completeSend(comp)
	case tokenHandshake:
		t.conn.completeHandshake(comp)
	}
}
