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
	"crypto/tls"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
)

// connState is the Connection's position in the Init -> Handshake ->
// Started -> Shutdown state machine (spec.md §3, §4.2, §4.8).
type connState uint8

const (
	stateInit connState = iota
	stateHandshake
	stateStarted
	stateShutdown
)

// rxInitialCap is rx_buf's starting capacity; it doubles whenever a
// receive needs more room than is left (spec.md §3).
const rxInitialCap = 16 * 1024

// Approximate TLS 1.2 record sizes used to compute max_payload (spec.md
// §4.6's query_stream_sizes). crypto/tls has no QueryContextAttributes
// equivalent, so these reflect the AEAD (GCM) cipher suites
// certificates.Config restricts the server to: a 5-byte record header, a
// 16-byte GCM tag, and the TLS 1.2 maximum record payload of 16 KiB.
const (
	tlsRecordHeader  = 5
	tlsRecordTrailer = 16
	tlsRecordMax     = 16384
)

// Handler is the five-callback contract spec.md §4/§6 defines. The
// Connection invokes exactly these methods to hand control to
// application code; on_shutdown is the only one from which the handler
// may let the Connection be destroyed.
type Handler interface {
	OnStarted(c *Connection)
	OnReceived(c *Connection, buf []byte, n int)
	OnSent(c *Connection, buf []byte, sent int)
	OnShutdown(c *Connection)
	OnError(c *Connection, err error)
}

// Connection is the proactor-style per-connection object spec.md §3/§4
// describes. It owns one accepted socket, drives the
// Init->Handshake->Started->Shutdown state machine, and posts every
// read/write as an operation on the server's shared CompletionQueue
// instead of blocking its caller.
type Connection struct {
	cq         *CompletionQueue
	conn       net.Conn
	tlsConn    *tls.Conn
	tlsEnabled bool
	handler    Handler

	state atomic.Uint32

	rx_buf      []byte
	rx_used     int
	rx_mu       sync.Mutex
	rx_inflight atomic.Bool

	tx_inflight atomic.Bool

	maxPayload int

	doneCh   chan struct{}
	doneOnce sync.Once

	local, remote net.Addr
}

func newConnection(cq *CompletionQueue, conn net.Conn, tlsEnabled bool, handler Handler) *Connection {
	c := &Connection{
		cq:         cq,
		conn:       conn,
		tlsEnabled: tlsEnabled,
		handler:    handler,
		local:      conn.LocalAddr(),
		remote:     conn.RemoteAddr(),
		doneCh:     make(chan struct{}),
	}

	if tlsEnabled {
		if tc, ok := conn.(*tls.Conn); ok {
			c.tlsConn = tc
		}
	}

	return c
}

// State reports the connection's current lifecycle phase.
func (c *Connection) State() connState { return connState(c.state.Load()) }

func (c *Connection) setState(s connState) { c.state.Store(uint32(s)) }

// Done is closed once on_shutdown has run and the connection is fully
// torn down.
func (c *Connection) Done() <-chan struct{} { return c.doneCh }

// Start implements spec.md §4.2's create/start step: a plain connection
// moves straight to Started and invokes on_started synchronously; a TLS
// connection moves to Handshake and posts the handshake operation.
func (c *Connection) Start() {
	if c.State() != stateInit {
		return
	}

	if !c.tlsEnabled {
		c.setState(stateStarted)
		c.handler.OnStarted(c)
		return
	}

	c.setState(stateHandshake)
	c.postHandshake()
}

// postHandshake delegates the entire accept_step round trip to
// crypto/tls.Conn.Handshake (see DESIGN.md's realization note): rather
// than separate handshake-receive/handshake-send tokens driven step by
// step, one blocking call performs every round trip and is posted as a
// single completion.
func (c *Connection) postHandshake() {
	tok := &token{kind: tokenHandshake, conn: c}
	tc := c.tlsConn

	go func() {
		err := tc.Handshake()
		c.cq.Post(Completion{Err: err, Token: tok})
	}()
}

func (c *Connection) completeHandshake(comp Completion) {
	if comp.Err != nil {
		c.handler.OnError(c, comp.Err)
		return
	}

	c.maxPayload = tlsRecordMax - tlsRecordHeader - tlsRecordTrailer
	c.setState(stateStarted)
	c.handler.OnStarted(c)
}

// Receive implements spec.md §4.3/§4.5: if rx_buf already holds bytes
// carried over from a previous read, they are delivered immediately with
// no transport operation; otherwise a read is posted. Invalid-state
// calls return false synchronously with no callback (spec.md §7).
func (c *Connection) Receive(userBuf []byte) bool {
	if c.State() != stateStarted {
		return false
	}

	c.rx_mu.Lock()
	used := c.rx_used
	c.rx_mu.Unlock()

	if used > 0 {
		c.deliverFromBuffer(userBuf)
		return true
	}

	c.postReceive(userBuf)
	return true
}

func (c *Connection) postReceive(userBuf []byte) {
	if !c.rx_inflight.CompareAndSwap(false, true) {
		panic("tcp: concurrent receive on one connection")
	}

	c.rx_mu.Lock()
	if cap(c.rx_buf) == 0 {
		c.rx_buf = make([]byte, rxInitialCap)
	}
	if c.rx_used == len(c.rx_buf) {
		grown := make([]byte, len(c.rx_buf)*2)
		copy(grown, c.rx_buf)
		c.rx_buf = grown
	}
	dst := c.rx_buf[c.rx_used:]
	c.rx_mu.Unlock()

	tok := &token{kind: tokenReceive, conn: c, userBuf: userBuf}
	conn := c.conn

	go func() {
		n, err := conn.Read(dst)
		c.cq.Post(Completion{N: n, Err: err, Token: tok})
	}()
}

func (c *Connection) completeReceive(comp Completion) {
	c.rx_inflight.Store(false)

	if comp.N == 0 && (comp.Err == nil || errors.Is(comp.Err, io.EOF)) {
		c.Shutdown()
		return
	}
	if comp.Err != nil && !errors.Is(comp.Err, io.EOF) {
		c.handler.OnError(c, comp.Err)
		return
	}

	c.rx_mu.Lock()
	c.rx_used += comp.N
	c.rx_mu.Unlock()

	c.deliverFromBuffer(comp.Token.userBuf)

	if errors.Is(comp.Err, io.EOF) {
		c.Shutdown()
	}
}

// deliverFromBuffer implements the DATA/EXTRA split of spec.md §4.5: the
// caller's capacity is the boundary honored on this call, anything past
// it is compacted to the front of rx_buf as EXTRA and delivered whole or
// in part on the next Receive, without requesting more from the
// transport.
func (c *Connection) deliverFromBuffer(userBuf []byte) {
	c.rx_mu.Lock()
	n := c.rx_used
	if n > len(userBuf) {
		n = len(userBuf)
	}
	copy(userBuf, c.rx_buf[:n])

	extra := c.rx_used - n
	if extra > 0 {
		copy(c.rx_buf[0:], c.rx_buf[n:c.rx_used])
	}
	c.rx_used = extra
	c.rx_mu.Unlock()

	c.handler.OnReceived(c, userBuf, n)
}

// Send implements spec.md §4.6/§4.7. A TLS connection's plaintext is
// capped to maxPayload bytes per call; on_sent reports only the bytes
// accepted this record, and the caller is expected to resubmit the
// remainder exactly as the plain path's short-write case already
// requires.
func (c *Connection) Send(buf []byte) bool {
	if c.State() != stateStarted {
		return false
	}

	chunk := buf
	kind := tokenSend
	if c.tlsEnabled {
		kind = tokenTLSSend
		if c.maxPayload > 0 && len(chunk) > c.maxPayload {
			chunk = buf[:c.maxPayload]
		}
	}

	if !c.tx_inflight.CompareAndSwap(false, true) {
		panic("tcp: concurrent send on one connection")
	}

	tok := &token{kind: kind, conn: c, plaintext: buf, chunk: chunk}
	conn := c.conn

	go func() {
		n, err := conn.Write(chunk)
		c.cq.Post(Completion{N: n, Err: err, Token: tok})
	}()

	return true
}

func (c *Connection) completeSend(comp Completion) {
	c.tx_inflight.Store(false)

	if comp.Err != nil {
		c.handler.OnError(c, comp.Err)
		return
	}

	if comp.Token.kind == tokenTLSSend && comp.N != len(comp.Token.chunk) {
		c.handler.OnError(c, ErrShortTLSWrite)
		return
	}

	c.handler.OnSent(c, comp.Token.plaintext, comp.N)
}

// Shutdown implements spec.md §4.2: idempotent, closes the socket
// best-effort in both directions, transitions to Shutdown, and invokes
// on_shutdown — the only callback from which the handler may let this
// Connection be destroyed.
func (c *Connection) Shutdown() {
	prev := connState(c.state.Swap(uint32(stateShutdown)))
	if prev == stateShutdown {
		return
	}

	if hc, ok := c.conn.(interface{ CloseWrite() error }); ok {
		_ = hc.CloseWrite()
	}
	if hc, ok := c.conn.(interface{ CloseRead() error }); ok {
		_ = hc.CloseRead()
	}
	_ = c.conn.Close()

	c.handler.OnShutdown(c)

	c.doneOnce.Do(func() { close(c.doneCh) })
}

// LocalAddr and RemoteAddr expose the underlying socket's addresses.
func (c *Connection) LocalAddr() net.Addr  { return c.local }
func (c *Connection) RemoteAddr() net.Addr { return c.remote }
