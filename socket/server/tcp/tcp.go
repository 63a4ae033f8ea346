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

// Package tcp is the Acceptor: the completion queue, worker pool, and
// per-connection state machine spec.md §2-§4 describe, mapped onto
// net.Listener/net.Conn. Listen accepts connections and, for each one,
// builds a Connection (connection.go) that posts every read and write as
// an operation on a shared CompletionQueue (queue.go); a fixed
// WorkerPool drains that queue and invokes the Connection's
// on_started/on_received/on_sent/on_shutdown/on_error callbacks
// (token.go). TLS 1.2 termination wraps the accepted socket in a
// crypto/tls.Conn: the handshake round trip and record encryption are
// delegated to the standard library (see DESIGN.md's realization note),
// but the surrounding rx_buf/tx_buf accumulation, rx_inflight/
// tx_inflight guards, and max_payload chunked send the specification
// calls for are implemented here, not inside crypto/tls. connReader and
// connWriter (conn.go) present that machinery back to a HandlerFunc as a
// plain blocking io.Reader/io.Writer.
package tcp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	libtls "github.com/sabouaram/proactor-echo/certificates"
	libsck "github.com/sabouaram/proactor-echo/socket"
)

// ServerTcp is the TCP-specific Server: it adds a two-phase
// create-then-register constructor (so a caller can set up callbacks
// before an address is known) and the ability to terminate TLS.
type ServerTcp interface {
	libsck.Server

	// RegisterServer binds the address this server will listen on. It must
	// be called (successfully) before Listen.
	RegisterServer(address string) error

	// SetTLS enables or disables TLS termination. cfg must be non-nil and
	// carry at least one certificate when enable is true.
	SetTLS(enable bool, cfg libtls.TLSConfig) error
}

// New returns a ServerTcp with no address registered yet. upd, if non-nil,
// is invoked on every accepted net.Conn before the handler runs. handler
// may be nil; Listen then fails with ErrInvalidHandler once called.
func New(upd libsck.UpdateConn, handler libsck.HandlerFunc) ServerTcp {
	return &server{
		upd:     upd,
		handler: handler,
	}
}

type server struct {
	upd     libsck.UpdateConn
	handler libsck.HandlerFunc

	mu      sync.Mutex
	address string
	lst     net.Listener

	tlsEnabled atomic.Bool
	tlsMu      sync.Mutex
	tlsConfig  libtls.TLSConfig

	fctErr     atomic.Pointer[libsck.FuncError]
	fctInfo    atomic.Pointer[libsck.FuncInfo]
	fctInfoSrv atomic.Pointer[libsck.FuncInfoServer]

	running atomic.Bool
	gone    atomic.Bool
	open    atomic.Int64

	doneMu sync.Mutex
	doneCh chan struct{}

	conns sync.Map // uint64 -> net.Conn
	connN atomic.Uint64

	cq *CompletionQueue
	wp *WorkerPool
}

func (s *server) RegisterServer(address string) error {
	if address == "" {
		return ErrInvalidAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", address); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	s.mu.Lock()
	s.address = address
	s.mu.Unlock()

	return nil
}

func (s *server) SetTLS(enable bool, cfg libtls.TLSConfig) error {
	if enable && cfg == nil {
		return ErrInvalidTLS
	}

	s.tlsMu.Lock()
	s.tlsConfig = cfg
	s.tlsMu.Unlock()

	s.tlsEnabled.Store(enable)
	return nil
}

func (s *server) RegisterFuncError(fct libsck.FuncError) {
	if fct == nil {
		s.fctErr.Store(nil)
		return
	}
	s.fctErr.Store(&fct)
}

func (s *server) RegisterFuncInfo(fct libsck.FuncInfo) {
	if fct == nil {
		s.fctInfo.Store(nil)
		return
	}
	s.fctInfo.Store(&fct)
}

func (s *server) RegisterFuncInfoServer(fct libsck.FuncInfoServer) {
	if fct == nil {
		s.fctInfoSrv.Store(nil)
		return
	}
	s.fctInfoSrv.Store(&fct)
}

func (s *server) emitErr(errs ...error) {
	if p := s.fctErr.Load(); p != nil && *p != nil {
		(*p)(errs...)
	}
}

func (s *server) emitInfo(local, remote net.Addr, state libsck.ConnState) {
	if p := s.fctInfo.Load(); p != nil && *p != nil {
		(*p)(local, remote, state)
	}
}

func (s *server) emitInfoServer(msg string) {
	if p := s.fctInfoSrv.Load(); p != nil && *p != nil {
		(*p)(msg)
	}
}

func (s *server) newDone() <-chan struct{} {
	s.doneMu.Lock()
	defer s.doneMu.Unlock()

	s.doneCh = make(chan struct{})
	return s.doneCh
}

func (s *server) closeDone() {
	s.doneMu.Lock()
	defer s.doneMu.Unlock()

	if s.doneCh == nil {
		return
	}
	select {
	case <-s.doneCh:
	default:
		close(s.doneCh)
	}
}

func (s *server) Done() <-chan struct{} {
	s.doneMu.Lock()
	defer s.doneMu.Unlock()

	if s.doneCh == nil {
		s.doneCh = make(chan struct{})
		close(s.doneCh)
	}
	return s.doneCh
}

// Listen accepts connections until ctx is cancelled or Shutdown/Close/
// StopListen is called. It implements the "Init -> Started" transition of
// the state machine: the handler for a given Connection only ever starts
// running once the listener has successfully bound.
func (s *server) Listen(ctx context.Context) error {
	s.mu.Lock()
	address := s.address
	s.mu.Unlock()

	if address == "" {
		return ErrInvalidAddress
	}

	if s.handler == nil {
		return ErrInvalidHandler
	}

	lst, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}

	tlsOn := s.tlsEnabled.Load()
	if tlsOn {
		s.tlsMu.Lock()
		cfg := s.tlsConfig
		s.tlsMu.Unlock()

		if cfg == nil {
			_ = lst.Close()
			return ErrInvalidTLS
		}

		lst = tls.NewListener(lst, cfg.TLS(""))
	}

	s.mu.Lock()
	s.lst = lst
	s.mu.Unlock()

	s.cq = newCompletionQueue(256)
	s.wp = newWorkerPool(s.cq)
	s.wp.start()

	s.gone.Store(false)
	s.running.Store(true)
	done := s.newDone()

	s.emitInfoServer(fmt.Sprintf("tcp server listening on %s", lst.Addr().String()))

	stopCtx, stopCancel := context.WithCancel(context.Background())
	defer stopCancel()

	go func() {
		select {
		case <-ctx.Done():
			_ = s.StopListen(context.Background())
		case <-stopCtx.Done():
		case <-done:
		}
	}()

	var wg sync.WaitGroup

	for {
		conn, aerr := lst.Accept()
		if aerr != nil {
			if libsck.ErrorFilter(aerr) == nil {
				break
			}

			var ne net.Error
			if errors.As(aerr, &ne) && ne.Temporary() {
				s.emitErr(aerr)
				continue
			}

			s.emitErr(aerr)
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.serve(conn, tlsOn)
		}()
	}

	s.running.Store(false)
	s.emitInfoServer("tcp server stopped accepting connections")

	wg.Wait()
	s.wp.stop()
	return nil
}

// serve builds the Connection (spec.md §4.2's create step) for one
// accepted socket, wires it to this server's shared CompletionQueue and
// to a Handler adapting the registered HandlerFunc, starts it, and
// blocks until on_shutdown has run.
func (s *server) serve(rawConn net.Conn, tlsOn bool) {
	defer func() {
		_ = recover()
	}()

	id := s.connN.Add(1)
	s.conns.Store(id, rawConn)
	s.open.Add(1)

	local, remote := rawConn.LocalAddr(), rawConn.RemoteAddr()

	if s.upd != nil {
		s.upd(rawConn)
	}

	s.emitInfo(local, remote, libsck.ConnectionNew)

	defer func() {
		if r := recover(); r != nil {
			s.emitErr(fmt.Errorf("tcp server: handler panic: %v", r))
		}
		s.conns.Delete(id)
		s.open.Add(-1)
		s.emitInfo(local, remote, libsck.ConnectionClose)
	}()

	adapter := newHandlerAdapter(s.handler, func(state libsck.ConnState) {
		s.emitInfo(local, remote, state)
	}, s.emitErr)

	conn := newConnection(s.cq, rawConn, tlsOn, adapter)

	conn.Start()
	<-conn.Done()
}

// StopListen closes the listening socket, which unblocks Accept and ends
// Listen's accept loop; it does not touch already-accepted connections.
func (s *server) StopListen(ctx context.Context) error {
	s.mu.Lock()
	lst := s.lst
	s.mu.Unlock()

	if lst != nil {
		_ = lst.Close()
	}

	s.closeDone()

	deadline := time.NewTimer(5 * time.Second)
	defer deadline.Stop()

	for s.running.Load() {
		select {
		case <-ctx.Done():
			return ErrShutdownTimeout
		case <-deadline.C:
			return ErrShutdownTimeout
		case <-time.After(10 * time.Millisecond):
		}
	}

	return nil
}

// StopGone waits, bounded by ctx, for every accepted connection to finish
// and marks the server as fully drained.
func (s *server) StopGone(ctx context.Context) error {
	for s.open.Load() > 0 {
		select {
		case <-ctx.Done():
			return ErrGoneTimeout
		case <-time.After(10 * time.Millisecond):
		}
	}

	s.gone.Store(true)
	return nil
}

// Shutdown stops accepting new connections, force-closes any still open,
// waits for their handlers to return, then marks the server gone.
func (s *server) Shutdown(ctx context.Context) error {
	s.closeDone()

	if err := s.StopListen(ctx); err != nil {
		return err
	}

	s.conns.Range(func(key, value any) bool {
		if c, ok := value.(net.Conn); ok {
			_ = c.Close()
		}
		return true
	})

	s.emitInfoServer("tcp server shutting down")

	if err := s.StopGone(ctx); err != nil {
		return err
	}

	s.emitInfoServer("tcp server stopped")
	return nil
}

func (s *server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

func (s *server) IsRunning() bool {
	return s.running.Load()
}

func (s *server) IsGone() bool {
	return s.gone.Load()
}

func (s *server) OpenConnections() int64 {
	return s.open.Load()
}
