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

// Package tcp implements the client half of the proactor-style socket
// contract over TCP: a single dialed net.Conn, optionally wrapped in TLS,
// exposed as a blocking Read/Write pair plus a one-shot request/response
// helper.
package tcp

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"sync"
	"sync/atomic"

	libtls "github.com/sabouaram/proactor-echo/certificates"
	libsck "github.com/sabouaram/proactor-echo/socket"
)

// ClientTCP is the TCP-specific Client, with the ability to terminate TLS
// on the dialed connection.
type ClientTCP interface {
	libsck.Client

	// SetTLS enables or disables TLS on the next Connect/Once. cfg must be
	// non-nil when enable is true.
	SetTLS(enable bool, cfg libtls.TLSConfig, serverName string) error
}

// New validates address and returns a ClientTCP not yet connected.
func New(address string) (ClientTCP, error) {
	if address == "" {
		return nil, ErrAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", address); err != nil {
		return nil, ErrAddress
	}

	return &client{address: address}, nil
}

type client struct {
	address string

	tlsEnabled atomic.Bool
	tlsMu      sync.Mutex
	tlsConfig  libtls.TLSConfig
	serverName string

	mu        sync.Mutex
	conn      net.Conn
	connected atomic.Bool

	fctErr  atomic.Pointer[libsck.FuncError]
	fctInfo atomic.Pointer[libsck.FuncInfo]
}

func (c *client) SetTLS(enable bool, cfg libtls.TLSConfig, serverName string) error {
	if enable && cfg == nil {
		return ErrInstance
	}

	c.tlsMu.Lock()
	c.tlsConfig = cfg
	c.serverName = serverName
	c.tlsMu.Unlock()

	c.tlsEnabled.Store(enable)
	return nil
}

func (c *client) RegisterFuncError(fct libsck.FuncError) {
	if fct == nil {
		c.fctErr.Store(nil)
		return
	}
	c.fctErr.Store(&fct)
}

func (c *client) RegisterFuncInfo(fct libsck.FuncInfo) {
	if fct == nil {
		c.fctInfo.Store(nil)
		return
	}
	c.fctInfo.Store(&fct)
}

func (c *client) emitErr(errs ...error) {
	if p := c.fctErr.Load(); p != nil && *p != nil {
		(*p)(errs...)
	}
}

func (c *client) emitInfo(local, remote net.Addr, state libsck.ConnState) {
	if p := c.fctInfo.Load(); p != nil && *p != nil {
		(*p)(local, remote, state)
	}
}

func (c *client) dial(ctx context.Context) (net.Conn, error) {
	var dl net.Dialer

	if c.tlsEnabled.Load() {
		c.tlsMu.Lock()
		cfg, name := c.tlsConfig, c.serverName
		c.tlsMu.Unlock()

		if cfg == nil {
			return nil, ErrInstance
		}

		td := tls.Dialer{NetDialer: &dl, Config: cfg.TlsConfig(name)}
		return td.DialContext(ctx, "tcp", c.address)
	}

	return dl.DialContext(ctx, "tcp", c.address)
}

// Connect dials the configured address, replacing any existing connection.
func (c *client) Connect(ctx context.Context) error {
	c.emitInfo(nil, nil, libsck.ConnectionDial)

	conn, err := c.dial(ctx)
	if err != nil {
		c.emitErr(err)
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.connected.Store(true)
	c.emitInfo(conn.LocalAddr(), conn.RemoteAddr(), libsck.ConnectionNew)

	return nil
}

// IsConnected reports whether Connect succeeded and Close has not been
// called since. It is local state only: a dead peer is only discovered the
// next time Read or Write is attempted.
func (c *client) IsConnected() bool {
	return c.connected.Load()
}

func (c *client) getConn() net.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

func (c *client) Read(p []byte) (int, error) {
	conn := c.getConn()
	if conn == nil {
		c.emitErr(ErrConnection)
		return 0, ErrConnection
	}

	n, err := conn.Read(p)
	if err != nil {
		c.emitErr(err)
	} else {
		c.emitInfo(conn.LocalAddr(), conn.RemoteAddr(), libsck.ConnectionRead)
	}
	return n, err
}

func (c *client) Write(p []byte) (int, error) {
	conn := c.getConn()
	if conn == nil {
		c.emitErr(ErrConnection)
		return 0, ErrConnection
	}

	n, err := conn.Write(p)
	if err != nil {
		c.emitErr(err)
	} else {
		c.emitInfo(conn.LocalAddr(), conn.RemoteAddr(), libsck.ConnectionWrite)
	}
	return n, err
}

// Once dials (if not already connected), writes request in full, half-
// closes the write side so the peer sees EOF, streams the reply to
// response if non-nil, then fully closes the connection.
func (c *client) Once(ctx context.Context, request io.Reader, response libsck.Response) (err error) {
	if c.getConn() == nil {
		if err = c.Connect(ctx); err != nil {
			return err
		}
	}

	defer func() {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}()

	conn := c.getConn()

	if _, err = io.Copy(conn, request); err != nil {
		return err
	}

	if hc, ok := conn.(interface{ CloseWrite() error }); ok {
		_ = hc.CloseWrite()
	}

	if response != nil {
		response(conn)
	}

	return nil
}

func (c *client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	c.connected.Store(false)

	if conn == nil {
		return ErrConnection
	}

	err := conn.Close()
	c.emitInfo(conn.LocalAddr(), conn.RemoteAddr(), libsck.ConnectionClose)
	return err
}
