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

package config

import (
	"net"
	"runtime"
	"time"

	libtls "github.com/sabouaram/proactor-echo/certificates"
	libprm "github.com/sabouaram/proactor-echo/file/perm"
	libptc "github.com/sabouaram/proactor-echo/network/protocol"
)

// ServerTLS holds a server's TLS termination settings: whether TLS is
// enabled and the certificate material used to terminate it. def is the
// fallback TLSConfig supplied through DefaultTLS and merged into Config by
// GetTLS; it is never touched by Validate.
type ServerTLS struct {
	Enabled bool
	Config  libtls.Config

	def libtls.TLSConfig
}

// ClientTLS holds a client's TLS settings: whether TLS is enabled, the
// parameters used to build the stdlib *tls.Config, and the server name
// used for both SNI and certificate verification.
type ClientTLS struct {
	Enabled    bool
	Config     libtls.Config
	ServerName string

	def libtls.TLSConfig
}

// Server describes the endpoint a socket/server implementation binds to:
// the network family, the address to listen on, Unix-socket file
// ownership, the idle-connection timeout, and optional TLS termination.
type Server struct {
	Network        libptc.NetworkProtocol
	Address        string
	PermFile       libprm.Perm
	GroupPerm      int32
	ConIdleTimeout time.Duration
	TLS            ServerTLS
}

// Client describes the endpoint a socket/client implementation dials: the
// network family, the address to connect to, and optional TLS.
type Client struct {
	Network libptc.NetworkProtocol
	Address string
	TLS     ClientTLS
}

func isTCP(p libptc.NetworkProtocol) bool {
	switch p {
	case libptc.NetworkTCP, libptc.NetworkTCP4, libptc.NetworkTCP6:
		return true
	default:
		return false
	}
}

func isUDP(p libptc.NetworkProtocol) bool {
	switch p {
	case libptc.NetworkUDP, libptc.NetworkUDP4, libptc.NetworkUDP6:
		return true
	default:
		return false
	}
}

func isUnix(p libptc.NetworkProtocol) bool {
	switch p {
	case libptc.NetworkUnix, libptc.NetworkUnixGram:
		return true
	default:
		return false
	}
}

// resolveAddr validates addr against the resolver for p's network family.
// It returns ErrInvalidProtocol for any family this package does not
// support (NetworkIP/IP4/IP6, the zero value, Unix on Windows).
func resolveAddr(p libptc.NetworkProtocol, addr string) error {
	switch {
	case isTCP(p):
		_, err := net.ResolveTCPAddr(p.String(), addr)
		return err
	case isUDP(p):
		_, err := net.ResolveUDPAddr(p.String(), addr)
		return err
	case isUnix(p):
		if runtime.GOOS == "windows" {
			return ErrInvalidProtocol
		}
		_, err := net.ResolveUnixAddr(p.String(), addr)
		return err
	default:
		return ErrInvalidProtocol
	}
}

// Validate checks the network/address pair and, if TLS is enabled, that
// TLS is only requested over a TCP family and carries a server name to
// verify the peer certificate against.
func (c Client) Validate() error {
	if err := resolveAddr(c.Network, c.Address); err != nil {
		return err
	}

	if c.TLS.Enabled {
		if !isTCP(c.Network) {
			return ErrInvalidTLSConfig
		}
		if c.TLS.ServerName == "" {
			return ErrInvalidTLSConfig
		}
	}

	return nil
}

// DefaultTLS registers the fallback TLSConfig merged into TLS.Config by
// GetTLS. Passing nil clears the fallback.
func (c *Client) DefaultTLS(def libtls.TLSConfig) {
	c.TLS.def = def
}

// GetTLS reports whether TLS is enabled and, if so, returns the merged
// TLSConfig and the server name to dial with.
func (c *Client) GetTLS() (bool, libtls.TLSConfig, string) {
	if !c.TLS.Enabled {
		return false, nil, ""
	}

	cfg := c.TLS.Config
	if c.TLS.def != nil {
		return true, cfg.NewFrom(c.TLS.def), c.TLS.ServerName
	}

	return true, cfg.New(), c.TLS.ServerName
}

// Validate checks the network/address pair, the Unix group id, and, if
// TLS is enabled, that TLS is only requested over a TCP family and that
// the configuration carries at least one server certificate.
func (s Server) Validate() error {
	if err := resolveAddr(s.Network, s.Address); err != nil {
		return err
	}

	if s.GroupPerm > MaxGID {
		return ErrInvalidGroup
	}

	if s.TLS.Enabled {
		if !isTCP(s.Network) {
			return ErrInvalidTLSConfig
		}
		if len(s.TLS.Config.Certs) == 0 {
			return ErrInvalidTLSConfig
		}
	}

	return nil
}

// DefaultTLS registers the fallback TLSConfig merged into TLS.Config by
// GetTLS. Passing nil clears the fallback.
func (s *Server) DefaultTLS(def libtls.TLSConfig) {
	s.TLS.def = def
}

// GetTLS reports whether TLS is enabled and, if so, returns the merged
// TLSConfig ready to terminate an accepted connection.
func (s *Server) GetTLS() (bool, libtls.TLSConfig) {
	if !s.TLS.Enabled {
		return false, nil
	}

	cfg := s.TLS.Config
	if s.TLS.def != nil {
		return true, cfg.NewFrom(s.TLS.def)
	}

	return true, cfg.New()
}
