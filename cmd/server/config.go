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
	"fmt"
	"time"

	libmap "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	libprm "github.com/sabouaram/proactor-echo/file/perm"
	libptc "github.com/sabouaram/proactor-echo/network/protocol"
	libcfg "github.com/sabouaram/proactor-echo/socket/config"
)

// fileConfig is the shape of the optional --config file: everything the
// socket/config.Server needs to describe the listening endpoint, plus the
// credential-provider's certificate pair when TLS is requested from the
// file instead of (or in addition to) the -t flag.
type fileConfig struct {
	Network        libptc.NetworkProtocol `mapstructure:"network"`
	Address        string                 `mapstructure:"address"`
	PermFile       libprm.Perm            `mapstructure:"permFile"`
	GroupPerm      int32                  `mapstructure:"groupPerm"`
	ConIdleTimeout time.Duration          `mapstructure:"idleTimeout"`
	TLSKeyFile     string                 `mapstructure:"tlsKeyFile"`
	TLSCrtFile     string                 `mapstructure:"tlsCrtFile"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Network: libptc.NetworkTCP,
		Address: ":27015",
	}
}

// loadConfig reads path (if non-empty) through viper and decodes it into a
// fileConfig, registering the enum-like decode hooks the rest of the
// domain stack exposes (NetworkProtocol, file permission bits) the same
// way network/protocol and file/perm document for their own ViperDecoderHook.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()

	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}

	dec, err := libmap.NewDecoder(&libmap.DecoderConfig{
		DecodeHook: libmap.ComposeDecodeHookFunc(
			libptc.ViperDecoderHook(),
			libprm.ViperDecoderHook(),
		),
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return cfg, fmt.Errorf("building config decoder: %w", err)
	}

	if err = dec.Decode(v.AllSettings()); err != nil {
		return cfg, fmt.Errorf("decoding config %q: %w", path, err)
	}

	return cfg, nil
}

// toServerConfig builds the socket/config.Server Validate() checks, merging
// the -t/--tls flag on top of whatever the file already requested.
func (c fileConfig) toServerConfig(tlsFlag bool) libcfg.Server {
	s := libcfg.Server{
		Network:        c.Network,
		Address:        c.Address,
		PermFile:       c.PermFile,
		GroupPerm:      c.GroupPerm,
		ConIdleTimeout: c.ConIdleTimeout,
	}

	s.TLS.Enabled = tlsFlag || c.TLSKeyFile != "" || c.TLSCrtFile != ""
	return s
}
