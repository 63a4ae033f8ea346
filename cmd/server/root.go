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
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	libsck "github.com/sabouaram/proactor-echo/socket"
	scksrv "github.com/sabouaram/proactor-echo/socket/server/tcp"
)

// drainTimeout is how long Shutdown waits for in-flight connections to
// finish once Ctrl-C (or SIGTERM) is observed, per spec.md §6.
const drainTimeout = 5 * time.Second

type rootConfig struct {
	address    string
	tls        bool
	verbose    bool
	configFile string
}

func newRootCmd() *cobra.Command {
	cfg := &rootConfig{}

	cmd := &cobra.Command{
		Use:           "server",
		Short:         "TCP echo server with optional TLS 1.2 termination",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.address, "address", "a", "", "listen address (overrides --config)")
	cmd.Flags().BoolVarP(&cfg.tls, "tls", "t", false, "enable TLS 1.2 termination")
	cmd.Flags().BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().StringVar(&cfg.configFile, "config", "", "path to a YAML/TOML/JSON config file")

	return cmd
}

func runServer(ctx context.Context, rc *rootConfig) error {
	log := logrus.New()
	if rc.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	fc, err := loadConfig(rc.configFile)
	if err != nil {
		return err
	}

	if rc.address != "" {
		fc.Address = rc.address
	}

	sc := fc.toServerConfig(rc.tls)

	if _, err = net.ResolveTCPAddr("tcp", sc.Address); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", sc.Address, err)
	}

	srv := scksrv.New(nil, echoHandler(log))

	srv.RegisterFuncError(func(errs ...error) {
		for _, e := range errs {
			if e = libsck.ErrorFilter(e); e != nil {
				log.WithError(e).Error("server error")
			}
		}
	})
	srv.RegisterFuncInfo(func(local, remote net.Addr, state libsck.ConnState) {
		log.WithFields(logrus.Fields{"local": local, "remote": remote}).Debug(state.String())
	})
	srv.RegisterFuncInfoServer(func(msg string) {
		log.Info(msg)
	})

	if sc.TLS.Enabled {
		if fc.TLSKeyFile == "" || fc.TLSCrtFile == "" {
			return fmt.Errorf("tls enabled but --config did not set tlsKeyFile/tlsCrtFile")
		}

		cred := newCredentialProvider(fc.TLSKeyFile, fc.TLSCrtFile)
		tlsCfg, cerr := cred.Resolve(sc.Address)
		if cerr != nil {
			return cerr
		}

		if err = srv.SetTLS(true, tlsCfg); err != nil {
			return err
		}
	}

	if err = srv.RegisterServer(sc.Address); err != nil {
		return err
	}

	listenCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(listenCtx) }()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), drainTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		cancel()
		<-errCh
		return err
	}

	cancel()
	<-errCh
	return nil
}
