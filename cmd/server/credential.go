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

	libatm "github.com/sabouaram/proactor-echo/atomic"
	libtls "github.com/sabouaram/proactor-echo/certificates"
	tlsvrs "github.com/sabouaram/proactor-echo/certificates/tlsversion"
)

// credentialProvider resolves a server name to a reusable TLSConfig
// credential handle. It stands in for the certificate-store lookup: a
// real deployment would consult a platform certificate store, here it
// reads key/cert file paths out of the loaded configuration. A credential
// is created on demand per server name and never mutated afterward, so
// every Connection accepted under the same name shares the same handle.
type credentialProvider struct {
	keyFile, crtFile string

	cache libatm.MapTyped[string, libtls.TLSConfig]
}

func newCredentialProvider(keyFile, crtFile string) *credentialProvider {
	return &credentialProvider{
		keyFile: keyFile,
		crtFile: crtFile,
		cache:   libatm.NewMapTyped[string, libtls.TLSConfig](),
	}
}

// Resolve returns the shared TLSConfig credential handle for serverName,
// building it once and caching it for every subsequent call.
func (p *credentialProvider) Resolve(serverName string) (libtls.TLSConfig, error) {
	if cfg, ok := p.cache.Load(serverName); ok {
		return cfg, nil
	}

	cfg := libtls.New()
	cfg.SetVersionMax(tlsvrs.VersionTLS12)
	if err := cfg.AddCertificatePairFile(p.keyFile, p.crtFile); err != nil {
		return nil, fmt.Errorf("credential provider: loading certificate pair: %w", err)
	}

	p.cache.Store(serverName, cfg)
	return cfg, nil
}
