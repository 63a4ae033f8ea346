/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package certificates

import (
	"crypto/tls"
	"io"

	tlsaut "github.com/sabouaram/proactor-echo/certificates/auth"
	tlscas "github.com/sabouaram/proactor-echo/certificates/ca"
	tlscrt "github.com/sabouaram/proactor-echo/certificates/certs"
	tlscpr "github.com/sabouaram/proactor-echo/certificates/cipher"
	tlscrv "github.com/sabouaram/proactor-echo/certificates/curves"
	tlsvrs "github.com/sabouaram/proactor-echo/certificates/tlsversion"
)

// config is the concrete implementation of TLSConfig. Every field is backed
// by one of the typed sub-packages so parsing, validation and encoding stay
// centralized there instead of being duplicated here.
type config struct {
	rand                  io.Reader
	cert                  []tlscrt.Cert
	cipherList            []tlscpr.Cipher
	curveList             []tlscrv.Curves
	caRoot                []tlscas.Cert
	clientAuth            tlsaut.ClientAuth
	clientCA              []tlscas.Cert
	tlsMinVersion         tlsvrs.Version
	tlsMaxVersion         tlsvrs.Version
	dynSizingDisabled     bool
	ticketSessionDisabled bool
}

func (o *config) RegisterRand(rand io.Reader) {
	o.rand = rand
}

func (o *config) SetCipherList(c []tlscpr.Cipher) {
	o.cipherList = make([]tlscpr.Cipher, 0)
	o.AddCiphers(c...)
}

func (o *config) AddCiphers(c ...tlscpr.Cipher) {
	o.cipherList = append(o.cipherList, c...)
}

func (o *config) GetCiphers() []tlscpr.Cipher {
	return append(make([]tlscpr.Cipher, 0), o.cipherList...)
}

func (o *config) SetVersionMin(v tlsvrs.Version) {
	o.tlsMinVersion = v
}

func (o *config) GetVersionMin() tlsvrs.Version {
	return o.tlsMinVersion
}

func (o *config) SetVersionMax(v tlsvrs.Version) {
	o.tlsMaxVersion = v
}

func (o *config) GetVersionMax() tlsvrs.Version {
	return o.tlsMaxVersion
}

func (o *config) SetDynamicSizingDisabled(flag bool) {
	o.dynSizingDisabled = flag
}

func (o *config) SetSessionTicketDisabled(flag bool) {
	o.ticketSessionDisabled = flag
}

func (o *config) Clone() TLSConfig {
	return &config{
		rand:                  o.rand,
		cert:                  append(make([]tlscrt.Cert, 0), o.cert...),
		cipherList:            append(make([]tlscpr.Cipher, 0), o.cipherList...),
		curveList:             append(make([]tlscrv.Curves, 0), o.curveList...),
		caRoot:                append(make([]tlscas.Cert, 0), o.caRoot...),
		clientAuth:            o.clientAuth,
		clientCA:              append(make([]tlscas.Cert, 0), o.clientCA...),
		tlsMinVersion:         o.tlsMinVersion,
		tlsMaxVersion:         o.tlsMaxVersion,
		dynSizingDisabled:     o.dynSizingDisabled,
		ticketSessionDisabled: o.ticketSessionDisabled,
	}
}

func (o *config) TLS(serverName string) *tls.Config {
	/* #nosec */
	cnf := &tls.Config{
		Rand:                        o.rand,
		ServerName:                  serverName,
		SessionTicketsDisabled:      o.ticketSessionDisabled,
		DynamicRecordSizingDisabled: o.dynSizingDisabled,
	}

	if o.tlsMinVersion != tlsvrs.VersionUnknown {
		cnf.MinVersion = o.tlsMinVersion.TLS()
	}

	if o.tlsMaxVersion != tlsvrs.VersionUnknown {
		cnf.MaxVersion = o.tlsMaxVersion.TLS()
	}

	if len(o.cipherList) > 0 {
		for _, c := range o.cipherList {
			cnf.CipherSuites = append(cnf.CipherSuites, c.TLS())
		}
	}

	if len(o.curveList) > 0 {
		for _, c := range o.curveList {
			cnf.CurvePreferences = append(cnf.CurvePreferences, c.TLS())
		}
	}

	if len(o.caRoot) > 0 {
		cnf.RootCAs = o.GetRootCAPool()
	}

	if len(o.cert) > 0 {
		cnf.Certificates = o.GetCertificatePair()
	}

	if o.clientAuth != tlsaut.NoClientCert {
		cnf.ClientAuth = o.clientAuth.TLS()
		if len(o.clientCA) > 0 {
			cnf.ClientCAs = o.GetClientCAPool()
		}
	}

	return cnf
}

func (o *config) TlsConfig(serverName string) *tls.Config {
	return o.TLS(serverName)
}

func (o *config) Config() *Config {
	return &Config{
		CurveList:            o.GetCurves(),
		CipherList:           o.GetCiphers(),
		RootCA:               o.GetRootCA(),
		ClientCA:             o.GetClientCA(),
		Certs:                o.certsAsModels(),
		VersionMin:           o.tlsMinVersion,
		VersionMax:           o.tlsMaxVersion,
		AuthClient:           o.clientAuth,
		DynamicSizingDisable: o.dynSizingDisabled,
		SessionTicketDisable: o.ticketSessionDisabled,
	}
}

func (o *config) certsAsModels() []tlscrt.Certif {
	res := make([]tlscrt.Certif, 0, len(o.cert))
	for _, c := range o.cert {
		res = append(res, c.Model())
	}
	return res
}
