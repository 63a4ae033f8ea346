/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package protocol

import (
	"math"
	"strings"
)

// normalize strips surrounding whitespace and quoting (single, backtick,
// double, in that order) before a case-insensitive comparison. The order
// matters for nested quoting: single quotes inside double quotes are kept
// (`"'tcp'"` becomes `'tcp'`), while double quotes inside single quotes are
// removed as well (`'"tcp"'` becomes `tcp`).
func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "'")
	s = strings.Trim(s, "`")
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)
	return strings.ToLower(s)
}

// Parse decodes a network name as accepted by net.Dial/net.Listen, returning
// NetworkEmpty for anything it doesn't recognize.
func Parse(s string) NetworkProtocol {
	switch normalize(s) {
	case "unix":
		return NetworkUnix
	case "tcp":
		return NetworkTCP
	case "tcp4":
		return NetworkTCP4
	case "tcp6":
		return NetworkTCP6
	case "udp":
		return NetworkUDP
	case "udp4":
		return NetworkUDP4
	case "udp6":
		return NetworkUDP6
	case "ip":
		return NetworkIP
	case "ip4":
		return NetworkIP4
	case "ip6":
		return NetworkIP6
	case "unixgram":
		return NetworkUnixGram
	default:
		return NetworkEmpty
	}
}

func ParseBytes(b []byte) NetworkProtocol {
	return Parse(string(b))
}

// ParseInt64 maps a raw constant value back to a NetworkProtocol, rejecting
// anything outside the uint8 range or not one of the known constants.
func ParseInt64(v int64) NetworkProtocol {
	if v <= 0 || v > math.MaxUint8 {
		return NetworkEmpty
	}

	p := NetworkProtocol(uint8(v))
	if !p.valid() {
		return NetworkEmpty
	}

	return p
}
