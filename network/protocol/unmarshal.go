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
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON never errors: an unknown or malformed value decodes to
// NetworkEmpty rather than failing the surrounding document.
func (p *NetworkProtocol) UnmarshalJSON(data []byte) error {
	*p = ParseBytes(data)
	return nil
}

func (p *NetworkProtocol) UnmarshalYAML(node *yaml.Node) error {
	*p = Parse(node.Value)
	return nil
}

// UnmarshalTOML accepts the shapes a TOML decoder hands a scalar field:
// raw bytes or a string. Anything else is a decode error.
func (p *NetworkProtocol) UnmarshalTOML(data interface{}) error {
	switch v := data.(type) {
	case []byte:
		*p = ParseBytes(v)
		return nil
	case string:
		*p = Parse(v)
		return nil
	default:
		return fmt.Errorf("network protocol: value %v is not in valid format", data)
	}
}

func (p *NetworkProtocol) UnmarshalText(data []byte) error {
	*p = ParseBytes(data)
	return nil
}

func (p *NetworkProtocol) UnmarshalCBOR(data []byte) error {
	*p = ParseBytes(data)
	return nil
}
