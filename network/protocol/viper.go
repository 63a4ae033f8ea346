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
	"math"
	"reflect"

	libmap "github.com/go-viper/mapstructure/v2"
)

// ViperDecoderHook lets viper/mapstructure decode a config value straight
// into a NetworkProtocol field, from either a protocol name or one of its
// numeric constants. Any other source or target type passes through
// unchanged so the hook composes with the rest of a decode chain.
func ViperDecoderHook() libmap.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		var z NetworkProtocol
		if to != reflect.TypeOf(z) {
			return data, nil
		}

		switch from.Kind() {
		case reflect.String:
			t, k := data.(string)
			if !k {
				return data, nil
			}
			return Parse(t), nil

		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return decodeNumericProtocol(from.Kind(), data)

		default:
			return data, nil
		}
	}
}

func decodeNumericProtocol(kind reflect.Kind, data interface{}) (interface{}, error) {
	var v int64

	switch kind {
	case reflect.Int:
		n, k := data.(int)
		if !k {
			return data, nil
		}
		v = int64(n)
	case reflect.Int8:
		n, k := data.(int8)
		if !k {
			return data, nil
		}
		v = int64(n)
	case reflect.Int16:
		n, k := data.(int16)
		if !k {
			return data, nil
		}
		v = int64(n)
	case reflect.Int32:
		n, k := data.(int32)
		if !k {
			return data, nil
		}
		v = int64(n)
	case reflect.Int64:
		n, k := data.(int64)
		if !k {
			return data, nil
		}
		v = n
	case reflect.Uint:
		n, k := data.(uint)
		if !k {
			return data, nil
		}
		if n > math.MaxUint16 {
			return nil, fmt.Errorf("network protocol: invalid value %d", n)
		}
		v = int64(n)
	case reflect.Uint8:
		n, k := data.(uint8)
		if !k {
			return data, nil
		}
		v = int64(n)
	case reflect.Uint16:
		n, k := data.(uint16)
		if !k {
			return data, nil
		}
		v = int64(n)
	case reflect.Uint32:
		n, k := data.(uint32)
		if !k {
			return data, nil
		}
		v = int64(n)
	case reflect.Uint64:
		n, k := data.(uint64)
		if !k {
			return data, nil
		}
		if n > math.MaxUint16 {
			return nil, fmt.Errorf("network protocol: invalid value %d", n)
		}
		v = int64(n)
	}

	p := ParseInt64(v)
	if !p.valid() {
		return nil, fmt.Errorf("network protocol: invalid value %d", v)
	}

	return p, nil
}
