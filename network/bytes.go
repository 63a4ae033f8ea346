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

package network

import (
	"strconv"
)

// Bytes is a binary (base-2) byte counter: file sizes, transfer counts...
type Bytes uint64

func (b Bytes) String() string {
	return strconv.FormatUint(uint64(b), 10)
}

func (b Bytes) AsNumber() Number {
	return Number(b)
}

func (b Bytes) AsUint64() uint64 {
	return uint64(b)
}

func (b Bytes) AsFloat64() float64 {
	return float64(b)
}

// binaryUnit splits a raw value into its scaled magnitude and "xB" prefix,
// picking the largest power-of-two unit (2^10, 2^20, ...) it qualifies for.
func binaryUnit(value float64) (float64, string) {
	for _, p := range powerList() {
		shift := uint(p) / 3 * 10
		if shift >= 64 {
			continue
		}
		threshold := float64(uint64(1) << shift)
		if p == _PowerUnit_ || value >= threshold {
			unit := power2Unit(p)
			if unit != "" {
				unit += "B"
			}
			return value / threshold, unit
		}
	}
	return value, ""
}

func (b Bytes) FormatUnitInt() string {
	v, unit := binaryUnit(b.AsFloat64())
	return formatUnitInt(v, unit)
}

func (b Bytes) FormatUnitFloat(precision int) string {
	if precision <= 0 {
		return b.FormatUnitInt()
	}

	v, unit := binaryUnit(b.AsFloat64())
	return formatUnitFloat(v, unit, precision)
}
