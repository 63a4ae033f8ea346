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
	"fmt"
	"math"
	"strconv"
)

// Number is a plain decimal (base-10, SI) counter: packets, errors, drops...
type Number uint64

func (n Number) String() string {
	return strconv.FormatUint(uint64(n), 10)
}

func (n Number) AsBytes() Bytes {
	return Bytes(n)
}

func (n Number) AsUint64() uint64 {
	return uint64(n)
}

func (n Number) AsFloat64() float64 {
	return float64(n)
}

// decimalUnit splits a raw value into its scaled magnitude and SI prefix,
// picking the largest power of ten the value qualifies for.
func decimalUnit(value float64) (float64, string) {
	for _, p := range powerList() {
		threshold := math.Pow10(p)
		if p == _PowerUnit_ || value >= threshold {
			return value / threshold, power2Unit(p)
		}
	}
	return value, ""
}

func formatUnitInt(value float64, unit string) string {
	rounded := int64(math.Round(value))
	if unit == "" {
		return fmt.Sprintf(_PadIntPattern_, rounded)
	}
	return fmt.Sprintf(_PadIntPattern_+" %s", rounded, unit)
}

func formatUnitFloat(value float64, unit string, precision int) string {
	width := _MaxSizeOfPad_ + 1 + precision
	s := fmt.Sprintf("%*.*f", width, precision, value)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

func (n Number) FormatUnitInt() string {
	v, unit := decimalUnit(n.AsFloat64())
	return formatUnitInt(v, unit)
}

func (n Number) FormatUnitFloat(precision int) string {
	if precision <= 0 {
		return n.FormatUnitInt()
	}

	v, unit := decimalUnit(n.AsFloat64())
	return formatUnitFloat(v, unit, precision)
}
