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

// SI power-of-ten exponents, used both for decimal (Number) and, scaled to
// power-of-two (Bytes), binary unit selection.
const (
	_PowerUnit_  = 0
	_PowerKilo_  = 3
	_PowerMega_  = 6
	_PowerGiga_  = 9
	_PowerTera_  = 12
	_PowerPeta_  = 15
	_PowerExa_   = 18
	_PowerZetta_ = 21
	_PowerYotta_ = 24

	_MaxSizeOfPad_ = 4
	_PadIntPattern_ = "%4d"
)

// powerList returns the known SI power exponents from largest to smallest so
// callers can pick the first (biggest) unit a value qualifies for.
func powerList() []int {
	return []int{
		_PowerYotta_,
		_PowerZetta_,
		_PowerExa_,
		_PowerPeta_,
		_PowerTera_,
		_PowerGiga_,
		_PowerMega_,
		_PowerKilo_,
		_PowerUnit_,
	}
}

// power2Unit returns the SI prefix letter for a given power exponent, using
// the nearest lower defined boundary for intermediate values.
func power2Unit(power int) string {
	switch {
	case power < 0:
		return ""
	case power >= _PowerYotta_:
		return "Y"
	case power >= _PowerZetta_:
		return "Z"
	case power >= _PowerExa_:
		return "E"
	case power >= _PowerPeta_:
		return "P"
	case power >= _PowerTera_:
		return "T"
	case power >= _PowerGiga_:
		return "G"
	case power >= _PowerMega_:
		return "M"
	case power >= _PowerKilo_:
		return "K"
	default:
		return ""
	}
}
