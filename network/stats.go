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
	"sort"
	"strings"
)

// Stats identifies one counter in a network interface's statistics block.
type Stats uint8

const (
	StatBytes Stats = iota + 1
	StatPackets
	StatFifo
	StatDrop
	StatErr
)

func (s Stats) String() string {
	switch s {
	case StatBytes:
		return "Traffic"
	case StatPackets:
		return "Packets"
	case StatFifo:
		return "Fifo"
	case StatDrop:
		return "Drop"
	case StatErr:
		return "Error"
	default:
		return ""
	}
}

func (s Stats) valid() bool {
	return s.String() != ""
}

// FormatUnitInt formats n the way this stat kind is conventionally
// displayed: binary units for traffic byte counts, decimal units otherwise.
func (s Stats) FormatUnitInt(n Number) string {
	if !s.valid() {
		return ""
	}
	if s == StatBytes {
		return n.AsBytes().FormatUnitInt()
	}
	return n.FormatUnitInt()
}

func (s Stats) FormatUnitFloat(n Number, precision int) string {
	if !s.valid() {
		return ""
	}
	if s == StatBytes {
		return n.AsBytes().FormatUnitFloat(precision)
	}
	return n.FormatUnitFloat(precision)
}

// FormatUnit applies this stat kind's default precision: 2 decimals for
// byte traffic, integer for everything else.
func (s Stats) FormatUnit(n Number) string {
	if !s.valid() {
		return ""
	}
	if s == StatBytes {
		return s.FormatUnitFloat(n, 2)
	}
	return s.FormatUnitInt(n)
}

func (s Stats) FormatLabelUnit(n Number) string {
	return fmt.Sprintf("%s: %s", s.String(), s.FormatUnit(n))
}

func (s Stats) FormatLabelUnitPadded(n Number) string {
	pad := maxStatLabelLen() - len(s.String()) + 1
	return fmt.Sprintf("%s:%s%s", s.String(), strings.Repeat(" ", pad), s.FormatUnit(n))
}

func maxStatLabelLen() int {
	m := 0
	for _, s := range ListStats() {
		if l := len(Stats(s).String()); l > m {
			m = l
		}
	}
	return m
}

// ListStats returns all known Stats values, as ints, ascending.
func ListStats() []int {
	return []int{
		int(StatBytes),
		int(StatPackets),
		int(StatFifo),
		int(StatDrop),
		int(StatErr),
	}
}

// ListStatsSort returns all known Stats values sorted ascending.
func ListStatsSort() []int {
	l := ListStats()
	sort.Ints(l)
	return l
}
