// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package desc

import (
	"fmt"
	"strconv"
	"strings"
)

// BitRange is an inclusive bit range with MSB >= LSB. The zero value is the
// single bit 0. BitRange is comparable and may be used as a map key.
type BitRange struct {
	MSB, LSB uint16
}

// NewBitRange panics if msb < lsb. Use ParseBitRange for untrusted input.
func NewBitRange(msb, lsb uint16) BitRange {
	if msb < lsb {
		panic(fmt.Sprintf("bit range: msb < lsb, msb: %d, lsb: %d", msb, lsb))
	}
	return BitRange{MSB: msb, LSB: lsb}
}

// ParseBitRange parses "msb:lsb" or a single bit number.
func ParseBitRange(s string) (BitRange, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		bit, err := parseBitNumber(parts[0])
		if err != nil {
			return BitRange{}, err
		}
		return BitRange{MSB: bit, LSB: bit}, nil
	case 2:
		msb, err := parseBitNumber(parts[0])
		if err != nil {
			return BitRange{}, err
		}
		lsb, err := parseBitNumber(parts[1])
		if err != nil {
			return BitRange{}, err
		}
		if msb < lsb {
			return BitRange{}, fmt.Errorf("most significant bit is smaller than least significant bit (msb < lsb), value: '%s'", s)
		}
		if msb == lsb {
			return BitRange{}, fmt.Errorf("unnecessary range syntax, change '%s' to '%d'", s, msb)
		}
		return BitRange{MSB: msb, LSB: lsb}, nil
	}
	return BitRange{}, fmt.Errorf("invalid bit range '%s'", s)
}

func parseBitNumber(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid bit number '%s'", s)
	}
	return uint16(n), nil
}

// BitCount returns the number of bits in the range, at least 1.
func (r BitRange) BitCount() uint {
	return uint(r.MSB) - uint(r.LSB) + 1
}

// MaxValue returns the largest value representable in the range. Ranges
// wider than 64 bits are an error.
func (r BitRange) MaxValue() (uint64, error) {
	count := r.BitCount()
	if count > 64 {
		return 0, fmt.Errorf("bit range '%s' is larger than 64 bits", r)
	}
	if count == 64 {
		return ^uint64(0), nil
	}
	return 1<<count - 1, nil
}

func (r BitRange) String() string {
	if r.MSB == r.LSB {
		return strconv.Itoa(int(r.MSB))
	}
	return fmt.Sprintf("%d:%d", r.MSB, r.LSB)
}
