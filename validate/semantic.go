// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validate

import (
	"math"
	"strings"

	"github.com/regdesc/tools/desc"
)

// checkFunctions verifies that the register's bit fields stay inside the
// register bounds, do not overlap, and together claim every register bit.
// Each register bit gets an owner slot; a slot claimed twice is an overlap
// (reported once per offending field) and slots left unclaimed are reported
// as undefined bit ranges.
func checkFunctions(r *desc.Register, v *tableValidator) {
	bits := make([]*desc.BitRange, int(r.Size))
	for i := range r.Fields {
		f := &r.Fields[i]
		overlap := false
		for bit := uint(f.Range.LSB); bit <= uint(f.Range.MSB); bit++ {
			if bit >= uint(len(bits)) {
				v.constraintErr("bit field range '%s' is not inside register bounds, register size: %s",
					f.Range, r.Size)
				break
			}
			switch owner := bits[bit]; {
			case owner == nil:
				bits[bit] = &f.Range
			case owner != &f.Range:
				if !overlap {
					v.constraintErr("bit field range '%s' overlaps with another bit field '%s'",
						f.Range, owner)
				}
				// Keep going so the undefined bit scan below stays accurate.
				overlap = true
			}
		}
	}

	var gaps []desc.BitRange
	lsb := -1
	for i, owner := range bits {
		switch {
		case owner == nil && lsb < 0:
			lsb = i
		case owner != nil && lsb >= 0:
			gaps = append(gaps, desc.NewBitRange(uint16(i-1), uint16(lsb)))
			lsb = -1
		}
	}
	if lsb >= 0 {
		gaps = append(gaps, desc.NewBitRange(uint16(len(bits)-1), uint16(lsb)))
	}

	switch len(gaps) {
	case 0:
	case 1:
		if gaps[0].MSB == gaps[0].LSB {
			v.constraintErr("register bit '%s' is undefined", gaps[0])
		} else {
			v.constraintErr("some register bits are undefined, '%s'", gaps[0])
		}
	default:
		parts := make([]string, len(gaps))
		for i := range gaps {
			parts[i] = "'" + gaps[i].String() + "'"
		}
		v.constraintErr("some register bits are undefined, %s", strings.Join(parts, ", "))
	}
}

// checkEnums verifies that every enum range matches exactly one
// non-reserved bit field, that no two enums share a range, and that enum
// values are unique and inside the range. It also classifies each enum as
// complete when its values exhaust the range.
func checkEnums(r *desc.Register, v *tableValidator) {
	ranges := make(map[desc.BitRange]string)
	for i := range r.Enums {
		e := &r.Enums[i]

		matched, reserved := false, false
		for k := range r.Fields {
			if r.Fields[k].Range == e.Range {
				matched = true
				if r.Fields[k].Reserved {
					reserved = true
				}
			}
		}
		if !matched {
			v.constraintErr("no matching bit field range found for enum '%s'", e.Name)
			continue
		}
		if reserved {
			v.constraintErr("enum '%s' bit range is reserved", e.Name)
			continue
		}
		if other, dup := ranges[e.Range]; dup {
			v.constraintErr("same bit range '%s' is defined for enums '%s' and '%s'",
				e.Range, e.Name, other)
			continue
		}
		ranges[e.Range] = e.Name

		max, err := e.Range.MaxValue()
		if err != nil {
			v.constraintErr("enum '%s' %s", e.Name, err)
			continue
		}

		seen := make(map[uint64]string)
		for k := range e.Values {
			ev := &e.Values[k]
			if ev.Value > max {
				v.constraintErr("enum value '%s' with value '%d' for enum '%s' is larger than enum max value '%d'",
					ev.Name, ev.Value, e.Name, max)
			}
			if other, dup := seen[ev.Value]; dup {
				v.constraintErr("enum values '%s' and '%s' have the same value '%d'",
					ev.Name, other, ev.Value)
			} else {
				seen[ev.Value] = ev.Name
			}
		}

		// A 64-bit range can never be complete: it would need 2^64 values.
		if max != math.MaxUint64 && uint64(len(e.Values)) == max+1 {
			e.Complete = true
		}
	}
}
