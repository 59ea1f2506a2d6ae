// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gogen

import (
	"fmt"

	"github.com/regdesc/tools/desc"
)

// fieldMax is the largest value representable in a validated bit field
// range.
func fieldMax(rng desc.BitRange) uint64 {
	max, err := rng.MaxValue()
	if err != nil {
		panic("gogen: " + err.Error())
	}
	return max
}

// enumFor returns the enum attached to the bit field range, if any. The
// validated model guarantees at most one.
func enumFor(r *desc.Register, rng desc.BitRange) *desc.Enum {
	for i := range r.Enums {
		if r.Enums[i].Range == rng {
			return &r.Enums[i]
		}
	}
	return nil
}

// shiftDown renders "(expr & mask) >> lsb", dropping the shift of a field
// anchored at bit 0.
func shiftDown(expr string, mask uint64, lsb uint16) string {
	if lsb == 0 {
		return fmt.Sprintf("%s & %s", expr, hex(mask))
	}
	return fmt.Sprintf("(%s & %s) >> %d", expr, hex(mask), lsb)
}

// shiftUp renders "(expr << lsb) & mask".
func shiftUp(expr string, mask uint64, lsb uint16) string {
	if lsb == 0 {
		return fmt.Sprintf("%s & %s", expr, hex(mask))
	}
	return fmt.Sprintf("(%s << %d) & %s", expr, lsb, hex(mask))
}

// fieldGetter emits the R accessor of one named bit field: the enum type
// for enumerated fields, bool for single bits, the raw register width
// otherwise.
func (g *generator) fieldGetter(r *desc.Register, rn registerNames, f *desc.BitField) {
	getter := titleCase(f.Name)
	mask := maskOf(f.Range)
	u := uintType(r.Size)

	if f.Description != "" {
		g.p("// %s: %s", getter, joinDoc(f.Description))
	}
	switch e := enumFor(r, f.Range); {
	case e != nil:
		typ := rn.typ + "_" + constCase(e.Name)
		g.p("func (v %s_R) %s() %s {", rn.typ, getter, typ)
		g.p("\treturn %s(%s)", typ, shiftDown("v.bits", mask, f.Range.LSB))
		g.p("}")
	case f.Range.BitCount() == 1:
		g.p("func (v %s_R) %s() bool {", rn.typ, getter)
		g.p("\treturn v.bits&%s != 0", hex(mask))
		g.p("}")
		g.p("")
		g.p("func (v %s_R) %sIsSet() bool   { return v.%s() }", rn.typ, getter, getter)
		g.p("func (v %s_R) %sIsClear() bool { return !v.%s() }", rn.typ, getter, getter)
	default:
		g.p("func (v %s_R) %s() %s {", rn.typ, getter, u)
		g.p("\treturn %s", shiftDown("v.bits", mask, f.Range.LSB))
		g.p("}")
	}
	g.p("")
}

// fieldSetter emits the W accessors of one named bit field. Enumerated
// fields additionally get one shorthand setter per named value.
func (g *generator) fieldSetter(r *desc.Register, rn registerNames, f *desc.BitField) {
	setter := "Set" + titleCase(f.Name)
	mask := maskOf(f.Range)
	u := uintType(r.Size)

	switch e := enumFor(r, f.Range); {
	case e != nil:
		typ := rn.typ + "_" + constCase(e.Name)
		g.p("func (w *%s_W) %s(v %s) {", rn.typ, setter, typ)
		g.p("\tw.bits = w.bits&^%s | %s", hex(mask), shiftUp(u+"(v)", mask, f.Range.LSB))
		g.p("}")
		g.p("")
		for i := range e.Values {
			ev := &e.Values[i]
			g.p("func (w *%s_W) %s%s() { w.%s(%s_%s) }",
				rn.typ, setter, titleCase(ev.Name), setter, typ, constCase(ev.Name))
		}
	case f.Range.BitCount() == 1:
		g.p("func (w *%s_W) %s()   { w.bits |= %s }", rn.typ, setter, hex(mask))
		g.p("func (w *%s_W) Clear%s() { w.bits &^= %s }", rn.typ, titleCase(f.Name), hex(mask))
	default:
		g.p("func (w *%s_W) %s(v %s) {", rn.typ, setter, u)
		g.p("\tw.bits = w.bits&^%s | %s", hex(mask), shiftUp("v", mask, f.Range.LSB))
		g.p("}")
	}
	g.p("")
}

// enumTypes emits one defined type per register enum, with a named
// constant per value and a String method decoding it.
func (g *generator) enumTypes(r *desc.Register, rn registerNames) {
	u := uintType(r.Size)
	for i := range r.Enums {
		e := &r.Enums[i]
		typ := rn.typ + "_" + constCase(e.Name)

		if e.Description != "" {
			g.p("// %s: %s", typ, joinDoc(e.Description))
		}
		if e.Complete {
			g.p("// Every value of the '%s' field is named.", e.Name)
		}
		g.p("type %s %s", typ, u)
		g.p("")
		g.p("const (")
		for k := range e.Values {
			ev := &e.Values[k]
			line := fmt.Sprintf("\t%s_%s %s = %s", typ, constCase(ev.Name), typ, hex(ev.Value))
			if ev.Description != "" {
				line += " // " + joinDoc(ev.Description)
			}
			g.p("%s", line)
		}
		g.p(")")
		g.p("")
		g.p("func (v %s) Bits() %s { return %s(v) }", typ, u, u)
		if e.Range.BitCount() == 1 {
			g.p("")
			g.p("func (v %s) Bit() bool { return v != 0 }", typ)
		}
		g.p("")
		if e.Complete {
			// Total by completeness: every masked value is a named one.
			g.p("func %s_FromBits(bits %s) %s { return %s(bits & %s) }",
				typ, u, typ, typ, hex(fieldMax(e.Range)))
			g.p("")
		}
		for k := range e.Values {
			ev := &e.Values[k]
			g.p("func (v %s) Is%s() bool { return v == %s_%s }",
				typ, titleCase(ev.Name), typ, constCase(ev.Name))
		}
		g.p("")
		g.p("func (v %s) String() string {", typ)
		g.p("\tswitch v {")
		for k := range e.Values {
			ev := &e.Values[k]
			g.p("\tcase %s_%s:", typ, constCase(ev.Name))
			g.p("\t\treturn \"%s\"", ev.Name)
		}
		g.p("\t}")
		g.p("\treturn fmt.Sprintf(\"%s(%%#x)\", uint64(v))", typ)
		g.p("}")
		g.p("")
	}
}
