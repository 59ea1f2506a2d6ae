// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gogen

import (
	"fmt"

	"github.com/regdesc/tools/desc"
)

// names derived from a register definition.
type registerNames struct {
	typ    string // CONTROL_TIMER_CTRL
	getter string // TimerCtrl
	label  string // timer_ctrl
}

func registerIdents(r *desc.Register, gn groupNames) registerNames {
	return registerNames{
		typ:    gn.prefix + constCase(r.Name),
		getter: titleCase(r.Name),
		label:  r.Name,
	}
}

// hasWrite reports whether a whole-register write is generated. Registers
// with reserved bit fields get no Write accessor: a fresh raw value cannot
// know what the reserved bits must hold.
func hasWrite(r *desc.Register) bool {
	return r.Access.CanWrite() && !r.ReservedFields()
}

// hasModify reports whether a read-modify-write accessor is generated.
// Modify starts from the value just read, so reserved bits are preserved
// and it stays available where Write is not.
func hasModify(r *desc.Register) bool {
	return r.Access == desc.ReadWrite
}

// needsW reports whether the register has any write path and therefore a
// W wrapper and a write I/O capability.
func needsW(r *desc.Register) bool {
	return hasWrite(r) || hasModify(r)
}

// locConst is the name of a generated location constant, e.g.
// "CONTROL_STATUS_ABS_ADDR_R".
func locConst(rn registerNames, k desc.LocationKind, dir string) string {
	switch k {
	case desc.Index:
		return rn.typ + "_INDEX"
	case desc.Relative:
		return rn.typ + "_REL_ADDR_" + dir
	case desc.Absolute:
		return rn.typ + "_ABS_ADDR_" + dir
	}
	panic(fmt.Sprintf("gogen: unknown location kind %d", k))
}

func (g *generator) register(r *desc.Register, gn groupNames) {
	rn := registerIdents(r, gn)
	g.registerConsts(r, rn)
	g.registerAccessor(r, rn, gn)
	if r.Access.CanRead() {
		g.readWrapper(r, rn)
	}
	if needsW(r) {
		g.writeWrapper(r, rn)
	}
	g.enumTypes(r, rn)
}

// registerConsts emits the location constants of the register, one per
// supported direction, plus the parallel slot ordinal when present. An
// index location is direction-independent and gets a single constant.
func (g *generator) registerConsts(r *desc.Register, rn registerNames) {
	locTyp := g.addrType()
	if r.ReadLoc.Kind == desc.Index {
		locTyp = g.indexType()
	}
	g.p("const (")
	if r.ReadLoc.Kind == desc.Index {
		g.p("\t%s %s = %s", locConst(rn, desc.Index, ""), locTyp, hex(r.ReadLoc.Value))
	} else {
		if r.Access.CanRead() {
			g.p("\t%s %s = %s", locConst(rn, r.ReadLoc.Kind, "R"), locTyp, hex(r.ReadLoc.Value))
		}
		if r.Access.CanWrite() {
			g.p("\t%s %s = %s", locConst(rn, r.WriteLoc.Kind, "W"), locTyp, hex(r.WriteLoc.Value))
		}
	}
	if r.Slot != nil {
		g.p("\t%s_SLOT uint16 = %d", rn.typ, *r.Slot)
	}
	g.p(")")
	g.p("")
}

func (g *generator) registerAccessor(r *desc.Register, rn registerNames, gn groupNames) {
	ioTyp := rn.typ + "_IO"
	width := int(r.Size)

	// Only the capabilities this register actually exercises.
	g.p("// %s lists the I/O capabilities the '%s' register requires.", ioTyp, rn.label)
	g.p("type %s[G any] interface {", ioTyp)
	if r.Access.CanRead() {
		g.p("\t%sR%d[G]", kindName(r.ReadLoc.Kind), width)
	}
	if needsW(r) {
		g.p("\t%sW%d[G]", kindName(r.WriteLoc.Kind), width)
	}
	g.p("}")
	g.p("")

	if r.Description != "" {
		g.p("// %s: %s", rn.typ, joinDoc(r.Description))
	}
	g.p("type %s[T %s[%s]] struct{ io T }", rn.typ, ioTyp, gn.marker)
	g.p("")

	// Location facts.
	recv := fmt.Sprintf("func (x *%s[T])", rn.typ)
	if r.ReadLoc.Kind == desc.Index {
		c := locConst(rn, desc.Index, "")
		if r.Access.CanRead() {
			g.p("%s IndexR() %s { return %s }", recv, g.indexType(), c)
		}
		if r.Access.CanWrite() {
			g.p("%s IndexW() %s { return %s }", recv, g.indexType(), c)
		}
	} else {
		kind := "Abs"
		if r.ReadLoc.Kind == desc.Relative {
			kind = "Rel"
		}
		if r.Access.CanRead() {
			g.p("%s %sAddrR() %s { return %s }", recv, kind, g.addrType(), locConst(rn, r.ReadLoc.Kind, "R"))
		}
		if r.Access.CanWrite() {
			g.p("%s %sAddrW() %s { return %s }", recv, kind, g.addrType(), locConst(rn, r.WriteLoc.Kind, "W"))
		}
	}
	if r.Slot != nil {
		g.p("%s Slot() uint16 { return %s_SLOT }", recv, rn.typ)
	}
	g.p("")

	readCall := fmt.Sprintf("x.io.Read%s%d(%s{}, %s)",
		kindName(r.ReadLoc.Kind), width, gn.marker, readLocConst(r, rn))
	writeCall := func(v string) string {
		return fmt.Sprintf("x.io.Write%s%d(%s{}, %s, %s)",
			kindName(r.WriteLoc.Kind), width, gn.marker, writeLocConst(r, rn), v)
	}

	if r.Access.CanRead() {
		g.p("func (x *%s[T]) Read() %s_R {", rn.typ, rn.typ)
		g.p("\treturn %s_R{bits: %s}", rn.typ, readCall)
		g.p("}")
		g.p("")
	}
	if hasWrite(r) {
		g.p("func (x *%s[T]) Write(f func(w *%s_W)) {", rn.typ, rn.typ)
		g.p("\tvar w %s_W", rn.typ)
		g.p("\tf(&w)")
		g.p("\t%s", writeCall("w.bits"))
		g.p("}")
		g.p("")
	}
	if hasModify(r) {
		g.p("func (x *%s[T]) Modify(f func(v %s_R, w *%s_W)) {", rn.typ, rn.typ, rn.typ)
		g.p("\tv := x.Read()")
		g.p("\tw := %s_W{bits: v.bits}", rn.typ)
		g.p("\tf(v, &w)")
		g.p("\t%s", writeCall("w.bits"))
		g.p("}")
		g.p("")
	}
}

func readLocConst(r *desc.Register, rn registerNames) string {
	if r.ReadLoc.Kind == desc.Index {
		return locConst(rn, desc.Index, "")
	}
	return locConst(rn, r.ReadLoc.Kind, "R")
}

func writeLocConst(r *desc.Register, rn registerNames) string {
	if r.WriteLoc.Kind == desc.Index {
		return locConst(rn, desc.Index, "")
	}
	return locConst(rn, r.WriteLoc.Kind, "W")
}

// readWrapper emits the R value type with one decoded getter per named bit
// field and a String method listing them.
func (g *generator) readWrapper(r *desc.Register, rn registerNames) {
	u := uintType(r.Size)
	g.p("// %s_R is a value read from the '%s' register.", rn.typ, rn.label)
	g.p("type %s_R struct{ bits %s }", rn.typ, u)
	g.p("")
	g.p("func (v %s_R) Bits() %s { return v.bits }", rn.typ, u)
	g.p("")

	for i := range r.Fields {
		f := &r.Fields[i]
		if f.Reserved {
			continue
		}
		g.fieldGetter(r, rn, f)
	}

	var verbs, args []string
	for i := range r.Fields {
		f := &r.Fields[i]
		if f.Reserved {
			continue
		}
		verbs = append(verbs, f.Name+": %v")
		args = append(args, fmt.Sprintf("v.%s()", titleCase(f.Name)))
	}
	g.p("func (v %s_R) String() string {", rn.typ)
	if len(args) == 0 {
		g.p("\treturn fmt.Sprintf(\"%s{bits: %%#x}\", v.bits)", rn.label)
	} else {
		g.p("\treturn fmt.Sprintf(\"%s{%s}\", %s)", rn.label, joinComma(verbs), joinComma(args))
	}
	g.p("}")
	g.p("")
}

// writeWrapper emits the W builder type with one setter per named bit
// field.
func (g *generator) writeWrapper(r *desc.Register, rn registerNames) {
	u := uintType(r.Size)
	g.p("// %s_W builds a value to be written to the '%s' register.", rn.typ, rn.label)
	g.p("type %s_W struct{ bits %s }", rn.typ, u)
	g.p("")
	g.p("func (w *%s_W) Bits() %s { return w.bits }", rn.typ, u)
	g.p("")

	for i := range r.Fields {
		f := &r.Fields[i]
		if f.Reserved {
			continue
		}
		g.fieldSetter(r, rn, f)
	}
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
