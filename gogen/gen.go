// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gogen generates a type-safe Go register-access API from a
// validated register description. The generated file contains a capability
// prelude (group-tagged I/O interfaces), one zero-size marker type per
// register group, and per-register accessors whose generic constraints
// spell out exactly the capabilities a backend must provide, so a missing
// capability or a backend wired for the wrong group is a compile error.
//
// Generate must only be called with a model built by the validate package;
// impossible states found during generation are programming errors and
// panic.
package gogen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/regdesc/tools/desc"
)

// Generate renders the model as a single Go source file with the given
// package name. The caller is responsible for formatting and writing it.
func Generate(f *desc.File, pkg string) string {
	g := &generator{d: f.Description}
	g.header(f, pkg)
	g.prelude()
	for _, group := range f.Groups {
		g.group(group)
	}
	return g.b.String()
}

type generator struct {
	b bytes.Buffer
	d *desc.Description
}

func (g *generator) p(format string, args ...any) {
	fmt.Fprintf(&g.b, format+"\n", args...)
}

func (g *generator) header(f *desc.File, pkg string) {
	g.p("// Code generated by regdesc from register description '%s'. DO NOT EDIT.", g.d.Name)
	g.p("")
	g.p("// Package %s provides access to the registers of the '%s'", pkg, g.d.Name)
	g.p("// register description.")
	if g.d.Description != "" {
		g.p("//")
		g.p("// %s", g.d.Description)
	}
	g.p("package %s", pkg)
	g.p("")
	if usesFmt(f) {
		g.p(`import "fmt"`)
		g.p("")
	}
}

// usesFmt reports whether the generated file needs the fmt import: R
// wrappers and enum types carry fmt-based String methods.
func usesFmt(f *desc.File) bool {
	for _, group := range f.Groups {
		for _, r := range group.Registers {
			if r.Access.CanRead() || len(r.Enums) != 0 {
				return true
			}
		}
	}
	return false
}

// indexType is the Go type of generated index location values.
func (g *generator) indexType() string {
	return uintType(g.d.IndexSize)
}

// addrType is the Go type of generated address location values.
func (g *generator) addrType() string {
	if g.d.AddressSize.Native {
		return "uintptr"
	}
	return uintType(g.d.AddressSize.Size)
}

func uintType(s desc.RegisterSize) string {
	return fmt.Sprintf("uint%d", int(s))
}

var (
	kinds = []desc.LocationKind{desc.Index, desc.Relative, desc.Absolute}
	sizes = []desc.RegisterSize{desc.Size8, desc.Size16, desc.Size32, desc.Size64}
)

func kindName(k desc.LocationKind) string {
	switch k {
	case desc.Index:
		return "Index"
	case desc.Relative:
		return "Rel"
	case desc.Absolute:
		return "Abs"
	}
	panic(fmt.Sprintf("gogen: unknown location kind %d", k))
}

// locParam is the parameter name and type of the location argument of an
// I/O capability method.
func (g *generator) locParam(k desc.LocationKind) (name, typ string) {
	if k == desc.Index {
		return "index", g.indexType()
	}
	return "addr", g.addrType()
}

// prelude emits the I/O capability matrix and the location fact
// interfaces. The matrix covers three addressing kinds, two directions and
// four register widths; the width is encoded in the method name because a
// single Go constraint cannot embed two methods sharing a name with
// different signatures.
func (g *generator) prelude() {
	g.p("// Every I/O capability interface is parameterized by a group marker type,")
	g.p("// so a backend wired for one register group cannot be used to access the")
	g.p("// registers of another group.")
	g.p("type (")
	for _, k := range kinds {
		arg, typ := g.locParam(k)
		for _, s := range sizes {
			u := uintType(s)
			g.p("\t%sR%d[G any] interface{ Read%s%d(g G, %s %s) %s }",
				kindName(k), int(s), kindName(k), int(s), arg, typ, u)
			g.p("\t%sW%d[G any] interface{ Write%s%d(g G, %s %s, v %s) }",
				kindName(k), int(s), kindName(k), int(s), arg, typ, u)
		}
	}
	g.p(")")
	g.p("")
	g.p("// Location facts: every register accessor implements the interfaces")
	g.p("// matching the addressing kind and directions it supports.")
	g.p("type (")
	g.p("\tLocationIndexR interface{ IndexR() %s }", g.indexType())
	g.p("\tLocationIndexW interface{ IndexW() %s }", g.indexType())
	g.p("\tLocationRelR   interface{ RelAddrR() %s }", g.addrType())
	g.p("\tLocationRelW   interface{ RelAddrW() %s }", g.addrType())
	g.p("\tLocationAbsR   interface{ AbsAddrR() %s }", g.addrType())
	g.p("\tLocationAbsW   interface{ AbsAddrW() %s }", g.addrType())
	g.p(")")
	g.p("")
}

// names derived from a group definition. The empty name denotes the
// implicit group of a flat register list.
type groupNames struct {
	marker  string // ControlGroup
	regsTyp string // ControlRegisters
	ioTyp   string // controlIO
	prefix  string // CONTROL_
	label   string // control
}

func groupIdents(group *desc.Group) groupNames {
	if group.Name == "" {
		return groupNames{
			marker:  "RegisterGroup",
			regsTyp: "Registers",
			ioTyp:   "registerIO",
			label:   "register",
		}
	}
	return groupNames{
		marker:  titleCase(group.Name) + "Group",
		regsTyp: titleCase(group.Name) + "Registers",
		ioTyp:   camelCase(group.Name) + "IO",
		prefix:  constCase(group.Name) + "_",
		label:   group.Name,
	}
}

// capability returns the capability interface instantiation a register
// needs for one direction, e.g. "AbsR8[ControlGroup]".
func capability(r *desc.Register, loc desc.Location, dir string, marker string) string {
	return fmt.Sprintf("%s%s%d[%s]", kindName(loc.Kind), dir, int(r.Size), marker)
}

func registerCaps(r *desc.Register, marker string) []string {
	var caps []string
	if r.Access.CanRead() {
		caps = append(caps, capability(r, r.ReadLoc, "R", marker))
	}
	if needsW(r) {
		caps = append(caps, capability(r, r.WriteLoc, "W", marker))
	}
	return caps
}

func (g *generator) group(group *desc.Group) {
	gn := groupIdents(group)

	g.p("// %s tags I/O backends wired to the '%s' register group.", gn.marker, gn.label)
	g.p("type %s struct{}", gn.marker)
	g.p("")

	// Union of the capabilities of every register, deduplicated and kept
	// in a stable order.
	var caps []string
	seen := make(map[string]bool)
	for _, r := range group.Registers {
		for _, c := range registerCaps(r, gn.marker) {
			if !seen[c] {
				seen[c] = true
				caps = append(caps, c)
			}
		}
	}

	g.p("// %s is the full I/O capability set required by the '%s' group.", gn.ioTyp, gn.label)
	g.p("type %s interface {", gn.ioTyp)
	for _, c := range caps {
		g.p("\t%s", c)
	}
	g.p("}")
	g.p("")

	g.p("// %s provides access to every register of the '%s' group.", gn.regsTyp, gn.label)
	g.p("type %s[T %s] struct{ io T }", gn.regsTyp, gn.ioTyp)
	g.p("")
	g.p("func New%s[T %s](io T) *%s[T] {", gn.regsTyp, gn.ioTyp, gn.regsTyp)
	g.p("\treturn &%s[T]{io: io}", gn.regsTyp)
	g.p("}")
	g.p("")

	for _, r := range group.Registers {
		rn := registerIdents(r, gn)
		if r.Description != "" {
			g.p("// %s: %s", rn.getter, joinDoc(r.Description))
		}
		g.p("func (g *%s[T]) %s() *%s[T] {", gn.regsTyp, rn.getter, rn.typ)
		g.p("\treturn &%s[T]{io: g.io}", rn.typ)
		g.p("}")
		g.p("")
	}

	g.p("// DebugRegisters reads every readable register of the group and passes")
	g.p("// its decoded form to f.")
	g.p("func (g *%s[T]) DebugRegisters(f func(v string)) {", gn.regsTyp)
	for _, r := range group.Registers {
		if r.Access.CanRead() {
			rn := registerIdents(r, gn)
			g.p("\tf(g.%s().Read().String())", rn.getter)
		}
	}
	g.p("}")
	g.p("")

	for _, r := range group.Registers {
		g.register(r, gn)
	}
}

// maskOf computes the register mask of a bit range. The model is
// validated, so a range too wide to have a mask is a programming error.
func maskOf(r desc.BitRange) uint64 {
	max, err := r.MaxValue()
	if err != nil {
		panic("gogen: " + err.Error())
	}
	return max << r.LSB
}

func hex(v uint64) string {
	return fmt.Sprintf("%#x", v)
}

// joinDoc folds a description into a single comment line.
func joinDoc(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
