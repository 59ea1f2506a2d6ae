// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validate turns an untyped register description tree into the desc
// model, or fails with the full ordered list of diagnostics. Validation is
// accumulating: a malformed bit field, enum or register is skipped while
// its siblings continue to be checked. The only short-circuit is a broken
// register_description table, because without it no defaults exist to
// validate registers against.
package validate

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/regdesc/tools/desc"
)

const (
	registerDescriptionKey = "register_description"
	registerKey            = "register"
)

// CheckRoot validates the parsed-but-untyped root tree of a description
// file. It returns the built model only when no diagnostic was produced;
// otherwise the model is nil and the diagnostics carry every problem found.
func CheckRoot(root map[string]any) (*desc.File, []Diagnostic) {
	col := new(Collector)
	v := newTableValidator(root, Root, col)
	defer v.close()

	v.checkUnknownKeys(registerDescriptionKey, registerKey)

	rdTable, ok := v.reqTable(registerDescriptionKey)
	if !ok {
		return nil, col.Diagnostics()
	}
	rd, ok := checkDescription(rdTable, col)
	if !ok {
		return nil, col.Diagnostics()
	}

	file := &desc.File{Description: rd}
	if raw, present := root[registerKey]; present {
		switch x := raw.(type) {
		case []any, []map[string]any:
			file.Groups = append(file.Groups, &desc.Group{
				Registers: checkRegisterArray(v, raw, rd, col),
			})
		case map[string]any:
			names := maps.Keys(x)
			slices.Sort(names)
			for _, name := range names {
				group := x[name]
				switch group.(type) {
				case []any, []map[string]any:
					file.Groups = append(file.Groups, &desc.Group{
						Name:      name,
						Registers: checkRegisterArray(v, group, rd, col),
					})
				default:
					v.valueErr(registerKey, "validating register group '%s' failed: expected an array, found %s",
						name, describe(group))
				}
			}
		default:
			v.valueErr(registerKey, "expected a table or an array, found: %s", describe(raw))
		}
	}

	if diags := col.Diagnostics(); len(diags) != 0 {
		return nil, diags
	}
	return file, nil
}

func checkRegisterArray(v *tableValidator, raw any, rd *desc.Description, col *Collector) []*desc.Register {
	var regs []*desc.Register
	seen := make(map[string]bool)
	one := func(item any) {
		t, isTable := item.(map[string]any)
		if !isTable {
			v.valueErr(registerKey, "expected an array of tables, found: %s", describe(item))
			return
		}
		r, ok := checkRegister(t, rd, col)
		if !ok {
			return
		}
		if seen[r.Name] {
			col.add(Diagnostic{
				Kind: ConstraintError, Table: Register,
				Message: fmt.Sprintf("register name '%s' is defined more than once in the same group", r.Name),
			})
			return
		}
		seen[r.Name] = true
		regs = append(regs, r)
	}
	switch x := raw.(type) {
	case []map[string]any:
		for _, t := range x {
			one(t)
		}
	case []any:
		for _, item := range x {
			one(item)
		}
	}
	return regs
}
