// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/regdesc/tools/desc"
)

func doc(regs any) map[string]any {
	return map[string]any{
		"register_description": map[string]any{
			"name":    "TEST",
			"version": "0.1",
		},
		"register": regs,
	}
}

func statusReg() map[string]any {
	return map[string]any{
		"name":             "STATUS",
		"size":             "8",
		"access":           "r",
		"absolute_address": int64(0x10),
		"bit_fields": []any{
			map[string]any{"bit": "0", "name": "ready"},
			map[string]any{"bit": "7:1", "reserved": true},
		},
	}
}

func mustCheck(t *testing.T, root map[string]any) *desc.File {
	t.Helper()
	file, diags := CheckRoot(root)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", Render(diags))
	}
	if file == nil {
		t.Fatal("CheckRoot returned no model")
	}
	return file
}

func oneConstraintErr(t *testing.T, root map[string]any, want string) Diagnostic {
	t.Helper()
	file, diags := CheckRoot(root)
	if file != nil {
		t.Fatal("CheckRoot returned a model despite diagnostics")
	}
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1:\n%s", len(diags), Render(diags))
	}
	d := diags[0]
	if d.Kind != ConstraintError {
		t.Fatalf("diagnostic kind %d, want ConstraintError", d.Kind)
	}
	if d.Message != want {
		t.Fatalf("message %q, want %q", d.Message, want)
	}
	return d
}

func TestStatusScenario(t *testing.T) {
	file := mustCheck(t, doc([]any{statusReg()}))

	if n := len(file.Groups); n != 1 {
		t.Fatalf("got %d groups", n)
	}
	g := file.Groups[0]
	if g.Name != "" {
		t.Fatalf("flat register list produced named group %q", g.Name)
	}
	if n := len(g.Registers); n != 1 {
		t.Fatalf("got %d registers", n)
	}
	r := g.Registers[0]
	if r.Name != "STATUS" || r.Size != desc.Size8 || r.Access != desc.Read {
		t.Fatalf("register %+v", r)
	}
	want := desc.Location{Kind: desc.Absolute, Value: 0x10}
	if r.ReadLoc != want || r.WriteLoc != want {
		t.Fatalf("locations %+v %+v", r.ReadLoc, r.WriteLoc)
	}
	if len(r.Fields) != 2 {
		t.Fatalf("got %d bit fields", len(r.Fields))
	}
	f0, f1 := r.Fields[0], r.Fields[1]
	if f0.Name != "ready" || f0.Reserved || f0.Range != desc.NewBitRange(0, 0) {
		t.Fatalf("field 0: %+v", f0)
	}
	if !f1.Reserved || f1.Name != "" || f1.Range != desc.NewBitRange(7, 1) {
		t.Fatalf("field 1: %+v", f1)
	}
}

func TestIdempotence(t *testing.T) {
	a := mustCheck(t, doc([]any{statusReg()}))
	b := mustCheck(t, doc([]any{statusReg()}))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("validating the same document twice produced different models")
	}
}

func TestOverlapReportedOnce(t *testing.T) {
	reg := statusReg()
	reg["bit_fields"] = []any{
		map[string]any{"bit": "3:0", "name": "a"},
		map[string]any{"bit": "4:1", "name": "b"},
		map[string]any{"bit": "7:5", "reserved": true},
	}
	d := oneConstraintErr(t, doc([]any{reg}),
		"bit field range '4:1' overlaps with another bit field '3:0'")
	if d.Context != "\n\t--> register 'STATUS'" {
		t.Fatalf("context %q", d.Context)
	}
}

func TestFieldOutsideRegisterBounds(t *testing.T) {
	reg := statusReg()
	reg["bit_fields"] = []any{
		map[string]any{"bit": "7:0", "name": "a"},
		map[string]any{"bit": "9:8", "name": "b"},
	}
	oneConstraintErr(t, doc([]any{reg}),
		"bit field range '9:8' is not inside register bounds, register size: 8")
}

func TestUndefinedBits(t *testing.T) {
	tests := []struct {
		fields []any
		want   string
	}{
		{
			fields: []any{map[string]any{"bit": "0", "name": "ready"}},
			want:   "some register bits are undefined, '7:1'",
		},
		{
			fields: []any{
				map[string]any{"bit": "7:4", "name": "a"},
				map[string]any{"bit": "2:0", "name": "b"},
			},
			want: "register bit '3' is undefined",
		},
		{
			fields: []any{map[string]any{"bit": "4", "name": "mid"}},
			want:   "some register bits are undefined, '3:0', '7:5'",
		},
	}
	for _, tc := range tests {
		reg := statusReg()
		reg["bit_fields"] = tc.fields
		oneConstraintErr(t, doc([]any{reg}), tc.want)
	}
}

func TestMultiErrorAccumulation(t *testing.T) {
	bad := statusReg()
	bad["foo"] = int64(1)
	bad["bit_fields"] = []any{
		map[string]any{"bit": "3:0", "name": "a"},
		map[string]any{"bit": "4:1", "name": "b"},
		map[string]any{"bit": "7:5", "reserved": true},
	}
	sibling := statusReg()
	sibling["name"] = "CONTROL"

	file, diags := CheckRoot(doc([]any{bad, sibling}))
	if file != nil {
		t.Fatal("CheckRoot returned a model despite diagnostics")
	}
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2:\n%s", len(diags), Render(diags))
	}
	if diags[0].Kind != UnknownKey || diags[0].Key != "foo" {
		t.Fatalf("diags[0] = %+v", diags[0])
	}
	if diags[1].Kind != ConstraintError ||
		diags[1].Message != "bit field range '4:1' overlaps with another bit field '3:0'" {
		t.Fatalf("diags[1] = %+v", diags[1])
	}
	for _, d := range diags {
		if strings.Contains(d.Context, "CONTROL") {
			t.Fatalf("sibling register affected: %+v", d)
		}
	}
}

func enumReg(values []any) map[string]any {
	reg := statusReg()
	reg["bit_fields"] = []any{
		map[string]any{"bit": "1:0", "name": "mode"},
		map[string]any{"bit": "7:2", "reserved": true},
	}
	reg["enum"] = []any{
		map[string]any{"name": "mode", "bit": "1:0", "values": values},
	}
	return reg
}

func TestEnumCompleteness(t *testing.T) {
	all := []any{
		map[string]any{"value": int64(0), "name": "off"},
		map[string]any{"value": int64(1), "name": "on"},
		map[string]any{"value": int64(2), "name": "slow"},
		map[string]any{"value": int64(3), "name": "fast"},
	}
	file := mustCheck(t, doc([]any{enumReg(all)}))
	e := file.Groups[0].Registers[0].Enums[0]
	if !e.Complete {
		t.Fatal("enum with all 4 values is not complete")
	}

	file = mustCheck(t, doc([]any{enumReg(all[:3])}))
	e = file.Groups[0].Registers[0].Enums[0]
	if e.Complete {
		t.Fatal("enum with 3 of 4 values is complete")
	}
}

func TestEnumNoMatchingField(t *testing.T) {
	reg := enumReg([]any{map[string]any{"value": int64(0), "name": "off"}})
	reg["enum"] = []any{
		map[string]any{"name": "mode", "bit": "3:2",
			"values": []any{map[string]any{"value": int64(0), "name": "off"}}},
	}
	oneConstraintErr(t, doc([]any{reg}),
		"no matching bit field range found for enum 'mode'")
}

func TestEnumOnReservedField(t *testing.T) {
	reg := enumReg(nil)
	reg["enum"] = []any{
		map[string]any{"name": "spare", "bit": "7:2",
			"values": []any{map[string]any{"value": int64(0), "name": "off"}}},
	}
	oneConstraintErr(t, doc([]any{reg}), "enum 'spare' bit range is reserved")
}

func TestEnumDuplicateRange(t *testing.T) {
	values := []any{map[string]any{"value": int64(0), "name": "off"}}
	reg := enumReg(values)
	reg["enum"] = []any{
		map[string]any{"name": "e1", "bit": "1:0", "values": values},
		map[string]any{"name": "e2", "bit": "1:0", "values": values},
	}
	oneConstraintErr(t, doc([]any{reg}),
		"same bit range '1:0' is defined for enums 'e2' and 'e1'")
}

func TestEnumValueTooLarge(t *testing.T) {
	reg := enumReg([]any{map[string]any{"value": int64(4), "name": "big"}})
	oneConstraintErr(t, doc([]any{reg}),
		"enum value 'big' with value '4' for enum 'mode' is larger than enum max value '3'")
}

func TestEnumDuplicateValues(t *testing.T) {
	reg := enumReg([]any{
		map[string]any{"value": int64(1), "name": "a"},
		map[string]any{"value": int64(1), "name": "b"},
	})
	oneConstraintErr(t, doc([]any{reg}),
		"enum values 'b' and 'a' have the same value '1'")
}

func TestMissingDescriptionShortCircuits(t *testing.T) {
	root := map[string]any{"register": []any{statusReg()}}
	file, diags := CheckRoot(root)
	if file != nil {
		t.Fatal("CheckRoot returned a model")
	}
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1:\n%s", len(diags), Render(diags))
	}
	d := diags[0]
	if d.Kind != MissingKey || d.Key != "register_description" || d.Table != Root {
		t.Fatalf("diagnostic %+v", d)
	}
}

func TestRegisterGroups(t *testing.T) {
	ctrl := statusReg()
	ctrl["name"] = "CTRL"
	file := mustCheck(t, doc(map[string]any{
		"gfx":  []any{statusReg()},
		"crtc": []any{ctrl},
	}))
	if len(file.Groups) != 2 {
		t.Fatalf("got %d groups", len(file.Groups))
	}
	// Groups come out in name order.
	if file.Groups[0].Name != "crtc" || file.Groups[1].Name != "gfx" {
		t.Fatalf("group order %q, %q", file.Groups[0].Name, file.Groups[1].Name)
	}
	if file.Groups[0].Registers[0].Name != "CTRL" {
		t.Fatalf("register %q in group crtc", file.Groups[0].Registers[0].Name)
	}
}

func TestBadGroupValue(t *testing.T) {
	file, diags := CheckRoot(doc(map[string]any{"gfx": "oops"}))
	if file != nil || len(diags) != 1 {
		t.Fatalf("file=%v diags=%v", file, diags)
	}
	want := "validating register group 'gfx' failed: expected an array, found string 'oops'"
	if diags[0].Kind != ValueError || diags[0].Message != want {
		t.Fatalf("diagnostic %+v", diags[0])
	}
}

func TestBadRegisterValue(t *testing.T) {
	_, diags := CheckRoot(doc(int64(5)))
	if len(diags) != 1 || diags[0].Message != "expected a table or an array, found: integer 5" {
		t.Fatalf("diagnostics %+v", diags)
	}
}

func TestDuplicateRegisterNames(t *testing.T) {
	oneConstraintErr(t, doc([]any{statusReg(), statusReg()}),
		"register name 'STATUS' is defined more than once in the same group")
}

func TestLocationRequired(t *testing.T) {
	reg := statusReg()
	delete(reg, "absolute_address")
	oneConstraintErr(t, doc([]any{reg}),
		"register location field 'absolute_address', 'relative_address', or 'index' is required")
}

func TestLocationCount(t *testing.T) {
	reg := statusReg()
	reg["relative_address"] = int64(4)
	oneConstraintErr(t, doc([]any{reg}),
		"register location field count error: only one location field is supported")
}

func TestNegativeAddress(t *testing.T) {
	reg := statusReg()
	reg["absolute_address"] = int64(-1)
	_, diags := CheckRoot(doc([]any{reg}))
	if len(diags) != 1 || diags[0].Kind != ValueError ||
		diags[0].Message != "negative value '-1'" {
		t.Fatalf("diagnostics %+v", diags)
	}
}

func vgaDoc(regs any) map[string]any {
	root := doc(regs)
	root["register_description"].(map[string]any)["extension"] = "vga"
	return root
}

func TestAddressTemplate(t *testing.T) {
	reg := statusReg()
	reg["absolute_address"] = "0x3C?"
	file := mustCheck(t, vgaDoc([]any{reg}))
	r := file.Groups[0].Registers[0]
	if r.ReadLoc != (desc.Location{Kind: desc.Absolute, Value: 0x3c1}) {
		t.Fatalf("read location %+v", r.ReadLoc)
	}
	if r.WriteLoc != (desc.Location{Kind: desc.Absolute, Value: 0x3c0}) {
		t.Fatalf("write location %+v", r.WriteLoc)
	}
}

func TestAddressTemplateNeedsExtension(t *testing.T) {
	reg := statusReg()
	reg["absolute_address"] = "0x3C?"
	_, diags := CheckRoot(doc([]any{reg}))
	if len(diags) != 1 || diags[0].Kind != ValueError ||
		diags[0].Message != "address templates are only supported under an extension" {
		t.Fatalf("diagnostics %+v", diags)
	}
}

func TestSlotOrdinal(t *testing.T) {
	reg := statusReg()
	reg["index"] = int64(2)
	file := mustCheck(t, vgaDoc([]any{reg}))
	r := file.Groups[0].Registers[0]
	if r.Slot == nil || *r.Slot != 2 {
		t.Fatalf("slot %v", r.Slot)
	}
	if r.ReadLoc.Kind != desc.Absolute {
		t.Fatalf("location kind %v", r.ReadLoc.Kind)
	}
}

func TestIndexLocation(t *testing.T) {
	reg := statusReg()
	delete(reg, "absolute_address")
	reg["index"] = int64(7)
	file := mustCheck(t, doc([]any{reg}))
	r := file.Groups[0].Registers[0]
	if r.ReadLoc != (desc.Location{Kind: desc.Index, Value: 7}) || r.ReadLoc != r.WriteLoc {
		t.Fatalf("locations %+v %+v", r.ReadLoc, r.WriteLoc)
	}
	if r.Slot != nil {
		t.Fatalf("slot %v", r.Slot)
	}
}

func TestReservedFieldRejectsName(t *testing.T) {
	reg := statusReg()
	reg["bit_fields"] = []any{
		map[string]any{"bit": "7:0", "reserved": true, "name": "x"},
	}
	_, diags := CheckRoot(doc([]any{reg}))
	// The malformed field is dropped, so its bits are also undefined.
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics:\n%s", len(diags), Render(diags))
	}
	d := diags[0]
	if d.Message != "key 'name' is not allowed when the bit field is marked as reserved" {
		t.Fatalf("message %q", d.Message)
	}
	if d.Context != "\n\t--> register 'STATUS'\n\t--> bit field '7:0'" {
		t.Fatalf("context %q", d.Context)
	}
	if diags[1].Message != "some register bits are undefined, '7:0'" {
		t.Fatalf("diags[1] = %+v", diags[1])
	}
}

func TestNormalFieldRequiresName(t *testing.T) {
	reg := statusReg()
	reg["bit_fields"] = []any{map[string]any{"bit": "7:0"}}
	_, diags := CheckRoot(doc([]any{reg}))
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics:\n%s", len(diags), Render(diags))
	}
	if diags[0].Kind != MissingKey || diags[0].Key != "name" || diags[0].Table != BitField {
		t.Fatalf("diags[0] = %+v", diags[0])
	}
}

func TestDefaultsFromDescription(t *testing.T) {
	root := doc([]any{statusReg()})
	rd := root["register_description"].(map[string]any)
	rd["default_register_size"] = "8"
	rd["default_register_access"] = "rw"
	reg := root["register"].([]any)[0].(map[string]any)
	delete(reg, "size")
	delete(reg, "access")

	file := mustCheck(t, root)
	r := file.Groups[0].Registers[0]
	if r.Size != desc.Size8 || r.Access != desc.ReadWrite {
		t.Fatalf("size=%v access=%v", r.Size, r.Access)
	}
}

func TestUndefinedSize(t *testing.T) {
	reg := statusReg()
	delete(reg, "size")
	oneConstraintErr(t, doc([]any{reg}), "register size is undefined")
}

func TestWrongValueType(t *testing.T) {
	reg := statusReg()
	reg["size"] = int64(8)
	_, diags := CheckRoot(doc([]any{reg}))
	if len(diags) != 1 || diags[0].Kind != ValueError || diags[0].Key != "size" ||
		diags[0].Message != "expected a string, found: integer 8" {
		t.Fatalf("diagnostics %+v", diags)
	}
}
