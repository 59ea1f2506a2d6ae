// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validate

import (
	"fmt"

	"github.com/regdesc/tools/desc"
)

const (
	accessKey          = "access"
	sizeKey            = "size"
	indexKey           = "index"
	absoluteAddressKey = "absolute_address"
	relativeAddressKey = "relative_address"
	bitFieldsKey       = "bit_fields"
	enumsKey           = "enum"
	bitKey             = "bit"
	reservedKey        = "reserved"
	valuesKey          = "values"
	valueKey           = "value"
)

func checkRegister(table map[string]any, rd *desc.Description, col *Collector) (*desc.Register, bool) {
	v := newTableValidator(table, Register, col)
	defer v.close()

	name, ok := v.reqName(nameKey)
	if !ok {
		return nil, false
	}
	v.push(fmt.Sprintf("register '%s'", name))

	v.checkUnknownKeys(
		nameKey, descriptionKey, accessKey, sizeKey, indexKey,
		absoluteAddressKey, relativeAddressKey, bitFieldsKey, enumsKey,
	)

	descText, _, ok := v.optText(descriptionKey)
	if !ok {
		return nil, false
	}

	readLoc, writeLoc, slot, ok := checkLocation(v, rd)
	if !ok {
		return nil, false
	}

	size, sizePresent, ok := optParsed(v, sizeKey, desc.ParseRegisterSize)
	if !ok {
		return nil, false
	}
	if !sizePresent {
		size = rd.DefaultSize
	}
	if size == 0 {
		v.constraintErr("register size is undefined")
		return nil, false
	}

	access, accessPresent, ok := optParsed(v, accessKey, desc.ParseAccessMode)
	if !ok {
		return nil, false
	}
	if !accessPresent {
		access = rd.DefaultAccess
	}
	if access == 0 {
		v.constraintErr("register access mode is undefined")
		return nil, false
	}

	fieldTables, ok := v.reqTables(bitFieldsKey)
	if !ok {
		return nil, false
	}
	var fields []desc.BitField
	for _, t := range fieldTables {
		if f, fok := checkBitField(t, col); fok {
			fields = append(fields, f)
		}
	}

	enumTables, _, ok := v.optTables(enumsKey)
	if !ok {
		return nil, false
	}
	var enums []desc.Enum
	for _, t := range enumTables {
		if e, eok := checkEnum(t, col); eok {
			enums = append(enums, e)
		}
	}

	r := &desc.Register{
		Name:        name,
		Description: descText,
		Access:      access,
		Size:        size,
		ReadLoc:     readLoc,
		WriteLoc:    writeLoc,
		Slot:        slot,
		Fields:      fields,
		Enums:       enums,
	}

	checkFunctions(r, v)
	checkEnums(r, v)

	return r, true
}

// checkLocation resolves the register location from the index,
// absolute_address and relative_address keys. Exactly one location key must
// be present. Under the vga extension an address key may carry a '?'
// template diverging the read and write addresses, and a register located
// by address may also carry 'index' as its parallel slot ordinal.
func checkLocation(v *tableValidator, rd *desc.Description) (read, write desc.Location, slot *uint16, ok bool) {
	absR, absW, absPresent, ok := addressValue(v, rd, absoluteAddressKey)
	if !ok {
		return desc.Location{}, desc.Location{}, nil, false
	}
	relR, relW, relPresent, ok := addressValue(v, rd, relativeAddressKey)
	if !ok {
		return desc.Location{}, desc.Location{}, nil, false
	}
	idx, idxPresent, ok := v.optU64(indexKey)
	if !ok {
		return desc.Location{}, desc.Location{}, nil, false
	}

	ordinal := rd.Extension == desc.ExtVGA && (absPresent || relPresent) && idxPresent
	locations := 0
	for _, present := range []bool{absPresent, relPresent, idxPresent && !ordinal} {
		if present {
			locations++
		}
	}
	switch {
	case locations == 0:
		v.constraintErr("register location field '%s', '%s', or '%s' is required",
			absoluteAddressKey, relativeAddressKey, indexKey)
		return desc.Location{}, desc.Location{}, nil, false
	case locations > 1:
		v.constraintErr("register location field count error: only one location field is supported")
		return desc.Location{}, desc.Location{}, nil, false
	}

	if ordinal {
		s, _, sok := v.optU16(indexKey)
		if !sok {
			return desc.Location{}, desc.Location{}, nil, false
		}
		slot = &s
	}

	switch {
	case absPresent:
		read = desc.Location{Kind: desc.Absolute, Value: absR}
		write = desc.Location{Kind: desc.Absolute, Value: absW}
	case relPresent:
		read = desc.Location{Kind: desc.Relative, Value: relR}
		write = desc.Location{Kind: desc.Relative, Value: relW}
	default:
		read = desc.Location{Kind: desc.Index, Value: idx}
		write = read
	}
	return read, write, slot, true
}

// addressValue reads an address key holding either a non-negative integer
// (read and write addresses are the same) or, under an extension, a hex
// template string.
func addressValue(v *tableValidator, rd *desc.Description, key string) (read, write uint64, present, ok bool) {
	raw, here := v.table[key]
	if !here {
		return 0, 0, false, true
	}
	switch x := raw.(type) {
	case int64:
		if x < 0 {
			v.valueErr(key, "negative value '%d'", x)
			return 0, 0, true, false
		}
		return uint64(x), uint64(x), true, true
	case string:
		if rd.Extension == desc.ExtNone {
			v.valueErr(key, "address templates are only supported under an extension")
			return 0, 0, true, false
		}
		read, write, err := rd.Extension.ExpandAddress(x)
		if err != nil {
			v.valueErr(key, "%s", err)
			return 0, 0, true, false
		}
		return read, write, true, true
	}
	v.valueErr(key, "expected an integer or an address template string, found: %s", describe(raw))
	return 0, 0, true, false
}

func checkBitField(table map[string]any, col *Collector) (desc.BitField, bool) {
	v := newTableValidator(table, BitField, col)
	defer v.close()

	bit, ok := reqParsed(v, bitKey, desc.ParseBitRange)
	if !ok {
		return desc.BitField{}, false
	}
	v.push(fmt.Sprintf("bit field '%s'", bit))

	v.checkUnknownKeys(bitKey, nameKey, reservedKey, descriptionKey)

	reserved, _, ok := v.optBool(reservedKey)
	if !ok {
		return desc.BitField{}, false
	}
	name, namePresent, ok := v.optName(nameKey)
	if !ok {
		return desc.BitField{}, false
	}
	descText, descPresent, ok := v.optText(descriptionKey)
	if !ok {
		return desc.BitField{}, false
	}

	if reserved {
		if namePresent {
			v.constraintErr("key '%s' is not allowed when the bit field is marked as reserved", nameKey)
			return desc.BitField{}, false
		}
		if descPresent {
			v.constraintErr("key '%s' is not allowed when the bit field is marked as reserved", descriptionKey)
			return desc.BitField{}, false
		}
		return desc.BitField{Range: bit, Reserved: true}, true
	}
	if !namePresent {
		v.missingKey(nameKey)
		return desc.BitField{}, false
	}
	return desc.BitField{Range: bit, Name: name, Description: descText}, true
}

func checkEnum(table map[string]any, col *Collector) (desc.Enum, bool) {
	v := newTableValidator(table, Enum, col)
	defer v.close()

	name, ok := v.reqName(nameKey)
	if !ok {
		return desc.Enum{}, false
	}
	v.push(fmt.Sprintf("enum '%s'", name))

	v.checkUnknownKeys(nameKey, bitKey, descriptionKey, valuesKey)

	bit, ok := reqParsed(v, bitKey, desc.ParseBitRange)
	if !ok {
		return desc.Enum{}, false
	}
	descText, _, ok := v.optText(descriptionKey)
	if !ok {
		return desc.Enum{}, false
	}

	valueTables, ok := v.reqTables(valuesKey)
	if !ok {
		return desc.Enum{}, false
	}
	var values []desc.EnumValue
	for _, t := range valueTables {
		if ev, evok := checkEnumValue(t, col); evok {
			values = append(values, ev)
		}
	}

	return desc.Enum{
		Name:        name,
		Range:       bit,
		Description: descText,
		Values:      values,
	}, true
}

func checkEnumValue(table map[string]any, col *Collector) (desc.EnumValue, bool) {
	v := newTableValidator(table, EnumValue, col)
	defer v.close()

	name, ok := v.reqName(nameKey)
	if !ok {
		return desc.EnumValue{}, false
	}
	v.push(fmt.Sprintf("enum value '%s'", name))

	v.checkUnknownKeys(valueKey, nameKey, descriptionKey)

	value, ok := v.reqU64(valueKey)
	if !ok {
		return desc.EnumValue{}, false
	}
	descText, _, ok := v.optText(descriptionKey)
	if !ok {
		return desc.EnumValue{}, false
	}

	return desc.EnumValue{Value: value, Name: name, Description: descText}, true
}
