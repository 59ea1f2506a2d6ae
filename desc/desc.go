// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package desc defines the register description model: sizes, access modes,
// locations, bit fields, enums, registers and the top-level description
// metadata. Values of these types are built by the validate package and are
// not modified afterwards.
package desc

import (
	"fmt"
	"strconv"
	"strings"
)

// SpecVersion is the version of the register description file format.
type SpecVersion int

const (
	// V01 is the only accepted file format version.
	V01 SpecVersion = iota + 1
)

const versionZeroOne = "0.1"

func ParseSpecVersion(s string) (SpecVersion, error) {
	if s == versionZeroOne {
		return V01, nil
	}
	return 0, fmt.Errorf("unknown register description specification version '%s'", s)
}

func (v SpecVersion) String() string {
	return versionZeroOne
}

// Extension is a named addressing profile that changes how register
// locations may be written in a description file.
type Extension int

const (
	ExtNone Extension = iota

	// ExtVGA allows address values to be written as hex templates with a
	// single '?' placeholder that expands to an index/data style port pair:
	// the write port is the base port and the read port is the base port
	// plus one (e.g. the attribute controller at 0x3C0/0x3C1). It also
	// allows registers to carry a parallel hardware slot ordinal.
	ExtVGA
)

const extensionVGA = "vga"

func ParseExtension(s string) (Extension, error) {
	if s == extensionVGA {
		return ExtVGA, nil
	}
	return ExtNone, fmt.Errorf("unknown extension '%s'", s)
}

func (e Extension) String() string {
	if e == ExtVGA {
		return extensionVGA
	}
	return ""
}

// ExpandAddress expands a hex address template containing exactly one '?'
// placeholder into a read address and a write address.
func (e Extension) ExpandAddress(template string) (read, write uint64, err error) {
	if e != ExtVGA {
		return 0, 0, fmt.Errorf("extension '%s' does not support address templates", e)
	}
	if strings.Count(template, "?") != 1 {
		return 0, 0, fmt.Errorf("address template '%s' must contain exactly one '?' placeholder", template)
	}
	read, err = parseHex(strings.Replace(template, "?", "1", 1))
	if err != nil {
		return 0, 0, err
	}
	write, err = parseHex(strings.Replace(template, "?", "0", 1))
	if err != nil {
		return 0, 0, err
	}
	return read, write, nil
}

func parseHex(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
}

// RegisterSize is a register width in bits.
type RegisterSize int

const (
	Size8  RegisterSize = 8
	Size16 RegisterSize = 16
	Size32 RegisterSize = 32
	Size64 RegisterSize = 64
)

func ParseRegisterSize(s string) (RegisterSize, error) {
	switch s {
	case "8":
		return Size8, nil
	case "16":
		return Size16, nil
	case "32":
		return Size32, nil
	case "64":
		return Size64, nil
	}
	return 0, fmt.Errorf("unsupported register size %s, supported register sizes are 8, 16, 32 and 64", s)
}

func (s RegisterSize) String() string {
	return strconv.Itoa(int(s))
}

// AccessMode tells which directions a register supports.
type AccessMode int

const (
	Read AccessMode = iota + 1
	Write
	ReadWrite
)

func ParseAccessMode(s string) (AccessMode, error) {
	switch s {
	case "r":
		return Read, nil
	case "w":
		return Write, nil
	case "rw":
		return ReadWrite, nil
	}
	return 0, fmt.Errorf("unsupported register access mode '%s', supported modes are 'r', 'w' or 'rw'", s)
}

func (m AccessMode) String() string {
	switch m {
	case Read:
		return "r"
	case Write:
		return "w"
	case ReadWrite:
		return "rw"
	}
	return "?"
}

func (m AccessMode) CanRead() bool  { return m == Read || m == ReadWrite }
func (m AccessMode) CanWrite() bool { return m == Write || m == ReadWrite }

// AddressSize selects the integer width of generated address constants:
// the native pointer width or an explicit register size.
type AddressSize struct {
	Native bool
	Size   RegisterSize
}

const addressSizeNative = "native"

func ParseAddressSize(s string) (AddressSize, error) {
	if s == addressSizeNative {
		return AddressSize{Native: true}, nil
	}
	size, err := ParseRegisterSize(s)
	if err != nil {
		return AddressSize{}, fmt.Errorf("unsupported address size '%s', supported sizes are native, 8, 16, 32 and 64", s)
	}
	return AddressSize{Size: size}, nil
}

func (a AddressSize) String() string {
	if a.Native {
		return addressSizeNative
	}
	return a.Size.String()
}

// LocationKind is the addressing mechanism used to reach a register.
type LocationKind int

const (
	Index LocationKind = iota + 1
	Relative
	Absolute
)

// Location is a resolved register location.
type Location struct {
	Kind  LocationKind
	Value uint64
}

// BitField is a sub-range of a register's bits: either reserved or a named
// function. Name and Description are empty for reserved fields.
type BitField struct {
	Range       BitRange
	Reserved    bool
	Name        string
	Description string
}

// EnumValue is one named raw value of a register enum.
type EnumValue struct {
	Value       uint64
	Name        string
	Description string
}

// Enum maps raw bit field values to symbolic names. Complete is set by the
// semantic checks when the values exhaust the bit range.
type Enum struct {
	Name        string
	Range       BitRange
	Description string
	Values      []EnumValue
	Complete    bool
}

// Register is a named, sized, addressable storage unit. ReadLoc and
// WriteLoc are equal unless a vga address template diverged them. Slot is
// the parallel hardware slot ordinal (vga extension only, nil otherwise).
type Register struct {
	Name        string
	Description string
	Access      AccessMode
	Size        RegisterSize
	ReadLoc     Location
	WriteLoc    Location
	Slot        *uint16
	Fields      []BitField
	Enums       []Enum
}

// ReservedFields reports whether any of the register's bit fields is
// reserved. Such registers get no generated write accessor because a
// zeroed raw value could be invalid for the reserved bits.
func (r *Register) ReservedFields() bool {
	for i := range r.Fields {
		if r.Fields[i].Reserved {
			return true
		}
	}
	return false
}

// Description is the top-level metadata table of a description file.
type Description struct {
	Name          string
	Description   string
	Version       SpecVersion
	Extension     Extension
	DefaultSize   RegisterSize // zero when the file sets no default
	DefaultAccess AccessMode   // zero when the file sets no default
	IndexSize     RegisterSize
	AddressSize   AddressSize
}

// Group is a named collection of registers. A file with a flat register
// list produces a single group with an empty name.
type Group struct {
	Name      string
	Registers []*Register
}

// File is a fully validated register description.
type File struct {
	Description *Description
	Groups      []*Group
}
