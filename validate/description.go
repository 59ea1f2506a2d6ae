// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validate

import (
	"fmt"

	"github.com/regdesc/tools/desc"
)

const (
	nameKey          = "name"
	versionKey       = "version"
	descriptionKey   = "description"
	extensionKey     = "extension"
	defaultSizeKey   = "default_register_size"
	defaultAccessKey = "default_register_access"
	indexSizeKey     = "index_size"
	addressSizeKey   = "address_size"
)

func checkDescription(table map[string]any, col *Collector) (*desc.Description, bool) {
	v := newTableValidator(table, RegisterDescription, col)
	defer v.close()
	v.checkUnknownKeys(
		nameKey, versionKey, descriptionKey, extensionKey,
		defaultSizeKey, defaultAccessKey, indexSizeKey, addressSizeKey,
	)

	name, ok := v.reqName(nameKey)
	if !ok {
		return nil, false
	}
	v.push(fmt.Sprintf("register description '%s'", name))

	version, ok := reqParsed(v, versionKey, desc.ParseSpecVersion)
	if !ok {
		return nil, false
	}
	descText, _, ok := v.optText(descriptionKey)
	if !ok {
		return nil, false
	}
	ext, _, ok := optParsed(v, extensionKey, desc.ParseExtension)
	if !ok {
		return nil, false
	}
	defaultSize, _, ok := optParsed(v, defaultSizeKey, desc.ParseRegisterSize)
	if !ok {
		return nil, false
	}
	defaultAccess, _, ok := optParsed(v, defaultAccessKey, desc.ParseAccessMode)
	if !ok {
		return nil, false
	}
	indexSize, indexSizePresent, ok := optParsed(v, indexSizeKey, desc.ParseRegisterSize)
	if !ok {
		return nil, false
	}
	if !indexSizePresent {
		indexSize = desc.Size64
	}
	addressSize, addressSizePresent, ok := optParsed(v, addressSizeKey, desc.ParseAddressSize)
	if !ok {
		return nil, false
	}
	if !addressSizePresent {
		addressSize = desc.AddressSize{Native: true}
	}

	return &desc.Description{
		Name:          name,
		Description:   descText,
		Version:       version,
		Extension:     ext,
		DefaultSize:   defaultSize,
		DefaultAccess: defaultAccess,
		IndexSize:     indexSize,
		AddressSize:   addressSize,
	}, true
}
