// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Regdesc validates register description files and generates type-safe
// register access code from them.
package main

import (
	"fmt"
	"os"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/regdesc/tools/regdesc/internal/cmd/check"
	"github.com/regdesc/tools/regdesc/internal/cmd/gen"
)

type tool struct {
	descr string
	main  func(args []string)
}

var tools = map[string]tool{
	"check": {check.Descr, check.Main},
	"gen":   {gen.Descr, gen.Main},
}

func printToolList() {
	names := maps.Keys(tools)
	slices.Sort(names)
	maxLen := 0
	for _, k := range names {
		if maxLen < len(k) {
			maxLen = len(k)
		}
	}
	uw := os.Stderr
	uw.WriteString("Usage:\n  regdesc COMMAND [ARGUMENTS]\n\n")
	uw.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(uw, "  %*s  %s\n", maxLen, name, tools[name].descr)
	}
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" {
		printToolList()
		return
	}
	tool, ok := tools[os.Args[1]]
	if !ok {
		printToolList()
		os.Exit(1)
	}
	tool.main(os.Args[1:])
}
