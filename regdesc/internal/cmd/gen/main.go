// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/regdesc/tools/gogen"
	"github.com/regdesc/tools/regdesc/internal/cmd/check"
	"github.com/regdesc/tools/regdesc/internal/util"
)

const Descr = "generate Go register access code from a description file"

func Main(args []string) {
	if len(args) == 0 {
		fmt.Println(Descr)
		return
	}
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		os.Stderr.WriteString("Usage:\n  gen [OPTIONS] FILE [OUT]\nOptions:\n")
		fs.PrintDefaults()
	}
	pkg := fs.String(
		"pkg", "",
		"package `name` of the generated file (default: derived from OUT)",
	)
	fs.Parse(args[1:])
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	in := fs.Arg(0)
	out := util.OutFile(in, ".toml", fs.Arg(1), ".go")
	if *pkg == "" {
		*pkg = packageName(out)
	}

	file, ok := check.Load(in)
	if !ok {
		os.Exit(1)
	}
	src := gogen.Generate(file, *pkg)
	formatted, err := imports.Process(out, []byte(src), nil)
	util.FatalErr("format", err)
	util.FatalErr("", os.WriteFile(out, formatted, 0o644))
}

// packageName derives a Go package name from the output file path:
// "vga/crtc_regs.go" becomes "crtc_regs".
func packageName(out string) string {
	name := strings.TrimSuffix(filepath.Base(out), ".go")
	if name == "" || name == "." {
		util.Fatal("cannot derive a package name from '%s', use -pkg", out)
	}
	return name
}
