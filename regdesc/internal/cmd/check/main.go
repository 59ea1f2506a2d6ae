// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package check

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/davecgh/go-spew/spew"

	"github.com/regdesc/tools/desc"
	"github.com/regdesc/tools/regdesc/internal/util"
	"github.com/regdesc/tools/validate"
)

const Descr = "validate register description files"

func Main(args []string) {
	if len(args) == 0 {
		fmt.Println(Descr)
		return
	}
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		os.Stderr.WriteString("Usage:\n  check [OPTIONS] FILE...\nOptions:\n")
		fs.PrintDefaults()
	}
	debug := fs.Bool(
		"debug", false,
		"dump the validated model of every file to stderr",
	)
	fs.Parse(args[1:])
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(1)
	}
	failed := false
	for _, path := range fs.Args() {
		file, ok := Load(path)
		if !ok {
			failed = true
			continue
		}
		if *debug {
			spew.Fdump(os.Stderr, file)
		}
		fmt.Printf("Validation completed successfully for file '%s'\n", path)
	}
	if failed {
		os.Exit(1)
	}
}

// Load parses and validates one description file. Problems are printed to
// stderr and reported as ok == false.
func Load(path string) (file *desc.File, ok bool) {
	var root map[string]any
	if _, err := toml.DecodeFile(path, &root); err != nil {
		util.Warn("%s: %s", path, err)
		return nil, false
	}
	file, diags := validate.CheckRoot(root)
	if len(diags) != 0 {
		util.Warn("%s:", path)
		os.Stderr.WriteString(validate.Render(diags))
		return nil, false
	}
	return file, true
}
