// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validate

import (
	"fmt"
	"strings"
)

// TableKind identifies the kind of table a diagnostic was produced for.
type TableKind int

const (
	Root TableKind = iota
	RegisterDescription
	Register
	BitField
	Enum
	EnumValue
)

func (k TableKind) String() string {
	switch k {
	case Root:
		return "Root"
	case RegisterDescription:
		return "RegisterDescription"
	case Register:
		return "Register"
	case BitField:
		return "BitField"
	case Enum:
		return "Enum"
	case EnumValue:
		return "EnumValue"
	}
	return "Unknown"
}

// DiagKind is the closed set of diagnostic kinds.
type DiagKind int

const (
	// MissingKey reports a required key that is absent.
	MissingKey DiagKind = iota
	// UnknownKey reports a key outside the table's allowed key set.
	UnknownKey
	// ValueError reports a present key whose value has the wrong type or
	// invalid content.
	ValueError
	// ConstraintError reports a value that is valid on its own but
	// inconsistent with another field or entity.
	ConstraintError
)

// Diagnostic is one problem found during validation. Context is the
// rendered breadcrumb trail of the entity the problem was found in.
type Diagnostic struct {
	Kind    DiagKind
	Table   TableKind
	Context string
	Key     string // MissingKey, UnknownKey and ValueError only
	Message string // ValueError and ConstraintError only
}

func (d *Diagnostic) String() string {
	switch d.Kind {
	case MissingKey:
		return fmt.Sprintf("error: key '%s' is missing from table type '%s'%s", d.Key, d.Table, d.Context)
	case UnknownKey:
		return fmt.Sprintf("error: unsupported key '%s' in table type '%s'%s", d.Key, d.Table, d.Context)
	case ValueError:
		return fmt.Sprintf("error: %s, key: '%s', table type: '%s'%s", d.Message, d.Key, d.Table, d.Context)
	default:
		return fmt.Sprintf("error: %s, table type: '%s'%s", d.Message, d.Table, d.Context)
	}
}

// Render formats a batch of diagnostics followed by a summary line.
func Render(diags []Diagnostic) string {
	var b strings.Builder
	for i := range diags {
		b.WriteString(diags[i].String())
		b.WriteString("\n\n")
	}
	if len(diags) == 1 {
		b.WriteString("error: aborting due to previous error\n")
	} else {
		fmt.Fprintf(&b, "error: aborting due to %d previous errors\n", len(diags))
	}
	return b.String()
}

// Collector accumulates diagnostics and carries the breadcrumb context
// stack. Validation never stops at the first problem: every check appends
// to the same collector and carries on.
type Collector struct {
	stack []string
	diags []Diagnostic
}

// Push enters a nested entity ("register 'TIMER_CTRL'"). Every Push must be
// paired with a Pop on all exit paths; tableValidator does this bookkeeping
// for the schema walk.
func (c *Collector) Push(context string) {
	c.stack = append(c.stack, context)
}

func (c *Collector) Pop() {
	c.stack = c.stack[:len(c.stack)-1]
}

// Diagnostics returns everything collected so far, in the order it was
// reported.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diags
}

func (c *Collector) add(d Diagnostic) {
	d.Context = c.context()
	c.diags = append(c.diags, d)
}

func (c *Collector) context() string {
	var b strings.Builder
	for _, s := range c.stack {
		b.WriteString("\n\t--> ")
		b.WriteString(s)
	}
	return b.String()
}
