// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validate

import (
	"fmt"
	"math"
	"slices"

	"golang.org/x/exp/maps"
)

// tableValidator checks one table-like node of the untyped input tree. It
// tracks how many breadcrumbs it pushed so close can pop them on every exit
// path. The typed accessors come in two flavors: req* reports MissingKey
// for an absent key, opt* returns present=false instead. Both report
// ValueError and return ok=false when a present value has the wrong type
// or invalid content.
type tableValidator struct {
	table  map[string]any
	kind   TableKind
	col    *Collector
	pushes int
}

func newTableValidator(table map[string]any, kind TableKind, col *Collector) *tableValidator {
	return &tableValidator{table: table, kind: kind, col: col}
}

// close pops every breadcrumb pushed through v. Callers defer it right
// after newTableValidator.
func (v *tableValidator) close() {
	for ; v.pushes > 0; v.pushes-- {
		v.col.Pop()
	}
}

func (v *tableValidator) push(context string) {
	v.pushes++
	v.col.Push(context)
}

func (v *tableValidator) checkUnknownKeys(allowed ...string) {
	keys := maps.Keys(v.table)
	slices.Sort(keys)
	for _, key := range keys {
		known := false
		for _, a := range allowed {
			if key == a {
				known = true
				break
			}
		}
		if !known {
			v.col.add(Diagnostic{Kind: UnknownKey, Table: v.kind, Key: key})
		}
	}
}

func (v *tableValidator) missingKey(key string) {
	v.col.add(Diagnostic{Kind: MissingKey, Table: v.kind, Key: key})
}

func (v *tableValidator) valueErr(key, format string, args ...any) {
	v.col.add(Diagnostic{
		Kind: ValueError, Table: v.kind, Key: key,
		Message: fmt.Sprintf(format, args...),
	})
}

func (v *tableValidator) constraintErr(format string, args ...any) {
	v.col.add(Diagnostic{
		Kind: ConstraintError, Table: v.kind,
		Message: fmt.Sprintf(format, args...),
	})
}

func (v *tableValidator) optText(key string) (s string, present, ok bool) {
	raw, here := v.table[key]
	if !here {
		return "", false, true
	}
	s, isStr := raw.(string)
	if !isStr {
		v.valueErr(key, "expected a string, found: %s", describe(raw))
		return "", true, false
	}
	return s, true, true
}

func (v *tableValidator) reqText(key string) (string, bool) {
	s, present, ok := v.optText(key)
	if ok && !present {
		v.missingKey(key)
		return "", false
	}
	return s, ok && present
}

// optName is optText plus the identifier rule: names start with a letter
// or underscore and contain only letters, digits and underscores.
func (v *tableValidator) optName(key string) (string, bool, bool) {
	s, present, ok := v.optText(key)
	if !ok || !present {
		return "", present, ok
	}
	if !isIdent(s) {
		v.valueErr(key, "'%s' is not a valid identifier", s)
		return "", true, false
	}
	return s, true, true
}

func (v *tableValidator) reqName(key string) (string, bool) {
	s, present, ok := v.optName(key)
	if ok && !present {
		v.missingKey(key)
		return "", false
	}
	return s, ok && present
}

func (v *tableValidator) optBool(key string) (b, present, ok bool) {
	raw, here := v.table[key]
	if !here {
		return false, false, true
	}
	b, isBool := raw.(bool)
	if !isBool {
		v.valueErr(key, "expected a boolean, found: %s", describe(raw))
		return false, true, false
	}
	return b, true, true
}

func (v *tableValidator) optInt(key string) (n int64, present, ok bool) {
	raw, here := v.table[key]
	if !here {
		return 0, false, true
	}
	n, isInt := raw.(int64)
	if !isInt {
		v.valueErr(key, "expected an integer, found: %s", describe(raw))
		return 0, true, false
	}
	return n, true, true
}

func (v *tableValidator) optU64(key string) (uint64, bool, bool) {
	n, present, ok := v.optInt(key)
	if !ok || !present {
		return 0, present, ok
	}
	if n < 0 {
		v.valueErr(key, "negative value '%d'", n)
		return 0, true, false
	}
	return uint64(n), true, true
}

func (v *tableValidator) reqU64(key string) (uint64, bool) {
	n, present, ok := v.optU64(key)
	if ok && !present {
		v.missingKey(key)
		return 0, false
	}
	return n, ok && present
}

func (v *tableValidator) optU16(key string) (uint16, bool, bool) {
	n, present, ok := v.optInt(key)
	if !ok || !present {
		return 0, present, ok
	}
	if n < 0 {
		v.valueErr(key, "negative value '%d'", n)
		return 0, true, false
	}
	if n > math.MaxUint16 {
		v.valueErr(key, "value '%d' does not fit in 16 bits", n)
		return 0, true, false
	}
	return uint16(n), true, true
}

func (v *tableValidator) reqTable(key string) (map[string]any, bool) {
	raw, here := v.table[key]
	if !here {
		v.missingKey(key)
		return nil, false
	}
	t, isTable := raw.(map[string]any)
	if !isTable {
		v.valueErr(key, "expected a table, found: %s", describe(raw))
		return nil, false
	}
	return t, true
}

func (v *tableValidator) optTables(key string) ([]map[string]any, bool, bool) {
	raw, here := v.table[key]
	if !here {
		return nil, false, true
	}
	tables, err := asTables(raw)
	if err != "" {
		v.valueErr(key, "%s", err)
		return nil, true, false
	}
	return tables, true, true
}

func (v *tableValidator) reqTables(key string) ([]map[string]any, bool) {
	t, present, ok := v.optTables(key)
	if ok && !present {
		v.missingKey(key)
		return nil, false
	}
	return t, ok && present
}

// optParsed and reqParsed convert a string value through parse, reporting
// the parse error as a ValueError.
func optParsed[T any](v *tableValidator, key string, parse func(string) (T, error)) (value T, present, ok bool) {
	var zero T
	s, present, ok := v.optText(key)
	if !ok || !present {
		return zero, present, ok
	}
	x, err := parse(s)
	if err != nil {
		v.valueErr(key, "%s", err)
		return zero, true, false
	}
	return x, true, true
}

func reqParsed[T any](v *tableValidator, key string, parse func(string) (T, error)) (T, bool) {
	x, present, ok := optParsed(v, key, parse)
	if ok && !present {
		v.missingKey(key)
		var zero T
		return zero, false
	}
	return x, ok && present
}

// asTables accepts both decoder shapes for an array of tables. A non-empty
// error string describes the mismatch.
func asTables(raw any) ([]map[string]any, string) {
	switch x := raw.(type) {
	case []map[string]any:
		return x, ""
	case []any:
		tables := make([]map[string]any, 0, len(x))
		for _, item := range x {
			t, isTable := item.(map[string]any)
			if !isTable {
				return nil, fmt.Sprintf("expected an array of tables, found: %s", describe(item))
			}
			tables = append(tables, t)
		}
		return tables, ""
	}
	return nil, fmt.Sprintf("expected an array, found: %s", describe(raw))
}

func describe(raw any) string {
	switch x := raw.(type) {
	case string:
		return fmt.Sprintf("string '%s'", x)
	case int64:
		return fmt.Sprintf("integer %d", x)
	case bool:
		return fmt.Sprintf("boolean %v", x)
	case float64:
		return fmt.Sprintf("float %v", x)
	case map[string]any:
		return "a table"
	case []any, []map[string]any:
		return "an array"
	}
	return fmt.Sprintf("%T", raw)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
