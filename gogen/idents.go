// Copyright 2026 The Register Description Tools Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gogen

import (
	"strings"
	"unicode"
)

// titleCase converts a description file name to an exported Go identifier:
// "timer_ctrl" becomes "TimerCtrl".
func titleCase(inp string) string {
	var b strings.Builder
	nextUpper := true
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			nextUpper = true
		case unicode.IsLetter(r):
			if nextUpper {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			nextUpper = false
		default:
			nextUpper = true
		}
	}
	return b.String()
}

// camelCase is titleCase with a lowercase first letter: "timer_ctrl"
// becomes "timerCtrl".
func camelCase(inp string) string {
	t := titleCase(inp)
	for i, r := range t {
		return string(unicode.ToLower(r)) + t[i+len(string(r)):]
	}
	return t
}

// constCase converts a name to SCREAMING_SNAKE_CASE: "timerCtrl" and
// "timer_ctrl" both become "TIMER_CTRL".
func constCase(inp string) string {
	var b strings.Builder
	prevLower := false
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			prevLower = false
		case unicode.IsLetter(r):
			if unicode.IsUpper(r) && prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToUpper(r))
			prevLower = unicode.IsLower(r)
		default:
			b.WriteByte('_')
			prevLower = false
		}
	}
	return b.String()
}
