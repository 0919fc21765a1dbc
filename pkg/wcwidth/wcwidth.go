// Package wcwidth provides utilities for determining the column width of
// characters when displayed on the terminal.
package wcwidth

import (
	"strings"
	"sync"
	"unicode"
)

var (
	overrideMutex sync.RWMutex
	override      = map[rune]int{}
)

// Ranges of code points that occupy two columns. This is a coarse subset of
// the East Asian Wide and Fullwidth properties that covers the scripts and
// symbols commonly seen on a terminal.
var wideRanges = []struct{ lo, hi rune }{
	{0x1100, 0x115F},
	{0x2E80, 0x303E},
	{0x3041, 0x33FF},
	{0x3400, 0x4DBF},
	{0x4E00, 0x9FFF},
	{0xA000, 0xA4CF},
	{0xAC00, 0xD7A3},
	{0xF900, 0xFAFF},
	{0xFE30, 0xFE4F},
	{0xFF00, 0xFF60},
	{0xFFE0, 0xFFE6},
	{0x1F300, 0x1F64F},
	{0x1F900, 0x1F9FF},
	{0x20000, 0x2FFFD},
	{0x30000, 0x3FFFD},
}

// OfRune returns the column width of a rune.
func OfRune(r rune) int {
	overrideMutex.RLock()
	w, ok := override[r]
	overrideMutex.RUnlock()
	if ok {
		return w
	}
	return ofRune(r)
}

func ofRune(r rune) int {
	switch {
	case r == 0,
		unicode.Is(unicode.Mn, r),
		unicode.Is(unicode.Me, r),
		unicode.Is(unicode.Cf, r):
		return 0
	}
	for _, rg := range wideRanges {
		if r < rg.lo {
			break
		}
		if r <= rg.hi {
			return 2
		}
	}
	return 1
}

// Override overrides the column width of a rune to be a specific non-negative
// value. If w < 0, it removes the override.
func Override(r rune, w int) {
	if w < 0 {
		Unoverride(r)
		return
	}
	overrideMutex.Lock()
	defer overrideMutex.Unlock()
	override[r] = w
}

// Unoverride removes the column width override of a rune.
func Unoverride(r rune) {
	overrideMutex.Lock()
	defer overrideMutex.Unlock()
	delete(override, r)
}

// Of returns the column width of a string, assuming no soft line breaks.
func Of(s string) int {
	w := 0
	for _, r := range s {
		w += OfRune(r)
	}
	return w
}

// Trim trims the string s so that it uses at most wmax columns.
func Trim(s string, wmax int) string {
	w := 0
	for i, r := range s {
		w += OfRune(r)
		if w > wmax {
			return s[:i]
		}
	}
	return s
}

// Force forces the string s to the given column width by trimming and padding.
func Force(s string, width int) string {
	w := 0
	for i, r := range s {
		w0 := OfRune(r)
		w += w0
		if w > width {
			w -= w0
			s = s[:i]
			break
		}
	}
	return s + strings.Repeat(" ", width-w)
}

// PadLeft pads s on the left with spaces so that it uses exactly width
// columns, trimming from the left if s is wider.
func PadLeft(s string, width int) string {
	w := Of(s)
	for w > width {
		r := []rune(s)
		w -= OfRune(r[0])
		s = string(r[1:])
	}
	return strings.Repeat(" ", width-w) + s
}

// TrimEachLine trims each line of s so that it is no wider than the specified
// width.
func TrimEachLine(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = Trim(lines[i], width)
	}
	return strings.Join(lines, "\n")
}
