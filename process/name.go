package process

import (
	"strings"
	"unicode/utf16"
)

// DecodeExeName decodes a fixed-size UTF-16 name buffer, stopping at the first NUL.
// A buffer without a NUL is decoded in full.
func DecodeExeName(buf []uint16) string {
	for i, c := range buf {
		if c == 0 {
			buf = buf[:i]
			break
		}
	}
	return string(utf16.Decode(buf))
}

// matchName reports whether name passes filter. An empty filter matches everything.
func matchName(name, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(name, filter)
}
