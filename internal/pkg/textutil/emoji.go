// Package textutil normalizes event titles before they take part in
// identity hashing.
package textutil

import (
	"strings"
	"unicode"
)

// pictographs covers the emoji and pictographic blocks stripped from
// titles, plus the joiners and modifiers that only occur inside emoji
// sequences.
var pictographs = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200d, Hi: 0x200d, Stride: 1}, // zero width joiner
		{Lo: 0x20e3, Hi: 0x20e3, Stride: 1}, // combining enclosing keycap
		{Lo: 0x2600, Hi: 0x26ff, Stride: 1}, // miscellaneous symbols
		{Lo: 0x2700, Hi: 0x27bf, Stride: 1}, // dingbats
		{Lo: 0x2b00, Hi: 0x2bff, Stride: 1}, // arrows, stars
		{Lo: 0xfe0e, Hi: 0xfe0f, Stride: 1}, // variation selectors
	},
	R32: []unicode.Range32{
		{Lo: 0x1f1e6, Hi: 0x1f1ff, Stride: 1}, // regional indicators
		{Lo: 0x1f300, Hi: 0x1f5ff, Stride: 1}, // symbols and pictographs
		{Lo: 0x1f600, Hi: 0x1f64f, Stride: 1}, // emoticons
		{Lo: 0x1f680, Hi: 0x1f6ff, Stride: 1}, // transport and map
		{Lo: 0x1f700, Hi: 0x1f77f, Stride: 1}, // alchemical
		{Lo: 0x1f900, Hi: 0x1f9ff, Stride: 1}, // supplemental symbols
		{Lo: 0x1fa70, Hi: 0x1faff, Stride: 1}, // symbols extended-A
	},
}

// StripEmoji removes pictographic characters from s. It keeps all other
// runes untouched, so regular punctuation and non-latin scripts survive.
func StripEmoji(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for _, r := range s {
		if unicode.Is(pictographs, r) {
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}

// CleanTitle strips emoji and trims surrounding whitespace; the result is
// the title component of an event's identity key.
func CleanTitle(s string) string {
	return strings.TrimSpace(StripEmoji(s))
}
