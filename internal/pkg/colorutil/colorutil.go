// Package colorutil implements the hex color arithmetic used for event
// styling. Inputs are expected to be pre-validated against
// model.ColorPattern; malformed input produces meaningless output rather
// than an error.
package colorutil

import (
	"fmt"
	"strings"
)

// AdjustBrightness adds steps to each RGB channel of a "#rgb" or "#rrggbb"
// color, clamping channels to [0, 255] and steps to [-255, 255], and
// returns the lowercase "#rrggbb" form.
func AdjustBrightness(hex string, steps int) string {
	if steps < -255 {
		steps = -255
	}
	if steps > 255 {
		steps = 255
	}

	r, g, b := HexToRGB(hex)
	return fmt.Sprintf("#%02x%02x%02x", clampByte(r+steps), clampByte(g+steps), clampByte(b+steps))
}

// HexToRGB decodes a "#rgb" or "#rrggbb" color into channel values.
// 3-digit colors are expanded by duplicating each nibble.
func HexToRGB(hex string) (int, int, int) {
	hex = expand(strings.TrimPrefix(hex, "#"))
	return parseByte(hex[0:2]), parseByte(hex[2:4]), parseByte(hex[4:6])
}

// ToCSSRGBA renders a hex color as a CSS rgba() literal with the given
// alpha.
func ToCSSRGBA(hex string, alpha float64) string {
	r, g, b := HexToRGB(hex)
	return fmt.Sprintf("rgba(%d, %d, %d, %v)", r, g, b, alpha)
}

func expand(hex string) string {
	if len(hex) == 3 {
		var sb strings.Builder
		for _, c := range hex {
			sb.WriteRune(c)
			sb.WriteRune(c)
		}
		return sb.String()
	}

	// Malformed input still must not panic below.
	for len(hex) < 6 {
		hex += "0"
	}
	return hex
}

func parseByte(s string) int {
	v := 0
	for _, c := range s {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= int(c - '0')
		case c >= 'a' && c <= 'f':
			v |= int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= int(c-'A') + 10
		}
	}
	return v
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
