// Package bottles provides the puzzle engine for MixMate: the bottle model,
// the pour rule, the level generator and the win checks.
// This package is UI-agnostic and holds no global state.
package bottles

import (
	"fmt"
	"strconv"
	"strings"
)

// Color identifies one kind of liquid. Colors only compare for equality.
type Color uint8

// Named flavors. Any other Color value is still valid.
const (
	ColorMate Color = iota
	ColorWinter
	ColorCola
	ColorGranat
	ColorIceT
	ColorZero
	NamedColors // Sentinel value for iteration
)

// MaxColors is the largest number of distinct colors a puzzle can use.
const MaxColors = 256

// String returns the flavor name of the color.
func (c Color) String() string {
	switch c {
	case ColorMate:
		return "mate"
	case ColorWinter:
		return "winter"
	case ColorCola:
		return "cola"
	case ColorGranat:
		return "granat"
	case ColorIceT:
		return "ice-t"
	case ColorZero:
		return "zero"
	default:
		return fmt.Sprintf("flavor-%d", int(c))
	}
}

// Char returns a single character for text output.
func (c Color) Char() rune {
	switch c {
	case ColorMate:
		return 'M'
	case ColorWinter:
		return 'W'
	case ColorCola:
		return 'C'
	case ColorGranat:
		return 'G'
	case ColorIceT:
		return 'I'
	case ColorZero:
		return 'Z'
	}
	// Unnamed colors cycle through lowercase letters.
	return rune('a' + (int(c)-int(NamedColors))%26)
}

// ParseColor converts a name or single-letter code to a Color.
// "flavor-N" is accepted for unnamed colors.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "mate", "m":
		return ColorMate, true
	case "winter", "w":
		return ColorWinter, true
	case "cola", "c":
		return ColorCola, true
	case "granat", "g":
		return ColorGranat, true
	case "ice-t", "icet", "i":
		return ColorIceT, true
	case "zero", "z":
		return ColorZero, true
	}

	if rest, ok := strings.CutPrefix(strings.ToLower(s), "flavor-"); ok {
		n, err := strconv.Atoi(rest)
		if err == nil && n >= 0 && n < MaxColors {
			return Color(n), true
		}
	}
	return ColorMate, false
}

// Palette returns the first n colors in order.
func Palette(n int) []Color {
	n = max(0, min(n, MaxColors))
	colors := make([]Color, n)
	for i := range colors {
		colors[i] = Color(i)
	}
	return colors
}
