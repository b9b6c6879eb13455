package models

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a tracker color, kept as a normalized "#rrggbb" string.
type Color string

// ParseColor accepts "#rrggbb", "#rgb" or either without the leading '#'.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(c.Hex()), nil
}

// MustParseColor is ParseColor for constants; it panics on bad input.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether c decodes to a color.
func (c Color) Valid() bool {
	_, err := colorful.Hex(string(c))
	return err == nil
}

func (c Color) String() string {
	return string(c)
}

// Palette is cycled through by `tracker add` when no color is given.
var Palette = []Color{
	"#fd4c49", "#ff881e", "#007bfa", "#6e44fe", "#33cf69", "#e66dd4",
	"#f9d4d4", "#34a7fe", "#46e69d", "#35347c", "#ff674d", "#ff99cc",
	"#f6c48b", "#7994f5", "#832cf1", "#ad56da", "#8d72e6", "#2fd058",
}

// Emojis is the default emoji selection.
var Emojis = []string{
	"😊", "😻", "🌺", "🐶", "❤️", "😱",
	"😇", "😡", "🥶", "🤔", "🙌", "🍔",
	"🥦", "🏓", "🥇", "🎸", "🏝️", "😪",
}
