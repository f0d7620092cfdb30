package core

import (
	"fmt"
	"strings"
)

// Color represents a foreground color for a screen cell.
// Either an ANSI 256-color code ("6", "208") or a "#rrggbb" hex value.
// The zero value is the terminal default.
type Color string

// Predefined colors for HUD elements.
const (
	ColorDefault       Color = ""
	ColorRed           Color = "1"
	ColorGreen         Color = "2"
	ColorYellow        Color = "3"
	ColorBlue          Color = "4"
	ColorMagenta       Color = "5"
	ColorCyan          Color = "6"
	ColorWhite         Color = "7"
	ColorBrightRed     Color = "9"
	ColorBrightGreen   Color = "10"
	ColorBrightYellow  Color = "11"
	ColorBrightCyan    Color = "14"
	ColorBrightWhite   Color = "15"
	ColorOrange        Color = "208"
	ColorGray          Color = "245"
	ColorDarkGray      Color = "238"
	ColorBrightMagenta Color = "13"
)

// IsHex reports whether the color is a "#rrggbb" value.
func (c Color) IsHex() bool {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range strings.ToLower(s[1:]) {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// ParseHexColor validates a "#rrggbb" (or "rrggbb") string and returns it
// normalized to lowercase with a leading '#'.
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c := Color(s)
	if !c.IsHex() {
		return ColorDefault, fmt.Errorf("core: invalid hex color %q", s)
	}
	return c, nil
}
