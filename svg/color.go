package svg

import (
	"fmt"
	"strconv"
)

// Color is one of NoneColor, NamedColor, RGB or RGBA.
type Color interface {
	fmt.Stringer
	isColor()
}

type noneColor struct{}

// NoneColor renders as "none".
var NoneColor Color = noneColor{}

func (noneColor) isColor()       {}
func (noneColor) String() string { return "none" }

// NamedColor is a color keyword or any literal understood by SVG, e.g. "red".
type NamedColor string

func (NamedColor) isColor()         {}
func (c NamedColor) String() string { return string(c) }

// RGB is an opaque color.
type RGB struct {
	Red, Green, Blue uint8
}

func (RGB) isColor() {}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.Red, c.Green, c.Blue)
}

// RGBA is a color with opacity in [0, 1].
type RGBA struct {
	Red, Green, Blue uint8
	Opacity          float64
}

func (RGBA) isColor() {}

func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.Red, c.Green, c.Blue, formatNumber(c.Opacity))
}

// formatNumber prints with six significant digits and no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
