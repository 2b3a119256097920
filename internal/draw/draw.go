package draw

import (
	"image/color"
	"strconv"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI attribute sequences used by the text overlays.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorDim        = "\033[2m"
	ColorBrightCyan = "\033[96m"
	ColorYellow     = "\033[93m"
	ColorRed        = "\033[91m"
)

// Fg returns the true color foreground sequence for c.
func Fg(c color.RGBA) string {
	return "\033[38;2;" + rgbParams(c) + "m"
}

// Bg returns the true color background sequence for c.
func Bg(c color.RGBA) string {
	return "\033[48;2;" + rgbParams(c) + "m"
}

func rgbParams(c color.RGBA) string {
	b := make([]byte, 0, 12)
	b = strconv.AppendUint(b, uint64(c.R), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(c.G), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(c.B), 10)
	return string(b)
}

// Fade scales c toward black by alpha in [0, 1]. The result is opaque unless
// alpha is zero, so faded pixels still draw.
func Fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha <= 0 {
		return color.RGBA{}
	}
	if alpha >= 1 {
		c.A = 0xff
		return c
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: 0xff,
	}
}

// Lighten mixes c toward white by t in [0, 1].
func Lighten(c color.RGBA, t float64) color.RGBA {
	t = min(max(t, 0), 1)
	mix := func(v uint8) uint8 { return uint8(float64(v) + (255-float64(v))*t) }
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: 0xff}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
