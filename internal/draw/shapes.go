package draw

import (
	"image/color"
	"math"
)

// FillRect fills the logical rectangle with clr. Any rectangle that overlaps
// the canvas covers at least one sub-pixel, so thin objects stay visible.
func (c *Canvas) FillRect(x, y, w, h float64, clr color.RGBA) {
	x0, y0, x1, y1 := c.pixelBounds(x, y, w, h)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c.setPixel(px, py, clr)
		}
	}
}

// StrokeRect draws the outline of the logical rectangle.
func (c *Canvas) StrokeRect(x, y, w, h float64, clr color.RGBA) {
	x0, y0, x1, y1 := c.pixelBounds(x, y, w, h)
	for px := x0; px <= x1; px++ {
		c.setPixel(px, y0, clr)
		c.setPixel(px, y1, clr)
	}
	for py := y0; py <= y1; py++ {
		c.setPixel(x0, py, clr)
		c.setPixel(x1, py, clr)
	}
}

// FillCircle fills a logical circle. The radius is scaled per axis, so a
// circle stays round in logical space on non-square cells.
func (c *Canvas) FillCircle(cx, cy, r float64, clr color.RGBA) {
	x0, y0, x1, y1 := c.pixelBounds(cx-r, cy-r, 2*r, 2*r)
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	rx, ry := math.Max(r*c.scaleX, 0.5), math.Max(r*c.scaleY, 0.5)
	drew := false
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			dx := (float64(px) + 0.5 - pcx) / rx
			dy := (float64(py) + 0.5 - pcy) / ry
			if dx*dx+dy*dy <= 1 {
				c.setPixel(px, py, clr)
				drew = true
			}
		}
	}
	if !drew {
		c.SetFloat(cx, cy, clr)
	}
}

// pixelBounds converts a logical rectangle to inclusive sub-pixel bounds.
func (c *Canvas) pixelBounds(x, y, w, h float64) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(x * c.scaleX))
	y0 = int(math.Floor(y * c.scaleY))
	x1 = max(int(math.Ceil((x+w)*c.scaleX))-1, x0)
	y1 = max(int(math.Ceil((y+h)*c.scaleY))-1, y0)
	return x0, y0, x1, y1
}
