package canvas

import (
	"image"
	"image/color"
	"math"
)

// drawCursor draws the brush outline, scaled from logical points to device
// pixels. Outline pixels invert what is underneath so they stay visible on
// any image.
func drawCursor(output *image.RGBA, cursor cursorOverlay, pixScale float32) {
	cx := float64(cursor.Center.X * pixScale)
	cy := float64(cursor.Center.Y * pixScale)
	r := float64(cursor.Radius * pixScale)

	if cursor.Radius < minCursorRadius {
		arm := int(math.Ceil(minCursorRadius * float64(pixScale)))
		x, y := int(cx), int(cy)
		drawLine(output, x-arm, y, x+arm, y, 1)
		drawLine(output, x, y-arm, x, y-1, 1)
		drawLine(output, x, y+1, x, y+arm, 1)
		return
	}
	drawRing(output, cx, cy, r)
}

// drawRing draws a one pixel wide circle outline.
func drawRing(output *image.RGBA, cx, cy, r float64) {
	bounds := output.Bounds()

	minX := int(cx - r - 1)
	maxX := int(cx + r + 1)
	minY := int(cy - r - 1)
	maxY := int(cy + r + 1)

	r2 := r * r
	innerR2 := (r - 1) * (r - 1)

	for y := max(minY, bounds.Min.Y); y <= maxY && y < bounds.Max.Y; y++ {
		for x := max(minX, bounds.Min.X); x <= maxX && x < bounds.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			dist2 := dx*dx + dy*dy
			if dist2 <= r2 && dist2 >= innerR2 {
				invertAt(output, x, y)
			}
		}
	}
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, thickness int) {
	bounds := output.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				px, py := x1+s, y1+t
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					invertAt(output, px, py)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// invertAt replaces the pixel with its color inverse, keeping alpha.
func invertAt(output *image.RGBA, x, y int) {
	c := output.RGBAAt(x, y)
	output.SetRGBA(x, y, color.RGBA{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A})
}
