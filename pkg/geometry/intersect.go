package geometry

import (
	"math"
)

// samplesPerAxis is the grid resolution used when the overlap of a circle and
// a square has to be estimated numerically.
const samplesPerAxis = 100

// Lerp linearly interpolates from a to b.
//
// A fraction of 0 yields a, 1 yields b, and 0.75 yields a point 25% of the
// way from b back towards a.
func Lerp(fraction, a, b float32) float32 {
	return (1-fraction)*a + fraction*b
}

// SquareCircleIntersection returns the area of overlap between a circle and an
// axis-aligned square, in the square's area units. Dividing by squareSide²
// yields the fraction of the square that is covered.
//
// Whole-square and no-overlap cases return exactly squareSide² and 0, and a
// circle lying entirely inside the square returns its own area. Everything
// else is estimated by sampling a fixed grid across the square.
func SquareCircleIntersection(circleCenter Point, circleRadius float32, squareCenter Point, squareSide float32) float32 {
	distSq := circleCenter.DistanceSq(squareCenter)
	halfDiagonal := math.Sqrt2 * squareSide / 2

	// Square entirely inside the circle. The comparison is on the squared
	// difference, so circles smaller than the half diagonal that sit close
	// enough to the square's center also count as full coverage.
	inner := circleRadius - halfDiagonal
	if distSq <= inner*inner {
		return squareSide * squareSide
	}

	// No overlap at all
	outer := circleRadius + halfDiagonal
	if distSq >= outer*outer {
		return 0
	}

	half := squareSide / 2
	x1 := squareCenter.X - half
	y1 := squareCenter.Y - half
	x2 := squareCenter.X + half
	y2 := squareCenter.Y + half

	// Circle entirely inside the square
	if circleCenter.X-circleRadius >= x1 && circleCenter.X+circleRadius <= x2 &&
		circleCenter.Y-circleRadius >= y1 && circleCenter.Y+circleRadius <= y2 {
		return math.Pi * circleRadius * circleRadius
	}

	return sampledCoverage(circleCenter, circleRadius, x1, y1, x2, y2) * squareSide * squareSide
}

// sampledCoverage estimates the fraction of the rectangle (x1,y1)-(x2,y2)
// covered by the circle. Sample points include both edges of the rectangle.
func sampledCoverage(center Point, radius, x1, y1, x2, y2 float32) float32 {
	radiusSq := radius * radius
	inside := 0
	for yi := 0; yi < samplesPerAxis; yi++ {
		y := Lerp(float32(yi)/float32(samplesPerAxis-1), y1, y2)
		for xi := 0; xi < samplesPerAxis; xi++ {
			x := Lerp(float32(xi)/float32(samplesPerAxis-1), x1, x2)
			if center.DistanceSq(Point{X: x, Y: y}) <= radiusSq {
				inside++
			}
		}
	}
	return float32(inside) / float32(samplesPerAxis*samplesPerAxis)
}
