// Package geo provides the 2D primitives and coordinate transforms the
// rest of the engine is built on.
//
// Three coordinate spaces appear throughout:
//
//   - image space: pixel coordinates of the site plan, Y increasing down
//   - world space: meters centered on the site, X east, Y south
//   - local space: world space re-centered on a footprint's centroid
//
// A Point carries no space tag; which space it is in is determined by
// context and crossing spaces always goes through an explicit transform.
package geo

import "math"

// Point is a 2D coordinate in image, world, or local space.
type Point struct {
	X, Y float64
}

// Add returns a+b.
func (a Point) Add(b Point) Point {
	return Point{a.X + b.X, a.Y + b.Y}
}

// Sub returns a-b.
func (a Point) Sub(b Point) Point {
	return Point{a.X - b.X, a.Y - b.Y}
}

// Scale returns a scaled by s.
func (a Point) Scale(s float64) Point {
	return Point{a.X * s, a.Y * s}
}

// Distance returns the Euclidean distance between a and b.
func (a Point) Distance(b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Finite reports whether both coordinates are finite numbers.
func (a Point) Finite() bool {
	return !math.IsNaN(a.X) && !math.IsInf(a.X, 0) &&
		!math.IsNaN(a.Y) && !math.IsInf(a.Y, 0)
}

// ImageToWorld maps an image-space footprint to world space: translate
// so the image center is the origin, scale pixels to meters, then
// rotate in the image plane by northAngle degrees (positive clockwise,
// matching compass convention). It is a pure function and an isometry
// up to the scale factor, so polygon area is multiplied by exactly
// scale².
func ImageToWorld(footprint []Point, imageWidth, imageHeight, scale, northAngle float64) []Point {
	if len(footprint) == 0 {
		return nil
	}
	sin, cos := math.Sincos(northAngle * math.Pi / 180)
	cx, cy := imageWidth/2, imageHeight/2
	out := make([]Point, len(footprint))
	for i, p := range footprint {
		x := (p.X - cx) * scale
		y := (p.Y - cy) * scale
		// Image Y grows downward, so this matrix is a clockwise
		// rotation on screen for positive northAngle.
		out[i] = Point{
			X: x*cos - y*sin,
			Y: x*sin + y*cos,
		}
	}
	return out
}

// WorldToLocal re-centers a world-space footprint on its centroid. The
// centroid is the arithmetic mean of the vertices (not the area
// centroid; the two only differ for irregular vertex spacing and the
// mean is what the editor layer expects). Empty input yields (nil,
// Point{}).
func WorldToLocal(footprint []Point) ([]Point, Point) {
	if len(footprint) == 0 {
		return nil, Point{}
	}
	var c Point
	for _, p := range footprint {
		c = c.Add(p)
	}
	c = c.Scale(1 / float64(len(footprint)))
	out := make([]Point, len(footprint))
	for i, p := range footprint {
		out[i] = p.Sub(c)
	}
	return out, c
}
