package geo

import (
	"math"
	"sort"
)

// These helpers never panic; a polygon with fewer than 3 vertices
// yields zero/empty results and rejection is the validator's job.

// SignedArea returns the signed area of the polygon using the shoelace
// formula. The sign encodes winding order: positive for
// counter-clockwise vertex order (in a Y-up frame), negative for
// clockwise.
func SignedArea(poly []Point) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += poly[i].X * poly[j].Y
		area -= poly[j].X * poly[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon.
func Area(poly []Point) float64 {
	return math.Abs(SignedArea(poly))
}

// Centroid returns the area centroid of the polygon, falling back to
// the vertex mean for degenerate (near-zero-area) input.
func Centroid(poly []Point) Point {
	n := len(poly)
	if n == 0 {
		return Point{}
	}
	a := SignedArea(poly)
	if n < 3 || math.Abs(a) < 1e-12 {
		var sum Point
		for _, p := range poly {
			sum = sum.Add(p)
		}
		return sum.Scale(1 / float64(n))
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
		cx += (poly[i].X + poly[j].X) * cross
		cy += (poly[i].Y + poly[j].Y) * cross
	}
	f := 1 / (6 * a)
	return Point{cx * f, cy * f}
}

// BoundingBox returns the axis-aligned bounding box of the polygon as
// (min, max). Empty input yields two zero points.
func BoundingBox(poly []Point) (min, max Point) {
	if len(poly) == 0 {
		return Point{}, Point{}
	}
	min, max = poly[0], poly[0]
	for _, p := range poly[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// ContainsPoint reports whether pt lies inside the polygon, using the
// standard ray-casting parity test. Points exactly on an edge may land
// on either side; the shadow sampler tolerates that.
func ContainsPoint(poly []Point, pt Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := poly[i], poly[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// SegmentsIntersect reports whether segments (p1,p2) and (p3,p4)
// properly intersect, or touch at a point interior to one of them.
// Shared endpoints do not count, so adjacent polygon edges are not
// flagged.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := orient(p3, p4, p1)
	d2 := orient(p3, p4, p2)
	d3 := orient(p1, p2, p3)
	d4 := orient(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear touch: a point strictly within the other segment.
	if d1 == 0 && strictlyOnSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && strictlyOnSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && strictlyOnSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && strictlyOnSegment(p1, p2, p4) {
		return true
	}
	return false
}

// orient returns the cross product (b-a)×(c-a): positive when c is
// left of a→b, negative when right, zero when collinear.
func orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// strictlyOnSegment assumes a, b, p collinear and reports whether p is
// inside segment (a,b) excluding the endpoints.
func strictlyOnSegment(a, b, p Point) bool {
	if p == a || p == b {
		return false
	}
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// ConvexHull returns the convex hull of pts in counter-clockwise order
// (positive shoelace area), via Andrew's monotone chain. Interior and
// collinear boundary points are dropped; fewer than 3 input points
// come back as a copy. Fully collinear input collapses to 2 points.
func ConvexHull(pts []Point) []Point {
	n := len(pts)
	if n < 3 {
		out := make([]Point, n)
		copy(out, pts)
		return out
	}
	sorted := make([]Point, n)
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	hull := make([]Point, 0, 2*n)
	for _, p := range sorted {
		for len(hull) >= 2 && orient(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && orient(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// First point is repeated at the end of the upper chain.
	return hull[:len(hull)-1]
}

// SelfIntersects reports whether any two non-adjacent edges of the
// polygon intersect. The test is O(n²), so callers pass a vertex-count
// ceiling above which it is skipped (returning false); detector output
// rarely exceeds a few dozen vertices anyway.
func SelfIntersects(poly []Point, ceiling int) bool {
	n := len(poly)
	if n < 4 || (ceiling > 0 && n > ceiling) {
		return false
	}
	for i := 0; i < n; i++ {
		a1 := poly[i]
		a2 := poly[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip adjacent edges (they share a vertex).
			if j == i || (j+1)%n == i || (i+1)%n == j {
				continue
			}
			b1 := poly[j]
			b2 := poly[(j+1)%n]
			if SegmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}
