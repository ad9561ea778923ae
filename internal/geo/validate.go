package geo

import (
	"fmt"
	"math"
)

// Winding is the vertex order of a polygon.
type Winding int

const (
	WindingUnknown Winding = iota
	WindingClockwise
	WindingCounterClockwise
)

func (w Winding) String() string {
	switch w {
	case WindingClockwise:
		return "clockwise"
	case WindingCounterClockwise:
		return "counterclockwise"
	}
	return "unknown"
}

// Options controls polygon validation. The zero value is not useful;
// start from PixelOptions or MeterOptions depending on the space the
// polygon lives in.
type Options struct {
	// Epsilon is the distance below which consecutive vertices are
	// merged. 1e-3 merges sub-millimeter slivers in meter space and
	// sub-thousandth-pixel slivers in image space.
	Epsilon float64

	// MinArea is the hard rejection threshold. Pixel-space footprints
	// use a larger minimum than meter-space ones because a few square
	// pixels is below anything a detector or human can draw on purpose.
	MinArea float64

	// MaxAspect is the bounding-box aspect ratio above which a warning
	// is attached. Extremely elongated footprints are usually tracing
	// mistakes.
	MaxAspect float64

	// IntersectCeiling caps the O(n²) self-intersection test; polygons
	// with more vertices skip it.
	IntersectCeiling int
}

// PixelOptions returns validation options for image-space polygons.
func PixelOptions() Options {
	return Options{Epsilon: 1e-3, MinArea: 10, MaxAspect: 50, IntersectCeiling: 256}
}

// MeterOptions returns validation options for world-space polygons.
func MeterOptions() Options {
	return Options{Epsilon: 1e-3, MinArea: 0.1, MaxAspect: 50, IntersectCeiling: 256}
}

// Meta describes what validation observed and changed.
type Meta struct {
	OriginalCount     int
	NormalizedCount   int
	Area              float64
	Winding           Winding
	Reversed          bool
	DuplicatesRemoved int
}

// Result carries the normalized polygon plus separate error and
// warning lists. Errors block further processing; warnings are
// informational, because detector-produced geometry is noisy and the
// pipeline must degrade gracefully rather than reject outright
// whenever validity is merely questionable.
type Result struct {
	Polygon  []Point
	Errors   []string
	Warnings []string
	Meta     Meta
}

// Valid reports whether the polygon is usable (no hard errors).
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// RemoveDuplicatePoints drops a vertex when its successor lies within
// eps of it (including the closing edge back to the first vertex). If
// fewer than 3 vertices would survive, the input is returned
// unchanged so the caller sees the original geometry in its error
// report.
func RemoveDuplicatePoints(pts []Point, eps float64) []Point {
	if len(pts) < 3 {
		return pts
	}
	out := make([]Point, 0, len(pts))
	for i, p := range pts {
		next := pts[(i+1)%len(pts)]
		if p.Distance(next) <= eps {
			continue
		}
		out = append(out, p)
	}
	if len(out) < 3 {
		return pts
	}
	return out
}

// ValidatePolygon cleans an arbitrary vertex list into a polygon safe
// for triangulation and shadow projection: duplicate removal, finite
// and area checks, self-intersection detection (warning only), and
// normalization to counter-clockwise winding.
func ValidatePolygon(pts []Point, opt Options) Result {
	res := Result{Meta: Meta{OriginalCount: len(pts), Winding: WindingUnknown}}

	if len(pts) < 3 {
		res.errorf("polygon needs at least 3 vertices, got %d", len(pts))
		return res
	}

	cleaned := RemoveDuplicatePoints(pts, opt.Epsilon)
	res.Meta.DuplicatesRemoved = len(pts) - len(cleaned)
	res.Meta.NormalizedCount = len(cleaned)

	for i, p := range cleaned {
		if !p.Finite() {
			res.errorf("vertex %d has non-finite coordinates (%v, %v)", i, p.X, p.Y)
			return res
		}
	}

	signed := SignedArea(cleaned)
	res.Meta.Area = math.Abs(signed)
	if res.Meta.Area < opt.MinArea {
		res.errorf("polygon area %.4f is below minimum %.4f", res.Meta.Area, opt.MinArea)
		return res
	}

	if SelfIntersects(cleaned, opt.IntersectCeiling) {
		res.warnf("polygon has self-intersecting edges; results may be approximate")
	}

	if signed < 0 {
		res.Meta.Winding = WindingClockwise
		rev := make([]Point, len(cleaned))
		for i, p := range cleaned {
			rev[len(cleaned)-1-i] = p
		}
		cleaned = rev
		res.Meta.Reversed = true
	} else {
		res.Meta.Winding = WindingCounterClockwise
	}

	if opt.MaxAspect > 0 {
		min, max := BoundingBox(cleaned)
		w, h := max.X-min.X, max.Y-min.Y
		long, short := math.Max(w, h), math.Min(w, h)
		if short > 0 && long/short > opt.MaxAspect {
			res.warnf("bounding-box aspect ratio %.1f exceeds %.1f", long/short, opt.MaxAspect)
		}
	}

	res.Polygon = cleaned
	return res
}
