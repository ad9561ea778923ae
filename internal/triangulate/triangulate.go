// Package triangulate converts validated simple polygons into triangle
// index lists via ear clipping, and provides the area-conservation
// oracle used to verify the result.
package triangulate

import (
	"errors"
	"fmt"
	"math"

	earcut "github.com/rclancey/go-earcut"

	"github.com/sunpatch/sunpatch/internal/geo"
)

var (
	// ErrTooFewVertices means the outer ring had fewer than 3 vertices.
	ErrTooFewVertices = errors.New("triangulate: polygon has fewer than 3 vertices")
	// ErrNoTriangles means ear clipping produced an empty result, which
	// happens for pathological (fully degenerate) input.
	ErrNoTriangles = errors.New("triangulate: ear clipping produced no triangles")
	// ErrIndexCount means the index list length is not a multiple of 3.
	ErrIndexCount = errors.New("triangulate: index count is not a multiple of 3")
	// ErrIndexRange means a triangle index points outside the vertex list.
	ErrIndexRange = errors.New("triangulate: index out of range")
)

// Polygon triangulates the outer ring with optional interior holes and
// returns a flat triangle index list. Indices refer to the
// concatenation of outer ring and hole vertices, in order. Each failure
// mode is a distinct error, never a silent empty result.
func Polygon(outer []geo.Point, holes ...[]geo.Point) ([]int, error) {
	if len(outer) < 3 {
		return nil, fmt.Errorf("%w (got %d)", ErrTooFewVertices, len(outer))
	}

	total := len(outer)
	for _, h := range holes {
		total += len(h)
	}
	data := make([]float64, 0, total*2)
	for _, p := range outer {
		data = append(data, p.X, p.Y)
	}
	var holeIndices []int
	offset := len(outer)
	for _, h := range holes {
		holeIndices = append(holeIndices, offset)
		for _, p := range h {
			data = append(data, p.X, p.Y)
		}
		offset += len(h)
	}

	indices, err := earcut.Earcut(data, holeIndices, 2)
	if err != nil {
		return nil, fmt.Errorf("triangulate: ear clipping failed: %w", err)
	}
	if len(indices) == 0 {
		return nil, ErrNoTriangles
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w (got %d indices)", ErrIndexCount, len(indices))
	}
	for _, idx := range indices {
		if idx < 0 || idx >= total {
			return nil, fmt.Errorf("%w (index %d, %d vertices)", ErrIndexRange, idx, total)
		}
	}
	return indices, nil
}

// Validation compares the triangulated area against the polygon's
// shoelace area.
type Validation struct {
	Valid         bool
	PolygonArea   float64
	TriangleArea  float64
	RelativeError float64
}

// Validate recomputes total triangulated area via the cross-product
// formula and compares it with the polygon's shoelace area. It flags
// the triangulation invalid when the relative error exceeds tol
// (pass 0 for the default 1%). This is the correctness oracle for
// hole-free polygons; with holes the reference area is the outer ring
// minus the holes and the caller must supply it themselves.
func Validate(pts []geo.Point, indices []int, tol float64) Validation {
	if tol <= 0 {
		tol = 0.01
	}
	v := Validation{PolygonArea: geo.Area(pts)}
	for i := 0; i+2 < len(indices); i += 3 {
		v.TriangleArea += triangleArea(pts[indices[i]], pts[indices[i+1]], pts[indices[i+2]])
	}
	if v.PolygonArea > 0 {
		v.RelativeError = math.Abs(v.TriangleArea-v.PolygonArea) / v.PolygonArea
	} else if v.TriangleArea > 0 {
		v.RelativeError = 1
	}
	v.Valid = v.RelativeError <= tol
	return v
}

func triangleArea(a, b, c geo.Point) float64 {
	return math.Abs((b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X)) / 2
}

// TriangleQuality rates triangle shape on [0, 1]: 1 for equilateral,
// approaching 0 for degenerate slivers. The measure is the normalized
// ratio of area to squared edge length (4√3·A / Σl²).
func TriangleQuality(a, b, c geo.Point) float64 {
	area := triangleArea(a, b, c)
	l2 := sq(a.Distance(b)) + sq(b.Distance(c)) + sq(c.Distance(a))
	if l2 == 0 {
		return 0
	}
	return 4 * math.Sqrt(3) * area / l2
}

func sq(x float64) float64 { return x * x }

// Quality aggregates per-triangle shape ratings for a triangulation.
// It is advisory, for diagnosing poor input geometry, and never blocks.
type Quality struct {
	Count   int
	Min     float64
	Mean    float64
	Slivers int // triangles with quality below 0.1
}

// AnalyzeQuality rates every triangle in the triangulation.
func AnalyzeQuality(pts []geo.Point, indices []int) Quality {
	q := Quality{Min: 1}
	var sum float64
	for i := 0; i+2 < len(indices); i += 3 {
		tq := TriangleQuality(pts[indices[i]], pts[indices[i+1]], pts[indices[i+2]])
		q.Count++
		sum += tq
		if tq < q.Min {
			q.Min = tq
		}
		if tq < 0.1 {
			q.Slivers++
		}
	}
	if q.Count == 0 {
		q.Min = 0
		return q
	}
	q.Mean = sum / float64(q.Count)
	return q
}
