package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/sunpatch/sunpatch/internal/sun"
)

// Ray is a half-line in the 3D world frame.
type Ray struct {
	Origin r3.Vec
	Dir    r3.Vec // Must be normalized
}

// SunRay returns the ray from origin toward the sun. In the world
// frame the sun's horizontal bearing (clockwise from north) has east
// component sin(az) and south component -cos(az).
func SunRay(origin r3.Vec, pos sun.Position) Ray {
	return Ray{
		Origin: origin,
		Dir: r3.Unit(r3.Vec{
			X: math.Sin(pos.Azimuth) * math.Cos(pos.Altitude),
			Y: -math.Cos(pos.Azimuth) * math.Cos(pos.Altitude),
			Z: math.Sin(pos.Altitude),
		}),
	}
}

// IntersectMesh returns the nearest intersection distance along the
// ray, if any.
func (r *Ray) IntersectMesh(m *Mesh) (t float64, ok bool) {
	var tri r3.Triangle
	var minT float64
	haveMin := false
	for _, idxs := range m.Tris {
		for i, idx := range idxs {
			v := m.Verts[idx]
			tri[i] = r3.Vec{X: v[0], Y: v[1], Z: v[2]}
		}
		t, ok := r.IntersectTriangle(&tri)
		if !ok {
			continue
		}
		if !haveMin || t < minT {
			minT, haveMin = t, true
		}
	}
	return minT, haveMin
}

// IntersectTriangle implements Möller–Trumbore ray/triangle
// intersection.
func (r *Ray) IntersectTriangle(tri *r3.Triangle) (t float64, ok bool) {
	const epsilon = 0.0000001
	edge1 := r3.Sub(tri[1], tri[0])
	edge2 := r3.Sub(tri[2], tri[0])
	h := r3.Cross(r.Dir, edge2)
	det := r3.Dot(edge1, h)
	// A near-zero determinant means the ray is parallel to the plane
	// of the triangle. Unlike a renderer we accept hits on either
	// face, since walls must occlude from both sides.
	if det > -epsilon && det < epsilon {
		return 0, false
	}
	invDet := 1 / det
	s := r3.Sub(r.Origin, tri[0])
	u := invDet * r3.Dot(s, h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := r3.Cross(s, edge1)
	v := invDet * r3.Dot(r.Dir, q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = invDet * r3.Dot(edge2, q)
	if t < epsilon {
		// Line intersection behind the origin, not a ray intersection.
		return 0, false
	}
	return t, true
}

// PointLit reports whether a point sees the sun directly, i.e. the ray
// toward the sun escapes the site mesh. Used as a 3D cross-check of
// the 2D shadow projection.
func PointLit(m *Mesh, origin r3.Vec, pos sun.Position) bool {
	if pos.Altitude <= 0 {
		return false
	}
	ray := SunRay(origin, pos)
	_, hit := ray.IntersectMesh(m)
	return !hit
}
