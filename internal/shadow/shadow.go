// Package shadow projects building footprints into ground shadows and
// answers point-in-shadow and coverage queries for a given sun
// position.
package shadow

import (
	"math"

	"github.com/sunpatch/sunpatch/internal/geo"
	"github.com/sunpatch/sunpatch/internal/site"
	"github.com/sunpatch/sunpatch/internal/sun"
)

// AngleTolerance is how far the sun may move, in radians, before a
// cached shadow polygon is considered stale (0.5°).
const AngleTolerance = 0.5 * math.Pi / 180

// Polygon is the derived shadow outline cast by one building at one
// height level. An outline with fewer than 3 vertices means no shadow.
type Polygon struct {
	BuildingID     string
	Vertices       []geo.Point
	BuildingHeight float64
}

// Empty reports whether the building casts no shadow.
func (p Polygon) Empty() bool { return len(p.Vertices) < 3 }

type cacheKey struct {
	buildingID   string
	targetHeight float64
}

type cacheEntry struct {
	pos  sun.Position
	poly Polygon
}

// Calculator computes and caches shadow polygons. The cache is keyed
// by (building, target height) and invalidated when the sun moves more
// than AngleTolerance or on an explicit Clear. A Calculator is an
// explicitly owned instance, not a process singleton; it is not safe
// for concurrent mutation, so parallel batch runs use one per worker.
type Calculator struct {
	cache map[cacheKey]cacheEntry
}

// NewCalculator returns an empty calculator.
func NewCalculator() *Calculator {
	return &Calculator{cache: make(map[cacheKey]cacheEntry)}
}

// Clear drops every cached shadow polygon. The engine calls this at
// the start of each analysis run.
func (c *Calculator) Clear() {
	for k := range c.cache {
		delete(c.cache, k)
	}
}

// Invalidate drops cached shadows for one building, for use when its
// geometry or height changes between runs.
func (c *Calculator) Invalidate(buildingID string) {
	for k := range c.cache {
		if k.buildingID == buildingID {
			delete(c.cache, k)
		}
	}
}

// angleClose reports whether two sun positions are within
// AngleTolerance of each other in both altitude and azimuth.
func angleClose(a, b sun.Position) bool {
	if math.Abs(a.Altitude-b.Altitude) > AngleTolerance {
		return false
	}
	d := math.Abs(a.Azimuth - b.Azimuth)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d <= AngleTolerance
}

// ShadowPolygon returns the shadow the building casts onto the plane
// at targetHeight, for a world-space footprint. The result is empty
// when the sun is at or below the horizon or the building does not
// rise above the target plane.
//
// The outline is the convex hull of the footprint and its projected
// copy. For convex footprints that is exactly the region the extrusion
// sweeps over the target plane; a strongly concave footprint is
// overestimated by its hull, which downstream coverage scores are
// calibrated against.
func (c *Calculator) ShadowPolygon(b site.Building, pos sun.Position, targetHeight float64) Polygon {
	if pos.Altitude <= 0 || b.TotalHeight() <= targetHeight || len(b.Footprint) < 3 {
		return Polygon{BuildingID: b.ID, BuildingHeight: b.TotalHeight()}
	}

	key := cacheKey{b.ID, targetHeight}
	if e, ok := c.cache[key]; ok && angleClose(e.pos, pos) {
		return e.poly
	}

	effective := b.TotalHeight() - targetHeight
	length := effective / math.Tan(pos.Altitude)

	// Unit vector opposite the sun, in world coordinates (X east,
	// Y south). The sun's horizontal direction is (sin az, -cos az).
	dir := geo.Point{X: -math.Sin(pos.Azimuth), Y: math.Cos(pos.Azimuth)}
	offset := dir.Scale(length)

	pts := make([]geo.Point, 0, 2*len(b.Footprint))
	pts = append(pts, b.Footprint...)
	for _, p := range b.Footprint {
		pts = append(pts, p.Add(offset))
	}
	verts := geo.ConvexHull(pts)

	poly := Polygon{BuildingID: b.ID, Vertices: verts, BuildingHeight: b.TotalHeight()}
	c.cache[key] = cacheEntry{pos: pos, poly: poly}
	return poly
}

// PointInShadow reports whether pt (world space) is shadowed at
// targetHeight. The sun below the horizon shadows everything. A
// building never shadows itself (excludeID), and buildings that do not
// rise above the target plane are skipped as geometrically unable to
// cast a shadow onto it.
func (c *Calculator) PointInShadow(pt geo.Point, buildings []site.Building, pos sun.Position, excludeID string, targetHeight float64) bool {
	if pos.Altitude <= 0 {
		return true
	}
	for _, b := range buildings {
		if b.ID == excludeID || b.TotalHeight() <= targetHeight {
			continue
		}
		poly := c.ShadowPolygon(b, pos, targetHeight)
		if poly.Empty() {
			continue
		}
		if geo.ContainsPoint(poly.Vertices, pt) {
			return true
		}
	}
	return false
}

// Coverage returns the percentage of the target footprint that is
// shadowed at targetHeight, estimated by grid-sampling the footprint's
// bounding box at density² points and keeping only samples inside the
// footprint. Below the horizon it is 100; with a degenerate footprint
// or no building capable of obstructing it is 0.
func (c *Calculator) Coverage(target site.Building, buildings []site.Building, pos sun.Position, targetHeight float64, density int) float64 {
	if len(target.Footprint) < 3 {
		return 0
	}
	if pos.Altitude <= 0 {
		return 100
	}
	obstructors := false
	for _, b := range buildings {
		if b.ID != target.ID && b.TotalHeight() > targetHeight {
			obstructors = true
			break
		}
	}
	if !obstructors {
		return 0
	}
	if density < 2 {
		density = 2
	}

	min, max := geo.BoundingBox(target.Footprint)
	stepX := (max.X - min.X) / float64(density-1)
	stepY := (max.Y - min.Y) / float64(density-1)

	inside, shadowed := 0, 0
	for i := 0; i < density; i++ {
		for j := 0; j < density; j++ {
			pt := geo.Point{X: min.X + float64(i)*stepX, Y: min.Y + float64(j)*stepY}
			if !geo.ContainsPoint(target.Footprint, pt) {
				continue
			}
			inside++
			if c.PointInShadow(pt, buildings, pos, target.ID, targetHeight) {
				shadowed++
			}
		}
	}
	if inside == 0 {
		return 0
	}
	return 100 * float64(shadowed) / float64(inside)
}
