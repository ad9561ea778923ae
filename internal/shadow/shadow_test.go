package shadow

import (
	"math"
	"testing"

	"github.com/sunpatch/sunpatch/internal/geo"
	"github.com/sunpatch/sunpatch/internal/site"
	"github.com/sunpatch/sunpatch/internal/sun"
)

func box(id string, cx, cy, half float64, floors int) site.Building {
	return site.Building{
		ID:          id,
		Footprint:   []geo.Point{{X: cx - half, Y: cy - half}, {X: cx + half, Y: cy - half}, {X: cx + half, Y: cy + half}, {X: cx - half, Y: cy + half}},
		Floors:      floors,
		FloorHeight: 3,
	}
}

func deg(d float64) float64 { return d * math.Pi / 180 }

// maxShadowReach measures the farthest shadow vertex from the
// footprint centroid.
func maxShadowReach(p Polygon, b site.Building) float64 {
	c := geo.Centroid(b.Footprint)
	reach := 0.0
	for _, v := range p.Vertices {
		if d := c.Distance(v); d > reach {
			reach = d
		}
	}
	return reach
}

func TestNoShadowConditions(t *testing.T) {
	calc := NewCalculator()
	b := box("a", 0, 0, 5, 5) // 15 m tall

	if p := calc.ShadowPolygon(b, sun.Position{Altitude: -0.1, Azimuth: deg(180)}, 0); !p.Empty() {
		t.Error("sun below horizon should cast no shadow")
	}
	if p := calc.ShadowPolygon(b, sun.Position{Altitude: 0, Azimuth: deg(180)}, 0); !p.Empty() {
		t.Error("sun at the horizon should cast no shadow")
	}
	if p := calc.ShadowPolygon(b, sun.Position{Altitude: deg(45), Azimuth: deg(180)}, 15); !p.Empty() {
		t.Error("target at the building's full height should see no shadow")
	}
	if p := calc.ShadowPolygon(b, sun.Position{Altitude: deg(45), Azimuth: deg(180)}, 20); !p.Empty() {
		t.Error("target above the building should see no shadow")
	}
}

func TestShadowLengthMonotonicity(t *testing.T) {
	b := box("a", 0, 0, 5, 5)
	prev := -1.0
	// Lower sun, longer shadow.
	for _, alt := range []float64{60, 45, 30, 15, 5} {
		calc := NewCalculator()
		p := calc.ShadowPolygon(b, sun.Position{Altitude: deg(alt), Azimuth: deg(180)}, 0)
		reach := maxShadowReach(p, b)
		if reach <= prev {
			t.Errorf("altitude %v°: reach %v not greater than %v at higher sun", alt, reach, prev)
		}
		prev = reach
	}
}

func TestShadowDirectionality(t *testing.T) {
	calc := NewCalculator()
	b := box("a", 0, 0, 5, 5)

	// Sun in the east (azimuth 90°) casts a shadow extending west
	// (negative X).
	east := calc.ShadowPolygon(b, sun.Position{Altitude: deg(30), Azimuth: deg(90)}, 0)
	min, _ := geo.BoundingBox(east.Vertices)
	if min.X >= -5 {
		t.Errorf("east sun: shadow min X %v, want < -5", min.X)
	}

	// Sun in the west (azimuth 270°) casts east (positive X).
	west := calc.ShadowPolygon(b, sun.Position{Altitude: deg(30), Azimuth: deg(270)}, 0)
	_, max := geo.BoundingBox(west.Vertices)
	if max.X <= 5 {
		t.Errorf("west sun: shadow max X %v, want > 5", max.X)
	}

	// Sun in the south (azimuth 180°) casts north: negative Y in the
	// X-east/Y-south world frame.
	south := calc.ShadowPolygon(b, sun.Position{Altitude: deg(30), Azimuth: deg(180)}, 0)
	smin, _ := geo.BoundingBox(south.Vertices)
	if smin.Y >= -5 {
		t.Errorf("south sun: shadow min Y %v, want < -5", smin.Y)
	}
}

func TestShadowLength45(t *testing.T) {
	calc := NewCalculator()
	b := box("a", 0, 0, 5, 5) // 15 m
	// At 45° altitude the shadow length equals the effective height.
	p := calc.ShadowPolygon(b, sun.Position{Altitude: deg(45), Azimuth: deg(90)}, 3)
	min, _ := geo.BoundingBox(p.Vertices)
	if math.Abs(min.X-(-5-12)) > 1e-9 {
		t.Errorf("shadow extends to X=%v, want -17", min.X)
	}
}

func TestPointInShadow(t *testing.T) {
	calc := NewCalculator()
	tall := box("tall", 0, 0, 5, 10)  // 30 m
	short := box("short", 30, 0, 5, 1) // 3 m
	buildings := []site.Building{tall, short}

	// Sun in the west: tall building shades points to its east.
	pos := sun.Position{Altitude: deg(30), Azimuth: deg(270)}
	if !calc.PointInShadow(geo.Point{X: 15, Y: 0}, buildings, pos, "short", 0) {
		t.Error("point east of the tall building should be shadowed at ground level")
	}
	if calc.PointInShadow(geo.Point{X: -15, Y: 0}, buildings, pos, "short", 0) {
		t.Error("point west of the tall building should be sunlit")
	}

	// Self-shadowing is excluded by id.
	if calc.PointInShadow(geo.Point{X: 2, Y: 0}, buildings, pos, "tall", 29) {
		t.Error("building must not shadow itself")
	}

	// A short obstructor cannot shade a level above its own height.
	if calc.PointInShadow(geo.Point{X: 36, Y: 0}, []site.Building{short}, pos, "", 10) {
		t.Error("3 m building cannot shade a 10 m level")
	}

	// Below the horizon everything is shadowed.
	if !calc.PointInShadow(geo.Point{X: 1000, Y: 1000}, buildings, sun.Position{Altitude: -0.2}, "", 0) {
		t.Error("sun below horizon shadows everything")
	}
}

func TestPointInShadowSouthSun(t *testing.T) {
	calc := NewCalculator()
	b := box("a", 0, 0, 5, 10) // 30 m
	buildings := []site.Building{b}

	// Midday sun from due south (azimuth 180°) throws the shadow due
	// north. At 35° altitude the shadow is 30/tan(35°) ≈ 42.8 m long,
	// so the whole strip from the north wall to about Y = -47 is dark.
	pos := sun.Position{Altitude: deg(35), Azimuth: deg(180)}
	for _, y := range []float64{-10, -20, -30, -40} {
		if !calc.PointInShadow(geo.Point{X: 0, Y: y}, buildings, pos, "", 0) {
			t.Errorf("point (0, %v) inside the southern-sun shadow reported sunlit", y)
		}
	}
	if calc.PointInShadow(geo.Point{X: 0, Y: -55}, buildings, pos, "", 0) {
		t.Error("point beyond the shadow tip should be sunlit")
	}
	if calc.PointInShadow(geo.Point{X: 10, Y: -20}, buildings, pos, "", 0) {
		t.Error("point east of the shadow strip should be sunlit")
	}

	// Sun from due north (azimuth 0°) throws the strip south instead.
	north := sun.Position{Altitude: deg(35), Azimuth: deg(0)}
	if !calc.PointInShadow(geo.Point{X: 0, Y: 20}, buildings, north, "", 0) {
		t.Error("north sun: point south of the building should be shadowed")
	}
	if calc.PointInShadow(geo.Point{X: 0, Y: -20}, buildings, north, "", 0) {
		t.Error("north sun: point north of the building should be sunlit")
	}
}

func TestShadowOutlineIsSimple(t *testing.T) {
	calc := NewCalculator()
	b := box("a", 0, 0, 5, 10)

	// The outline must be a simple polygon at every bearing; a
	// self-crossing outline breaks the even-odd containment test.
	for az := 0.0; az < 360; az += 15 {
		p := calc.ShadowPolygon(b, sun.Position{Altitude: deg(35), Azimuth: deg(az)}, 0)
		if p.Empty() {
			t.Fatalf("azimuth %v°: no shadow", az)
		}
		if geo.SelfIntersects(p.Vertices, 0) {
			t.Errorf("azimuth %v°: outline self-intersects: %v", az, p.Vertices)
		}
		calc.Clear()
	}
}

func TestCoverage(t *testing.T) {
	calc := NewCalculator()
	target := box("t", 12, 0, 2, 1)
	tall := box("tall", 0, 0, 5, 20) // 60 m, just west of the target
	pos := sun.Position{Altitude: deg(20), Azimuth: deg(270)}

	cov := calc.Coverage(target, []site.Building{target, tall}, pos, 0, 10)
	if cov <= 50 {
		t.Errorf("coverage %v%%, want most of the target shadowed", cov)
	}

	// No obstructors above the target level.
	low := box("low", 0, 0, 5, 1)
	if cov := calc.Coverage(target, []site.Building{target, low}, pos, 10, 10); cov != 0 {
		t.Errorf("coverage %v%%, want 0 with no capable obstructor", cov)
	}

	// Below horizon: fully shadowed.
	if cov := calc.Coverage(target, []site.Building{target, tall}, sun.Position{Altitude: -0.1}, 0, 10); cov != 100 {
		t.Errorf("coverage %v%%, want 100 below horizon", cov)
	}

	// Degenerate footprint.
	degen := site.Building{ID: "d", Footprint: []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Floors: 1, FloorHeight: 3}
	if cov := calc.Coverage(degen, []site.Building{degen, tall}, pos, 0, 10); cov != 0 {
		t.Errorf("coverage %v%%, want 0 for degenerate footprint", cov)
	}
}

func TestCacheStableWithinTolerance(t *testing.T) {
	calc := NewCalculator()
	b := box("a", 0, 0, 5, 5)
	pos := sun.Position{Altitude: deg(40), Azimuth: deg(200)}

	first := calc.ShadowPolygon(b, pos, 0)

	// Nudge the sun by less than the 0.5° tolerance: the cached
	// polygon (computed for the old position) comes back verbatim.
	nudged := sun.Position{Altitude: pos.Altitude + deg(0.2), Azimuth: pos.Azimuth}
	second := calc.ShadowPolygon(b, nudged, 0)
	if &first.Vertices[0] != &second.Vertices[0] {
		t.Error("sub-tolerance sun movement should reuse the cached polygon")
	}

	// Move past the tolerance: recomputed.
	moved := sun.Position{Altitude: pos.Altitude + deg(1), Azimuth: pos.Azimuth}
	third := calc.ShadowPolygon(b, moved, 0)
	if &first.Vertices[0] == &third.Vertices[0] {
		t.Error("sun movement past tolerance should invalidate the cache")
	}

	// Clear drops everything.
	calc.Clear()
	fourth := calc.ShadowPolygon(b, nudged, 0)
	if &first.Vertices[0] == &fourth.Vertices[0] {
		t.Error("Clear should force recomputation")
	}
}

func TestInvalidateBuilding(t *testing.T) {
	calc := NewCalculator()
	a := box("a", 0, 0, 5, 5)
	b := box("b", 20, 0, 5, 5)
	pos := sun.Position{Altitude: deg(40), Azimuth: deg(200)}

	pa := calc.ShadowPolygon(a, pos, 0)
	pb := calc.ShadowPolygon(b, pos, 0)
	calc.Invalidate("a")

	if &pa.Vertices[0] == &calc.ShadowPolygon(a, pos, 0).Vertices[0] {
		t.Error("invalidated building should be recomputed")
	}
	if &pb.Vertices[0] != &calc.ShadowPolygon(b, pos, 0).Vertices[0] {
		t.Error("other buildings should keep their cache entries")
	}
}
