package geo

import (
	"math"
	"strings"
	"testing"
)

func TestValidatePolygonRejectsDegenerate(t *testing.T) {
	cases := []struct {
		name string
		pts  []Point
		want string // substring of the expected error
	}{
		{"too few", []Point{{0, 0}, {1, 1}}, "at least 3"},
		{"zero area", []Point{{0, 0}, {1, 1}, {2, 2}}, "below minimum"},
		{"nan coordinate", []Point{{0, 0}, {10, 0}, {math.NaN(), 10}}, "non-finite"},
		{"inf coordinate", []Point{{0, 0}, {10, 0}, {math.Inf(1), 10}}, "non-finite"},
		{"tiny", []Point{{0, 0}, {0.1, 0}, {0.1, 0.1}}, "below minimum"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := ValidatePolygon(c.pts, MeterOptions())
			if res.Valid() {
				t.Fatalf("expected rejection, got valid result %+v", res)
			}
			found := false
			for _, e := range res.Errors {
				if strings.Contains(e, c.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention %q", res.Errors, c.want)
			}
		})
	}
}

func TestValidatePolygonNormalizesWinding(t *testing.T) {
	cw := []Point{{0, 4}, {4, 4}, {4, 0}, {0, 0}}
	res := ValidatePolygon(cw, MeterOptions())
	if !res.Valid() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.Meta.Winding != WindingClockwise || !res.Meta.Reversed {
		t.Errorf("meta %+v, want clockwise input reversed", res.Meta)
	}
	if SignedArea(res.Polygon) <= 0 {
		t.Error("normalized polygon is not counter-clockwise")
	}

	ccw := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	res = ValidatePolygon(ccw, MeterOptions())
	if res.Meta.Reversed {
		t.Error("counter-clockwise input should not be reversed")
	}
}

func TestValidatePolygonRemovesDuplicates(t *testing.T) {
	pts := []Point{{0, 0}, {0.0001, 0.0002}, {4, 0}, {4, 4}, {4, 4}, {0, 4}}
	res := ValidatePolygon(pts, MeterOptions())
	if !res.Valid() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.Meta.DuplicatesRemoved != 2 {
		t.Errorf("removed %d duplicates, want 2", res.Meta.DuplicatesRemoved)
	}
	if res.Meta.NormalizedCount != 4 {
		t.Errorf("normalized count %d, want 4", res.Meta.NormalizedCount)
	}
}

func TestRemoveDuplicatePointsKeepsDegenerateInput(t *testing.T) {
	// If fewer than 3 vertices would survive, the input comes back
	// unchanged for error reporting.
	pts := []Point{{0, 0}, {0, 0}, {0, 0}, {1, 1}}
	got := RemoveDuplicatePoints(pts, 1e-3)
	if len(got) != len(pts) {
		t.Errorf("got %d points, want original %d", len(got), len(pts))
	}
}

func TestValidatePolygonSelfIntersectionIsWarning(t *testing.T) {
	// Asymmetric so the crossing does not cancel the shoelace area.
	crossed := []Point{{0, 0}, {10, 0}, {0, 4}, {6, 8}}
	res := ValidatePolygon(crossed, MeterOptions())
	if !res.Valid() {
		t.Fatalf("self-intersection must not be a hard error, got %v", res.Errors)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a self-intersection warning")
	}
}

func TestValidatePolygonAspectWarning(t *testing.T) {
	sliver := []Point{{0, 0}, {1000, 0}, {1000, 1}, {0, 1}}
	res := ValidatePolygon(sliver, MeterOptions())
	if !res.Valid() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected an aspect-ratio warning")
	}
}

func TestPixelOptionsStricterThanMeter(t *testing.T) {
	if PixelOptions().MinArea <= MeterOptions().MinArea {
		t.Error("pixel-space minimum area should exceed meter-space minimum")
	}
}
