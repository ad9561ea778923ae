package analysis

import (
	"testing"
	"time"

	"github.com/sunpatch/sunpatch/internal/site"
)

func score(sunHours, peak float64, sc site.Scenario) ComfortResults {
	sl := SunlightResults{DirectHours: sunHours, TotalHours: sunHours}
	so := SolarResults{PeakIrradiance: peak}
	return comfortScore(sl, so, sc)
}

func TestComfortScoreBounds(t *testing.T) {
	scenarios := []site.Scenario{
		site.DefaultScenario(),
		{Glazing: site.Glazing{Type: site.GlazingSingle}, Shading: site.Shading{Position: site.ShadingNone}},
		{Glazing: site.Glazing{Type: site.GlazingLowE},
			Shading: site.Shading{Position: site.ShadingExterior},
			Window:  site.Window{State: site.WindowOpen, VentilationFactor: 1}},
	}
	for _, sc := range scenarios {
		for _, hours := range []float64{0, 1, 3, 5, 8, 12, 16} {
			for _, peak := range []float64{0, 300, 650, 750, 900, 1200} {
				c := score(hours, peak, sc)
				if c.Score < 0 || c.Score > 100 {
					t.Errorf("score %v outside [0, 100] for hours=%v peak=%v", c.Score, hours, peak)
				}
				// Risk tier matches the documented thresholds.
				want := RiskHigh
				if c.Score >= 70 {
					want = RiskLow
				} else if c.Score >= 40 {
					want = RiskMedium
				}
				if c.Risk != want {
					t.Errorf("risk %v for score %v, want %v", c.Risk, c.Score, want)
				}
			}
		}
	}
}

func TestComfortScoreComponents(t *testing.T) {
	base := site.DefaultScenario() // double glazing: +2

	// Base 70, ideal band bonus +10, glazing +2.
	if c := score(5, 300, base); c.Score != 82 {
		t.Errorf("ideal-band score %v, want 82", c.Score)
	}
	// Under 2 h: −20.
	if c := score(1, 300, base); c.Score != 52 {
		t.Errorf("low-sun score %v, want 52", c.Score)
	}
	// Over 8 h: −3 per extra hour, capped at −15.
	if c := score(10, 300, base); c.Score != 66 {
		t.Errorf("overexposure score %v, want 66", c.Score)
	}
	if c := score(16, 300, base); c.Score != 57 {
		t.Errorf("capped overexposure score %v, want 57", c.Score)
	}
	// Peak penalties.
	if c := score(5, 650, base); c.Score != 72 {
		t.Errorf("high-peak score %v, want 72", c.Score)
	}
	if c := score(5, 900, base); c.Score != 67 {
		t.Errorf("extreme-peak score %v, want 67", c.Score)
	}
}

func TestComfortShadingAndVentilation(t *testing.T) {
	sc := site.DefaultScenario()
	sc.Shading = site.Shading{Position: site.ShadingExterior, ReductionFactor: 0.4}

	// Shading bonus only applies beyond 4 h of sun: (1−0.4)·15 = 9.
	with := score(5, 300, sc)
	without := score(3, 300, sc)
	if with.Score != 82+9 {
		t.Errorf("shaded score %v, want 91", with.Score)
	}
	if without.Score != 72 {
		t.Errorf("short-day shaded score %v, want 72 (no shading bonus)", without.Score)
	}

	// Ventilation bonus drops to 30% effect during intense heat.
	vent := site.DefaultScenario()
	vent.Window = site.Window{State: site.WindowOpen, VentilationFactor: 1}
	mild := score(5, 300, vent)
	hot := score(5, 750, vent)
	if mild.Score != 92 {
		t.Errorf("ventilated mild score %v, want 92", mild.Score)
	}
	// 70 +10 (ideal) −10 (peak>600) +2 (double) +3 (vent·0.3) = 75.
	if hot.Score != 75 {
		t.Errorf("ventilated hot score %v, want 75", hot.Score)
	}
}

func TestRecommendationsTriggers(t *testing.T) {
	day := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	sl := SunlightResults{
		DirectHours: 8,
		FirstSun:    at(7),
		LastSun:     at(17),
		Blocks: []SunBlock{
			{Start: at(7), End: at(11), Hours: 4},
			{Start: at(13), End: at(17), Hours: 4.25},
		},
	}
	so := SolarResults{PeakIrradiance: 700, PeakTime: at(13), DailyIrradiation: 5000}
	sc := site.Scenario{
		Glazing: site.Glazing{Type: site.GlazingSingle},
		Window:  site.Window{State: site.WindowOpen, VentilationFactor: 0.8},
	}

	recs := recommend(sl, so, sc)
	kinds := map[RecommendationKind]Recommendation{}
	for _, r := range recs {
		kinds[r.Kind] = r
	}

	best, ok := kinds[RecBestLight]
	if !ok {
		t.Fatal("missing best-light recommendation")
	}
	if !best.Start.Equal(at(13)) {
		t.Errorf("best-light window starts %v, want the longer block at 13:00", best.Start)
	}
	if _, ok := kinds[RecVentilate]; !ok {
		t.Error("missing ventilation recommendation")
	}
	if _, ok := kinds[RecShade]; !ok {
		t.Error("missing shading recommendation (peak 700 > 600)")
	}
	if g, ok := kinds[RecGlare]; !ok {
		t.Error("missing glare recommendation for the 14:00–18:00 band")
	} else if g.Start.Hour() != 14 || g.End.Hour() != 17 {
		t.Errorf("glare window [%v, %v], want clipped to [14:00, 17:00]", g.Start, g.End)
	}
	if _, ok := kinds[RecGlazingUpgrade]; !ok {
		t.Error("missing glazing-upgrade recommendation (single glazing, 5000 Wh/m²)")
	}

	// No sun, no required recommendations.
	if recs := recommend(SunlightResults{}, SolarResults{}, sc); len(recs) != 0 {
		t.Errorf("expected no recommendations without sun, got %v", recs)
	}
}

func TestYearBatch(t *testing.T) {
	if testing.Short() {
		t.Skip("year batch is slow")
	}
	p := singleBuildingParams()
	p.Interval = 2 * time.Hour // coarse grid keeps the test quick
	results := Year(p, 2024, 4)
	if len(results) != 366 {
		t.Fatalf("got %d daily results, want 366 (leap year)", len(results))
	}
	for i, r := range results {
		if r.Comfort.Score < 0 || r.Comfort.Score > 100 {
			t.Fatalf("day %d: comfort %v outside [0, 100]", i, r.Comfort.Score)
		}
	}
	// June beats December.
	jun := results[172] // 2024-06-21
	dec := results[355] // 2024-12-21
	if jun.Sunlight.TotalHours <= dec.Sunlight.TotalHours {
		t.Errorf("solstice ordering violated: %v vs %v", jun.Sunlight.TotalHours, dec.Sunlight.TotalHours)
	}
}
