package analysis

import (
	"time"

	"github.com/sunpatch/sunpatch/internal/site"
)

// Recommendation triggers.
const (
	glareIrradiance  = 400  // W/m²
	highDailyLoad    = 4000 // Wh/m²
	shadePeakTrigger = peakHighThreshold
	glareWindowStart = 14 // local hour
	glareWindowEnd   = 18
)

// recommend derives structured advice records from the final
// aggregates. It is a pure function: same aggregates and scenario,
// same records. The only contract is that the list is non-empty
// whenever there was any direct sun; everything else is advisory.
func recommend(sl SunlightResults, so SolarResults, sc site.Scenario) []Recommendation {
	var recs []Recommendation

	if sl.DirectHours > 0 && len(sl.Blocks) > 0 {
		best := sl.Blocks[0]
		for _, b := range sl.Blocks[1:] {
			if b.Hours > best.Hours {
				best = b
			}
		}
		recs = append(recs, Recommendation{
			Kind:  RecBestLight,
			Start: best.Start,
			End:   best.End,
			Value: best.Hours,
		})
	}

	if sc.Window.VentilationFactor > 0 && !so.PeakTime.IsZero() && sl.DirectHours > 0 {
		// Air the space before the heat peak arrives.
		recs = append(recs, Recommendation{
			Kind:  RecVentilate,
			Start: so.PeakTime.Add(-2 * time.Hour),
			End:   so.PeakTime.Add(-30 * time.Minute),
			Value: so.PeakIrradiance,
		})
	}

	if so.PeakIrradiance > shadePeakTrigger && !so.PeakTime.IsZero() {
		recs = append(recs, Recommendation{
			Kind:  RecShade,
			Start: so.PeakTime.Add(-90 * time.Minute),
			End:   so.PeakTime.Add(90 * time.Minute),
			Value: so.PeakIrradiance,
		})
	}

	if g := glareWindow(sl, so); g != nil {
		recs = append(recs, *g)
	}

	if so.DailyIrradiation > highDailyLoad && sc.Glazing.Type == site.GlazingSingle {
		recs = append(recs, Recommendation{
			Kind:  RecGlazingUpgrade,
			Value: so.DailyIrradiation,
		})
	}

	return recs
}

// glareWindow returns the late-afternoon stretch where direct sun
// overlaps the 14:00–18:00 band, when the low western sun reaches deep
// into rooms.
func glareWindow(sl SunlightResults, so SolarResults) *Recommendation {
	if sl.LastSun.IsZero() || so.PeakIrradiance < glareIrradiance {
		return nil
	}
	day := sl.LastSun
	bandStart := time.Date(day.Year(), day.Month(), day.Day(), glareWindowStart, 0, 0, 0, day.Location())
	bandEnd := time.Date(day.Year(), day.Month(), day.Day(), glareWindowEnd, 0, 0, 0, day.Location())

	var start, end time.Time
	for _, b := range sl.Blocks {
		s, e := b.Start, b.End
		if s.Before(bandStart) {
			s = bandStart
		}
		if e.After(bandEnd) {
			e = bandEnd
		}
		if !e.After(s) {
			continue
		}
		if start.IsZero() || s.Before(start) {
			start = s
		}
		if end.IsZero() || e.After(end) {
			end = e
		}
	}
	if start.IsZero() {
		return nil
	}
	return &Recommendation{Kind: RecGlare, Start: start, End: end, Value: so.PeakIrradiance}
}
