package analysis

import "github.com/sunpatch/sunpatch/internal/site"

// Comfort thresholds, in W/m² and hours.
const (
	peakHighThreshold    = 600
	peakExtremeThreshold = 800
	peakVentCutoff       = 700
	idealSunMin          = 4
	idealSunMax          = 6
)

// comfortScore folds the day's aggregates and the envelope scenario
// into a clamped 0–100 score. The base is 70; duration, peak heat,
// glazing, shading, and ventilation adjust from there.
func comfortScore(sl SunlightResults, so SolarResults, sc site.Scenario) ComfortResults {
	score := 70.0
	sunHours := sl.DirectHours
	peak := so.PeakIrradiance

	switch {
	case sunHours < 2:
		score -= 20
	case sunHours >= idealSunMin && sunHours <= idealSunMax:
		score += 10
	}
	if sunHours > 8 {
		// Overexposure penalty grows with each extra hour.
		over := (sunHours - 8) * 3
		if over > 15 {
			over = 15
		}
		score -= over
	}

	switch {
	case peak > peakExtremeThreshold:
		score -= 15
	case peak > peakHighThreshold:
		score -= 10
	}

	score += sc.Glazing.Type.ComfortBonus()

	if sunHours > 4 {
		score += (1 - sc.Shading.Reduction()) * 15
	}

	vent := sc.Window.VentilationFactor * 10
	if peak > peakVentCutoff {
		// Open windows relieve less during intense heat.
		vent *= 0.3
	}
	score += vent

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return ComfortResults{Score: score, Risk: riskFor(score)}
}

func riskFor(score float64) RiskLevel {
	switch {
	case score >= 70:
		return RiskLow
	case score >= 40:
		return RiskMedium
	}
	return RiskHigh
}
