package analysis

import "time"

// Sample is one instant of the discretized day.
type Sample struct {
	Time          time.Time
	SunAltitude   float64 // radians
	SunAzimuth    float64 // radians, clockwise from north
	InShadow      bool
	Irradiance    float64 // W/m², after scenario factors
	ShadowPercent float64 // coverage of the target footprint
}

// SunBlock is a contiguous run of direct-sun samples.
type SunBlock struct {
	Start time.Time
	End   time.Time
	Hours float64
}

// SunlightResults aggregates when and how long the target saw the sun.
type SunlightResults struct {
	FirstSun    time.Time // zero when the target never saw direct sun
	LastSun     time.Time
	TotalHours  float64 // sun above the horizon
	DirectHours float64 // above the horizon and unshadowed
	Blocks      []SunBlock
}

// SolarResults aggregates the heat load of the day.
type SolarResults struct {
	PeakIrradiance   float64 // W/m²
	PeakTime         time.Time
	DailyIrradiation float64 // Wh/m², Riemann sum over the series
}

// RiskLevel tiers the comfort score.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	}
	return "high"
}

// ComfortResults is the 0–100 thermal-comfort heuristic.
type ComfortResults struct {
	Score float64
	Risk  RiskLevel
}

// RecommendationKind identifies one class of actionable advice. The
// records carry parameters, not prose, so presentation layers can
// localize or reformat without re-deriving the numeric triggers.
type RecommendationKind int

const (
	// RecBestLight names the longest uninterrupted direct-sun window.
	RecBestLight RecommendationKind = iota
	// RecVentilate suggests when to air the space relative to the heat
	// peak.
	RecVentilate
	// RecShade suggests deploying shading around the peak.
	RecShade
	// RecGlare flags a late-afternoon low-sun glare window.
	RecGlare
	// RecGlazingUpgrade suggests better glass under a high daily load.
	RecGlazingUpgrade
)

func (k RecommendationKind) String() string {
	switch k {
	case RecBestLight:
		return "best-light"
	case RecVentilate:
		return "ventilate"
	case RecShade:
		return "shade"
	case RecGlare:
		return "glare"
	case RecGlazingUpgrade:
		return "glazing-upgrade"
	}
	return "unknown"
}

// Recommendation is one structured advice record. Start/End bound the
// window the advice applies to when the kind has one; Value carries a
// kind-specific magnitude (peak W/m² or daily Wh/m²).
type Recommendation struct {
	Kind  RecommendationKind
	Start time.Time
	End   time.Time
	Value float64
}

// Results is the terminal, immutable output of one Analyze call. It is
// recomputed, never mutated, whenever any input changes.
type Results struct {
	Date            time.Time
	TargetID        string
	Samples         []Sample
	Sunlight        SunlightResults
	Solar           SolarResults
	Comfort         ComfortResults
	Recommendations []Recommendation
}
