// Package analysis orchestrates the day-long solar exposure time
// series: sun positions, shadow queries, the clear-sky irradiance
// model under one envelope scenario, and the aggregation into
// sunlight, heat, and comfort results.
package analysis

import (
	"time"

	"go.uber.org/zap"

	"github.com/sunpatch/sunpatch/internal/geo"
	"github.com/sunpatch/sunpatch/internal/shadow"
	"github.com/sunpatch/sunpatch/internal/site"
	"github.com/sunpatch/sunpatch/internal/sun"
	"github.com/sunpatch/sunpatch/internal/triangulate"
)

const (
	// DefaultInterval is the sample cadence from sunrise to sunset.
	DefaultInterval = 15 * time.Minute

	// DefaultCoverageDensity is the per-axis grid density for shadow
	// coverage sampling.
	DefaultCoverageDensity = 10
)

// Params assembles one analysis configuration. Site and Buildings are
// owned by the caller and never mutated; footprints are in image
// space and are validated and transformed at construction.
type Params struct {
	Site            site.Config
	Buildings       []site.Building
	Scenario        site.Scenario
	TargetID        string // empty for a whole-site analysis
	TargetFloor     int    // 0-based floor of the target surface
	Interval        time.Duration
	CoverageDensity int
	Logger          *zap.Logger
}

// Engine runs analyses for one site configuration. It is synchronous
// and single-threaded per Analyze call; for parallel batches use one
// Engine (and thus one shadow.Calculator) per worker.
type Engine struct {
	cfg      site.Config
	scenario site.Scenario
	world    []site.Building // world-space, validated footprints
	target   *site.Building
	// targetFloorHeight is kept separately so a whole-site analysis
	// (target nil) evaluates at ground level.
	targetFloorHeight float64
	interval          time.Duration
	density           int
	calc              *shadow.Calculator
	log               *zap.Logger
}

// New validates and transforms the buildings and returns an engine.
// Buildings whose footprints fail validation are dropped with a logged
// error; geometry problems must not propagate into shadow or
// irradiance computation. A missing target id degrades to a whole-site
// analysis, not an error.
func New(p Params) *Engine {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if p.Interval <= 0 {
		p.Interval = DefaultInterval
	}
	if p.CoverageDensity <= 0 {
		p.CoverageDensity = DefaultCoverageDensity
	}

	e := &Engine{
		cfg:      p.Site,
		scenario: p.Scenario,
		interval: p.Interval,
		density:  p.CoverageDensity,
		calc:     shadow.NewCalculator(),
		log:      log,
	}

	for _, b := range p.Buildings {
		res := geo.ValidatePolygon(b.Footprint, geo.PixelOptions())
		if !res.Valid() {
			log.Error("dropping building with unusable footprint",
				zap.String("building", b.ID),
				zap.Strings("errors", res.Errors))
			continue
		}
		for _, w := range res.Warnings {
			log.Warn("footprint warning", zap.String("building", b.ID), zap.String("warning", w))
		}

		wb := b
		wb.Footprint = p.Site.ToWorld(res.Polygon)

		// Construction-time triangulation check: a footprint the
		// triangulator cannot conserve area on will also misbehave in
		// coverage sampling, so surface it early.
		if indices, err := triangulate.Polygon(wb.Footprint); err != nil {
			log.Warn("footprint does not triangulate cleanly",
				zap.String("building", b.ID), zap.Error(err))
		} else if v := triangulate.Validate(wb.Footprint, indices, 0); !v.Valid {
			log.Warn("triangulation loses area",
				zap.String("building", b.ID),
				zap.Float64("relative_error", v.RelativeError))
		}

		e.world = append(e.world, wb)
	}

	if p.TargetID != "" {
		for i := range e.world {
			if e.world[i].ID == p.TargetID {
				e.target = &e.world[i]
				break
			}
		}
		if e.target == nil {
			log.Warn("target building not found; degrading to site-level analysis",
				zap.String("target", p.TargetID))
		}
	}
	if e.target != nil {
		e.targetFloorHeight = float64(p.TargetFloor) * e.target.FloorHeight
	}

	return e
}

// Buildings returns the validated, world-space buildings the engine
// operates on.
func (e *Engine) Buildings() []site.Building {
	return e.world
}

// Analyze runs the full day series for date and returns the immutable
// results. Degenerate inputs (no target, no buildings, polar dates
// with no sunrise) produce well-formed results, never errors.
func (e *Engine) Analyze(date time.Time) Results {
	e.calc.Clear()

	start, end := e.sampleWindow(date)

	var (
		targetPt     geo.Point // world origin for a site-level analysis
		targetHeight float64
		excludeID    string
	)
	if e.target != nil {
		targetPt = geo.Centroid(e.target.Footprint)
		targetHeight = e.targetFloorHeight
		excludeID = e.target.ID
	}
	queryShadows := false
	for _, b := range e.world {
		if b.ID != excludeID {
			queryShadows = true
			break
		}
	}

	res := Results{Date: date, TargetID: excludeID}
	for t := start; !t.After(end); t = t.Add(e.interval) {
		pos := sun.PositionAt(t, e.cfg.Latitude, e.cfg.Longitude)
		s := Sample{Time: t, SunAltitude: pos.Altitude, SunAzimuth: pos.Azimuth}

		if queryShadows {
			s.InShadow = e.calc.PointInShadow(targetPt, e.world, pos, excludeID, targetHeight)
			if pos.Up() && e.target != nil {
				s.ShadowPercent = e.calc.Coverage(*e.target, e.world, pos, targetHeight, e.density)
			}
		} else {
			s.InShadow = !pos.Up()
		}

		s.Irradiance = e.sampleIrradiance(pos, s.InShadow)
		res.Samples = append(res.Samples, s)
	}

	res.Sunlight, res.Solar = aggregate(res.Samples, e.interval)
	res.Comfort = comfortScore(res.Sunlight, res.Solar, e.scenario)
	res.Recommendations = recommend(res.Sunlight, res.Solar, e.scenario)

	e.log.Debug("analysis complete",
		zap.Time("date", date),
		zap.Int("samples", len(res.Samples)),
		zap.Float64("direct_hours", res.Sunlight.DirectHours),
		zap.Float64("peak_w_m2", res.Solar.PeakIrradiance),
		zap.Float64("comfort", res.Comfort.Score))
	return res
}

// sampleWindow resolves the sunrise/sunset window for date. At extreme
// latitudes suncalc yields no usable crossings; the window then
// degrades to the full 24 h and the altitude test discards dark
// samples downstream.
func (e *Engine) sampleWindow(date time.Time) (start, end time.Time) {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	day, ok := sun.TimesFor(midnight, e.cfg.Latitude, e.cfg.Longitude)
	if !ok {
		return midnight, midnight.Add(24*time.Hour - e.interval)
	}
	return day.Sunrise, day.Sunset
}

// sampleIrradiance applies the scenario's multiplicative factors to
// the clear-sky model. When shadowed only the diffuse component
// contributes; when sunlit, direct and diffuse both do, each scaled by
// the same glazing and shading factors.
func (e *Engine) sampleIrradiance(pos sun.Position, inShadow bool) float64 {
	comps := sun.Irradiance(pos.Altitude)
	factor := e.scenario.Glazing.Transmittance() * e.scenario.Shading.Reduction()
	if inShadow {
		return comps.Diffuse * factor
	}
	return comps.Global * factor
}

// aggregate folds the sample series into the sunlight and solar
// aggregates. Sun blocks are runs of consecutive unshadowed samples,
// assembled the same way lit runs are gathered from a position series.
func aggregate(samples []Sample, interval time.Duration) (SunlightResults, SolarResults) {
	var sl SunlightResults
	var so SolarResults
	hoursPer := interval.Hours()

	direct := func(s Sample) bool { return s.SunAltitude > 0 && !s.InShadow }

	for _, s := range samples {
		if s.SunAltitude > 0 {
			sl.TotalHours += hoursPer
		}
		if direct(s) {
			sl.DirectHours += hoursPer
			if sl.FirstSun.IsZero() {
				sl.FirstSun = s.Time
			}
			sl.LastSun = s.Time
		}
		if s.Irradiance > so.PeakIrradiance {
			so.PeakIrradiance = s.Irradiance
			so.PeakTime = s.Time
		}
		so.DailyIrradiation += s.Irradiance * hoursPer
	}

	// Assemble runs of consecutive direct-sun samples.
	for i := 0; i < len(samples); {
		if !direct(samples[i]) {
			i++
			continue
		}
		j := i
		for j < len(samples) && direct(samples[j]) {
			j++
		}
		sl.Blocks = append(sl.Blocks, SunBlock{
			Start: samples[i].Time,
			End:   samples[j-1].Time,
			Hours: float64(j-i) * hoursPer,
		})
		i = j
	}
	return sl, so
}
