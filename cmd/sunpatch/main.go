// Command sunpatch analyzes how much sun a building on a site plan
// gets over a day or a year: shadows from its neighbors, clear-sky
// irradiance through the envelope scenario, and a thermal-comfort
// score with structured recommendations.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sunpatch/sunpatch/internal/analysis"
	"github.com/sunpatch/sunpatch/internal/config"
	"github.com/sunpatch/sunpatch/internal/diskcache"
	"github.com/sunpatch/sunpatch/internal/logger"
	"github.com/sunpatch/sunpatch/internal/mesh"
	"github.com/sunpatch/sunpatch/internal/render"
	"github.com/sunpatch/sunpatch/internal/site"
)

func main() {
	var (
		projectPath = flag.String("project", "project.yaml", "project file")
		dateStr     = flag.String("date", "", "analysis date as YYYY-MM-DD (default today)")
		compare     = flag.String("compare", "", "scenario overrides to compare against, e.g. glazing=triple,shading=exterior")
		plotPath    = flag.String("plot", "", "write a daily irradiance chart PNG to this path")
		heatmapYear = flag.Int("heatmap-year", 0, "render a full-year exposure heat map for this year")
		stlPath     = flag.String("stl", "", "export the extruded site as binary STL to this path")
		logLevel    = flag.String("log-level", "", "override the project log level")
	)
	flag.Parse()

	if err := run(*projectPath, *dateStr, *compare, *plotPath, *heatmapYear, *stlPath, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "sunpatch:", err)
		os.Exit(1)
	}
}

func run(projectPath, dateStr, compare, plotPath string, heatmapYear int, stlPath, logLevel string) error {
	proj, err := config.Load(projectPath)
	if err != nil {
		return err
	}

	level := proj.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	log := logger.New(level, proj.Logging.LogFile)
	defer log.Sync()

	scenario, err := proj.ScenarioModel()
	if err != nil {
		return err
	}
	params := analysis.Params{
		Site:        proj.SiteModel(),
		Buildings:   proj.BuildingModels(),
		Scenario:    scenario,
		TargetID:    proj.Target.Building,
		TargetFloor: proj.Target.Floor,
		Logger:      log,
	}
	eng := analysis.New(params)

	if stlPath != "" {
		if err := exportSTL(eng, stlPath); err != nil {
			return err
		}
		log.Info("wrote site mesh", zap.String("path", stlPath))
	}

	if heatmapYear != 0 {
		return renderYear(proj, params, heatmapYear, log)
	}

	date, err := parseDate(dateStr)
	if err != nil {
		return err
	}

	res := eng.Analyze(date)
	printReport(os.Stdout, scenario.Name, &res)

	if compare != "" {
		alt, err := applyOverrides(scenario, compare)
		if err != nil {
			return err
		}
		altParams := params
		altParams.Scenario = alt
		altRes := analysis.New(altParams).Analyze(date)
		printComparison(os.Stdout, scenario.Name, &res, alt.Name, &altRes)
	}

	if plotPath != "" {
		plt, err := render.DailyPlot(&res)
		if err != nil {
			return err
		}
		if err := render.SavePNG(plt, plotPath); err != nil {
			return err
		}
		log.Info("wrote daily chart", zap.String("path", plotPath))
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad -date %q: %w", s, err)
	}
	return t, nil
}

func exportSTL(eng *analysis.Engine, path string) error {
	m, err := mesh.Site(eng.Buildings())
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.WriteSTL(f, "sunpatch site export")
}

// renderYear runs (or loads from the disk cache) a full year of daily
// analyses and renders them as a heat map PNG next to the project file.
func renderYear(proj *config.Project, params analysis.Params, year int, log *zap.Logger) error {
	key := diskcache.Key("year-batch", year, proj.Site, proj.Buildings, proj.Scenario, proj.Target)
	cache := diskcache.New(proj.CacheDir)

	var results []analysis.Results
	if cache.Load(key, &results) {
		log.Info("loaded year batch from cache", zap.Int("year", year))
	} else {
		start := time.Now()
		results = analysis.Year(params, year, 0)
		log.Info("computed year batch",
			zap.Int("year", year),
			zap.Duration("elapsed", time.Since(start)))
		if err := cache.Save(key, results); err != nil {
			log.Warn("could not cache year batch", zap.Error(err))
		}
	}

	plt, err := render.YearHeatMap(results, analysis.DefaultInterval)
	if err != nil {
		return err
	}
	out := fmt.Sprintf("sunpatch-%d.png", year)
	if err := render.SavePNG(plt, out); err != nil {
		return err
	}
	log.Info("wrote year heat map", zap.String("path", out))
	return nil
}

// applyOverrides parses a comma-separated key=value list into a copy
// of the base scenario. Keys: glazing, shading, window, ventilation.
func applyOverrides(base site.Scenario, spec string) (site.Scenario, error) {
	sc := base
	sc.Name = spec
	for _, kv := range strings.Split(spec, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(kv), "=")
		if !ok {
			return sc, fmt.Errorf("bad -compare entry %q, want key=value", kv)
		}
		switch k {
		case "glazing":
			gt, err := site.ParseGlazingType(v)
			if err != nil {
				return sc, err
			}
			sc.Glazing.Type = gt
			sc.Glazing.SolarTransmittance = 0
		case "shading":
			sp, err := site.ParseShadingPosition(v)
			if err != nil {
				return sc, err
			}
			sc.Shading.Position = sp
			sc.Shading.ReductionFactor = 0
		case "window":
			st, err := site.ParseWindowState(v)
			if err != nil {
				return sc, err
			}
			sc.Window.State = st
			if st != site.WindowClosed && sc.Window.VentilationFactor == 0 {
				sc.Window.VentilationFactor = 0.5
			}
		case "ventilation":
			if _, err := fmt.Sscanf(v, "%f", &sc.Window.VentilationFactor); err != nil {
				return sc, fmt.Errorf("bad ventilation factor %q", v)
			}
		default:
			return sc, fmt.Errorf("unknown -compare key %q", k)
		}
	}
	return sc, nil
}

func printReport(w io.Writer, name string, res *analysis.Results) {
	fmt.Fprintf(w, "%s - %s\n", res.Date.Format("Mon Jan 2 2006"), scenarioLabel(name))
	if res.TargetID != "" {
		fmt.Fprintf(w, "target: %s\n", res.TargetID)
	}
	sl := res.Sunlight
	fmt.Fprintf(w, "sun above horizon: %.1f h, direct sun: %.1f h\n", sl.TotalHours, sl.DirectHours)
	if !sl.FirstSun.IsZero() {
		fmt.Fprintf(w, "first/last direct sun: %s-%s\n",
			sl.FirstSun.Format("15:04"), sl.LastSun.Format("15:04"))
	}
	fmt.Fprintf(w, "peak irradiance: %.0f W/m² at %s, daily total: %.0f Wh/m²\n",
		res.Solar.PeakIrradiance, res.Solar.PeakTime.Format("15:04"), res.Solar.DailyIrradiation)
	fmt.Fprintf(w, "comfort: %.0f/100 (%s overheating risk)\n", res.Comfort.Score, res.Comfort.Risk)
	for _, r := range res.Recommendations {
		printRecommendation(w, r)
	}
}

func printRecommendation(w io.Writer, r analysis.Recommendation) {
	switch r.Kind {
	case analysis.RecBestLight:
		fmt.Fprintf(w, "  best light: %s-%s (%.1f h)\n",
			r.Start.Format("15:04"), r.End.Format("15:04"), r.Value)
	case analysis.RecVentilate:
		fmt.Fprintf(w, "  ventilate before the peak: %s-%s\n",
			r.Start.Format("15:04"), r.End.Format("15:04"))
	case analysis.RecShade:
		fmt.Fprintf(w, "  deploy shading around the peak: %s-%s (%.0f W/m²)\n",
			r.Start.Format("15:04"), r.End.Format("15:04"), r.Value)
	case analysis.RecGlare:
		fmt.Fprintf(w, "  glare window: %s-%s\n",
			r.Start.Format("15:04"), r.End.Format("15:04"))
	case analysis.RecGlazingUpgrade:
		fmt.Fprintf(w, "  consider a glazing upgrade (%.0f Wh/m² daily load)\n", r.Value)
	}
}

func printComparison(w io.Writer, baseName string, base *analysis.Results, altName string, alt *analysis.Results) {
	fmt.Fprintf(w, "\ncomparison: %s vs %s\n", scenarioLabel(baseName), scenarioLabel(altName))
	fmt.Fprintf(w, "  peak irradiance: %.0f -> %.0f W/m²\n",
		base.Solar.PeakIrradiance, alt.Solar.PeakIrradiance)
	fmt.Fprintf(w, "  daily total:     %.0f -> %.0f Wh/m²\n",
		base.Solar.DailyIrradiation, alt.Solar.DailyIrradiation)
	fmt.Fprintf(w, "  comfort:         %.0f -> %.0f (%s -> %s risk)\n",
		base.Comfort.Score, alt.Comfort.Score, base.Comfort.Risk, alt.Comfort.Risk)
}

func scenarioLabel(name string) string {
	if name == "" {
		return "baseline scenario"
	}
	return name
}
