package render

import (
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"github.com/sunpatch/sunpatch/internal/analysis"
)

// YearHeatMap draws a year of daily analyses as a heat map: days across,
// time of day up, color by irradiance at the target. Times when the sun
// is down render in the underflow color.
func YearHeatMap(year []analysis.Results, interval time.Duration) (*plot.Plot, error) {
	if len(year) == 0 {
		return nil, fmt.Errorf("no results to plot")
	}

	type xy struct {
		day, tod   time.Time
		irradiance float64
		col, row   int
	}

	// Locate every sample on the grid and narrow the row range down to
	// just the lit times.
	var cMax, rMin, rMax int
	startDay, _ := splitTime(year[0].Date)
	var startTOD time.Time
	var xys []xy
	peak := 0.0
	for _, res := range year {
		if res.Solar.PeakIrradiance > peak {
			peak = res.Solar.PeakIrradiance
		}
		for _, s := range res.Samples {
			var p xy
			p.day, p.tod = splitTime(s.Time)
			p.irradiance = s.Irradiance
			p.col = int(p.day.Sub(startDay) / (24 * time.Hour))
			p.row = int(p.tod.Sub(todBase) / interval)
			if p.col > cMax {
				cMax = p.col
			}
			if p.irradiance > 0 {
				first := startTOD.IsZero()
				if first || p.row < rMin {
					rMin = p.row
					startTOD = p.tod
				}
				if first || p.row > rMax {
					rMax = p.row
				}
			}
			xys = append(xys, p)
		}
	}
	if startTOD.IsZero() {
		return nil, fmt.Errorf("the target never sees the sun in %d", year[0].Date.Year())
	}

	// Construct the grid.
	var irradiance [][]float64
	for i := range xys {
		p := &xys[i]
		for p.col >= len(irradiance) {
			irradiance = append(irradiance, make([]float64, rMax-rMin+1))
		}
		if p.row < rMin || p.row > rMax {
			continue
		}
		irradiance[p.col][p.row-rMin] = p.irradiance
	}
	grid := &irradianceGrid{irradiance, startDay, startTOD, interval, peak}

	plt := newPlot()
	plt.Title.Text = fmt.Sprintf("Sun exposure, %d", year[0].Date.Year())
	plt.X.Tick.Marker = dayOfYearTicks{}
	plt.Y.Tick.Marker = plot.TimeTicks{Format: "3:04PM"}

	// TODO: Add a color bar key once gonum grows a usable one;
	// plotter.ColorBar wants to fill the whole plot.
	hm := plotter.NewHeatMap(grid, palette.Heat(256, 1))
	hm.Underflow = color.Black
	hm.Rasterized = true
	plt.Add(hm)

	return plt, nil
}

type irradianceGrid struct {
	irradiance         [][]float64
	startDay, startTOD time.Time
	interval           time.Duration
	peak               float64
}

func (g *irradianceGrid) Dims() (c, r int) {
	if len(g.irradiance) == 0 {
		return 0, 0
	}
	return len(g.irradiance), len(g.irradiance[0])
}

func (g *irradianceGrid) Z(c, r int) float64 {
	return g.irradiance[c][r]
}

func (g *irradianceGrid) X(c int) float64 {
	t := g.startDay.Add(time.Duration(c) * (24 * time.Hour))
	return float64(t.Unix())
}

func (g *irradianceGrid) Y(r int) float64 {
	t := g.startTOD.Add(time.Duration(r) * g.interval)
	return float64(t.Unix())
}

// Min returns 1 rather than 0 so that night samples render in the
// underflow color.
func (g *irradianceGrid) Min() float64 { return 1 }

func (g *irradianceGrid) Max() float64 { return g.peak }
