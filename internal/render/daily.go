package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/sunpatch/sunpatch/internal/analysis"
)

// DailyPlot charts one day of irradiance at the target: a line of W/m²
// over time of day, with gray bands under the stretches where the
// target sits in another building's shadow.
func DailyPlot(res *analysis.Results) (*plot.Plot, error) {
	if len(res.Samples) == 0 {
		return nil, fmt.Errorf("no samples for %s", res.Date.Format("2006-01-02"))
	}

	plt := newPlot()
	plt.Title.Text = res.Date.Format("January 2, 2006")
	plt.X.Label.Text = "time of day"
	plt.Y.Label.Text = "irradiance (W/m²)"
	plt.X.Tick.Marker = timeOfDayTicks{targetTicks: 8}

	peak := res.Solar.PeakIrradiance
	if peak <= 0 {
		peak = 1
	}

	// Shadow bands first so the line draws over them.
	for _, band := range shadowBands(res.Samples) {
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: band[0], Y: 0},
			{X: band[1], Y: 0},
			{X: band[1], Y: peak * 1.05},
			{X: band[0], Y: peak * 1.05},
		})
		if err != nil {
			return nil, err
		}
		poly.Color = color.Gray{Y: 60}
		poly.LineStyle.Color = color.Transparent
		plt.Add(poly)
	}

	pts := make(plotter.XYs, len(res.Samples))
	for i, s := range res.Samples {
		pts[i].X = timeOfDay(s.Time)
		pts[i].Y = s.Irradiance
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	plt.Add(line)
	plt.Legend.Add("irradiance", line)
	plt.Legend.TextStyle.Color = color.White

	return plt, nil
}

// shadowBands returns [start, end] time-of-day pairs for contiguous
// runs of shadowed daylight samples.
func shadowBands(samples []analysis.Sample) [][2]float64 {
	var bands [][2]float64
	open := false
	for _, s := range samples {
		shadowed := s.InShadow && s.SunAltitude > 0
		x := timeOfDay(s.Time)
		switch {
		case shadowed && !open:
			bands = append(bands, [2]float64{x, x})
			open = true
		case shadowed:
			bands[len(bands)-1][1] = x
		default:
			open = false
		}
	}
	// A band of a single sample still needs visible width.
	for i := range bands {
		if bands[i][1] == bands[i][0] {
			bands[i][1] += 60
		}
	}
	return bands
}
