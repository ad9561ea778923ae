// Package render draws analysis results with gonum/plot: a daily
// irradiance chart with shadow bands and a year-long sun heat map.
package render

import (
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// newPlot returns a dark-background plot with white axes, which reads
// much better for sun-intensity palettes than the default white.
func newPlot() *plot.Plot {
	plt := plot.New()
	plt.BackgroundColor = color.Black
	for _, elt := range []*color.Color{
		&plt.Title.TextStyle.Color,
		&plt.X.Color,
		&plt.X.Tick.Color,
		&plt.X.Tick.Label.Color,
		&plt.X.Label.TextStyle.Color,
		&plt.Y.Color,
		&plt.Y.Tick.Color,
		&plt.Y.Tick.Label.Color,
		&plt.Y.Label.TextStyle.Color,
	} {
		*elt = color.White
	}
	return plt
}

// SavePNG renders plt to a PNG file at a fixed page size.
func SavePNG(plt *plot.Plot, path string) error {
	return plt.Save(8*vg.Inch, 5*vg.Inch, path)
}

var todBase = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// splitTime splits t into day and time of day. The day is pinned to
// noon to center it on the date, and both halves are expressed in UTC
// since that is the zone gonum renders in and it sidesteps DST.
func splitTime(t time.Time) (day, tod time.Time) {
	day = time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
	tod = time.Date(2000, 1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return
}

// timeOfDay maps t onto a float seconds-since-midnight axis value.
func timeOfDay(t time.Time) float64 {
	_, tod := splitTime(t)
	return float64(tod.Sub(todBase)) / float64(time.Second)
}
