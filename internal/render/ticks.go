package render

import (
	"time"

	"gonum.org/v1/plot"
)

// timeOfDayTicks renders a seconds-since-midnight axis as times of day.
type timeOfDayTicks struct {
	targetTicks int // Create around targetTicks number of ticks
}

func (o timeOfDayTicks) Ticks(min, max float64) []plot.Tick {
	minD := time.Duration(min) * time.Second
	maxD := time.Duration(max) * time.Second

	// Find a good duration between ticks
	best, minor := optimizeDurationTicks(minD, maxD, o.targetTicks)

	// Generate ticks and labels.
	var ticks []plot.Tick
	first := int((minD + minor - 1) / minor)
	last := int(maxD / minor)
	minorFactor := int(best / minor)
	for i := first; i <= last; i++ {
		t := time.Duration(i) * minor
		label := ""
		if i%minorFactor == 0 {
			label = todBase.Add(t).Format("3:04PM")
		}
		ticks = append(ticks, plot.Tick{
			Value: float64(t) / float64(time.Second),
			Label: label,
		})
	}
	return ticks
}

var durationScales = []time.Duration{12 * time.Hour, 3 * time.Hour, time.Hour, 30 * time.Minute, 10 * time.Minute, 5 * time.Minute, time.Minute}

// optimizeDurationTicks picks the tick spacing from durationScales that
// lands closest to targetTicks ticks in [minD, maxD], plus the next
// finer scale for unlabeled minor ticks.
func optimizeDurationTicks(minD, maxD time.Duration, targetTicks int) (best, minor time.Duration) {
	bestNDelta := 0
	for i, scale := range durationScales {
		first := int((minD + scale - 1) / scale)
		last := int(maxD / scale)
		if n := last - first + 1; n > 0 {
			delta := n - targetTicks
			if delta < 0 {
				delta = -delta
			}
			if best == 0 || delta < bestNDelta {
				best, bestNDelta = scale, delta
				if i+1 < len(durationScales) {
					minor = durationScales[i+1]
				} else {
					minor = 0
				}
			}
		}
	}
	if best == 0 {
		best, minor = durationScales[0], durationScales[1]
	}
	return best, minor
}

// dayOfYearTicks ticks a Unix-time axis at the first of each month,
// labeling quarters.
type dayOfYearTicks struct{}

func (dayOfYearTicks) Ticks(min, max float64) []plot.Tick {
	valToTime := plot.UTCUnixTime
	minT, maxT := valToTime(min), valToTime(max)
	year := minT.Year()
	var ticks []plot.Tick
	lastMajorYear := 0
	for month := time.Month(1); ; month++ {
		t := time.Date(year, month, 1, 12, 0, 0, 0, time.UTC)
		if t.Before(minT) {
			continue
		}
		if t.After(maxT) {
			break
		}
		label := ""
		if (t.Month()-1)%3 == 0 {
			if lastMajorYear == t.Year() {
				label = t.Format("1/02")
			} else {
				lastMajorYear = t.Year()
				label = t.Format("1/02/2006")
			}
		}
		ticks = append(ticks, plot.Tick{
			Value: float64(t.Unix()),
			Label: label,
		})
	}
	return ticks
}
