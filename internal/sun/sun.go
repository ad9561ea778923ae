// Package sun wraps the suncalc ephemeris and provides the clear-sky
// irradiance model shared by the shadow calculator and the analysis
// engine.
package sun

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// Position is the sun's place in the horizontal alt-azimuth system, in
// radians. Altitude ranges over [-π/2, π/2] with 0 at the horizon;
// Azimuth is measured clockwise from north in [0, 2π).
type Position struct {
	Altitude float64
	Azimuth  float64
}

// Up reports whether the sun is above the horizon.
func (p Position) Up() bool { return p.Altitude > 0 }

// PositionAt returns the sun position at the given time and location.
// Latitude and longitude are in degrees, north and east positive.
// suncalc uses a non-standard convention for azimuth where 0 is south
// and positive is westward; we shift it to clockwise-from-north.
func PositionAt(t time.Time, latitude, longitude float64) Position {
	p := suncalc.GetPosition(t, latitude, longitude)
	az := p.Azimuth + math.Pi
	for az < 0 {
		az += 2 * math.Pi
	}
	for az >= 2*math.Pi {
		az -= 2 * math.Pi
	}
	return Position{Altitude: p.Altitude, Azimuth: az}
}

// Day is the daylight window of one calendar date.
type Day struct {
	Sunrise time.Time
	Sunset  time.Time
}

// TimesFor returns the sunrise/sunset window for the given date and
// location. ok is false at extreme latitudes (midnight sun, polar
// night) where suncalc yields no usable crossing times; callers fall
// back to sampling the whole 24 h and letting the altitude test sort
// it out.
func TimesFor(date time.Time, latitude, longitude float64) (Day, bool) {
	times := suncalc.GetTimes(date, latitude, longitude)
	rise := times[suncalc.Sunrise].Time
	set := times[suncalc.Sunset].Time
	if rise.IsZero() || set.IsZero() || !set.After(rise) {
		return Day{}, false
	}
	// Polar dates can come back as garbage far outside the requested
	// day rather than zero times.
	if rise.Sub(date) < -48*time.Hour || rise.Sub(date) > 48*time.Hour {
		return Day{}, false
	}
	return Day{Sunrise: rise, Sunset: set}, true
}
