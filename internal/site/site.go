// Package site holds the shared data model: the image→world mapping
// parameters, buildings, and envelope scenarios. The analysis engine
// never mutates any of it.
package site

import "github.com/sunpatch/sunpatch/internal/geo"

// Config is the fixed parameters of the image→world mapping for one
// project, created once per uploaded site plan.
type Config struct {
	// ImageWidth and ImageHeight are the site plan dimensions in pixels.
	ImageWidth  float64
	ImageHeight float64

	// Scale is meters per pixel.
	Scale float64

	// NorthAngle is the compass rotation in degrees; 0 means north is
	// image-up, positive rotates clockwise.
	NorthAngle float64

	// Latitude and Longitude locate the site for the ephemeris, in
	// degrees with north and east positive.
	Latitude  float64
	Longitude float64
}

// ToWorld maps an image-space footprint into world space.
func (c Config) ToWorld(footprint []geo.Point) []geo.Point {
	return geo.ImageToWorld(footprint, c.ImageWidth, c.ImageHeight, c.Scale, c.NorthAngle)
}

// Building is one box-extruded footprint on the site. The footprint is
// authored in image space by the editor or detection layers; the
// engine transforms and validates it before any geometric reasoning.
type Building struct {
	ID   string
	Name string

	// Footprint has at least 3 finite, non-collinear vertices. The
	// space it is in depends on where the value came from: image space
	// from the editor, world space once inside the engine.
	Footprint []geo.Point

	Floors      int
	FloorHeight float64 // meters per floor

	// Color is a display hint for the rendering layers; the engine
	// carries it through untouched.
	Color string
}

// TotalHeight returns the extruded height in meters.
func (b Building) TotalHeight() float64 {
	return float64(b.Floors) * b.FloorHeight
}
