// Package config loads the YAML project file describing a site, its
// buildings, and the comparison scenario.
package config

import (
	"fmt"

	"github.com/sunpatch/sunpatch/internal/geo"
	"github.com/sunpatch/sunpatch/internal/site"
)

// Project holds one analysis project.
type Project struct {
	Site      SiteConfig       `yaml:"site"`
	Buildings []BuildingConfig `yaml:"buildings"`
	Scenario  ScenarioConfig   `yaml:"scenario"`
	Target    TargetConfig     `yaml:"target"`
	Logging   LoggingConfig    `yaml:"logging"`
	CacheDir  string           `yaml:"cache_dir"`
}

// SiteConfig describes the site plan image and its geographic anchor.
type SiteConfig struct {
	ImageWidth  float64 `yaml:"image_width"`
	ImageHeight float64 `yaml:"image_height"`
	Scale       float64 `yaml:"scale"`       // meters per pixel
	NorthAngle  float64 `yaml:"north_angle"` // degrees clockwise from image-up
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
}

// BuildingConfig describes one building footprint in image pixels.
type BuildingConfig struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Footprint   [][2]float64 `yaml:"footprint"`
	Floors      int          `yaml:"floors"`
	FloorHeight float64      `yaml:"floor_height"`
	Color       string       `yaml:"color"`
}

// ScenarioConfig describes the window scenario in plain strings, parsed
// into the site package's enums on conversion.
type ScenarioConfig struct {
	Name    string  `yaml:"name"`
	Window  string  `yaml:"window"`  // closed, tilted, open
	Glazing string  `yaml:"glazing"` // single, double, triple, low-e
	Shading string  `yaml:"shading"` // none, interior, exterior

	VentilationFactor  float64 `yaml:"ventilation_factor"`
	SolarTransmittance float64 `yaml:"solar_transmittance"`
	ShadingReduction   float64 `yaml:"shading_reduction"`
}

// TargetConfig names the building the analysis focuses on.
type TargetConfig struct {
	Building string `yaml:"building"`
	Floor    int    `yaml:"floor"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Project with sensible default values.
func Default() *Project {
	return &Project{
		Site: SiteConfig{
			ImageWidth:  1000,
			ImageHeight: 1000,
			Scale:       0.5,
			NorthAngle:  0,
			Latitude:    52.52, // Berlin
			Longitude:   13.405,
		},
		Scenario: ScenarioConfig{
			Name:    "baseline",
			Window:  "closed",
			Glazing: "double",
			Shading: "none",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		CacheDir: ".cache",
	}
}

// SiteModel converts the YAML site block to the engine's type.
func (p *Project) SiteModel() site.Config {
	return site.Config{
		ImageWidth:  p.Site.ImageWidth,
		ImageHeight: p.Site.ImageHeight,
		Scale:       p.Site.Scale,
		NorthAngle:  p.Site.NorthAngle,
		Latitude:    p.Site.Latitude,
		Longitude:   p.Site.Longitude,
	}
}

// BuildingModels converts the YAML building list to the engine's
// types. Footprint validation happens later, in the engine.
func (p *Project) BuildingModels() []site.Building {
	out := make([]site.Building, 0, len(p.Buildings))
	for _, b := range p.Buildings {
		fp := make([]geo.Point, len(b.Footprint))
		for i, v := range b.Footprint {
			fp[i] = geo.Point{X: v[0], Y: v[1]}
		}
		out = append(out, site.Building{
			ID:          b.ID,
			Name:        b.Name,
			Footprint:   fp,
			Floors:      b.Floors,
			FloorHeight: b.FloorHeight,
			Color:       b.Color,
		})
	}
	return out
}

// ScenarioModel parses the scenario strings into a site.Scenario.
func (p *Project) ScenarioModel() (site.Scenario, error) {
	sc := site.DefaultScenario()
	sc.Name = p.Scenario.Name

	if p.Scenario.Window != "" {
		state, err := site.ParseWindowState(p.Scenario.Window)
		if err != nil {
			return sc, fmt.Errorf("scenario window: %w", err)
		}
		sc.Window.State = state
	}
	sc.Window.VentilationFactor = p.Scenario.VentilationFactor

	if p.Scenario.Glazing != "" {
		gt, err := site.ParseGlazingType(p.Scenario.Glazing)
		if err != nil {
			return sc, fmt.Errorf("scenario glazing: %w", err)
		}
		sc.Glazing.Type = gt
	}
	sc.Glazing.SolarTransmittance = p.Scenario.SolarTransmittance

	if p.Scenario.Shading != "" {
		sp, err := site.ParseShadingPosition(p.Scenario.Shading)
		if err != nil {
			return sc, fmt.Errorf("scenario shading: %w", err)
		}
		sc.Shading.Position = sp
	}
	sc.Shading.ReductionFactor = p.Scenario.ShadingReduction

	return sc, nil
}
