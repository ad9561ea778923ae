package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a project file, layered over Default so a minimal file
// only needs to name what differs.
func Load(path string) (*Project, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing project %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("project %s: %w", path, err)
	}
	return cfg, nil
}

func (p *Project) validate() error {
	if p.Site.Scale <= 0 {
		return fmt.Errorf("site scale must be positive, got %v", p.Site.Scale)
	}
	if p.Site.Latitude < -90 || p.Site.Latitude > 90 {
		return fmt.Errorf("latitude %v outside [-90, 90]", p.Site.Latitude)
	}
	if p.Site.Longitude < -180 || p.Site.Longitude > 180 {
		return fmt.Errorf("longitude %v outside [-180, 180]", p.Site.Longitude)
	}
	seen := make(map[string]bool)
	for _, b := range p.Buildings {
		if b.ID == "" {
			return fmt.Errorf("building %q has no id", b.Name)
		}
		if seen[b.ID] {
			return fmt.Errorf("duplicate building id %q", b.ID)
		}
		seen[b.ID] = true
	}
	if t := p.Target.Building; t != "" && !seen[t] {
		return fmt.Errorf("target building %q not defined", t)
	}
	return nil
}
