package site

import "fmt"

// The envelope options are closed enumerations with factor lookup
// tables, so adding a glazing or shading variant is a compile-time
// change rather than a free-form string with implicit defaults.

// GlazingType selects the window glass assembly.
type GlazingType int

const (
	GlazingSingle GlazingType = iota
	GlazingDouble
	GlazingTriple
	GlazingLowE
)

var glazingNames = map[GlazingType]string{
	GlazingSingle: "single",
	GlazingDouble: "double",
	GlazingTriple: "triple",
	GlazingLowE:   "low-e",
}

// Solar transmittance (g-value) per assembly; multiplies raw
// irradiance.
var glazingTransmittance = map[GlazingType]float64{
	GlazingSingle: 0.85,
	GlazingDouble: 0.75,
	GlazingTriple: 0.60,
	GlazingLowE:   0.45,
}

// Comfort-score adjustment per assembly.
var glazingComfortBonus = map[GlazingType]float64{
	GlazingSingle: -5,
	GlazingDouble: 2,
	GlazingTriple: 5,
	GlazingLowE:   8,
}

func (g GlazingType) String() string { return glazingNames[g] }

// Transmittance returns the solar transmittance in (0, 1].
func (g GlazingType) Transmittance() float64 { return glazingTransmittance[g] }

// ComfortBonus returns the comfort-score adjustment for this assembly.
func (g GlazingType) ComfortBonus() float64 { return glazingComfortBonus[g] }

// ParseGlazingType converts a config string into a GlazingType.
func ParseGlazingType(s string) (GlazingType, error) {
	for g, name := range glazingNames {
		if name == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown glazing type %q", s)
}

// ShadingPosition says where the shading device sits relative to the
// glass. Exterior shading intercepts heat before the glazing and is
// therefore assigned a stronger default reduction.
type ShadingPosition int

const (
	ShadingNone ShadingPosition = iota
	ShadingInterior
	ShadingExterior
)

var shadingNames = map[ShadingPosition]string{
	ShadingNone:     "none",
	ShadingInterior: "interior",
	ShadingExterior: "exterior",
}

// Default fraction of irradiance that still passes the device.
var shadingDefaultReduction = map[ShadingPosition]float64{
	ShadingNone:     1.0,
	ShadingInterior: 0.7,
	ShadingExterior: 0.4,
}

func (s ShadingPosition) String() string { return shadingNames[s] }

// DefaultReduction returns the default pass-through factor in (0, 1].
func (s ShadingPosition) DefaultReduction() float64 { return shadingDefaultReduction[s] }

// ParseShadingPosition converts a config string into a ShadingPosition.
func ParseShadingPosition(s string) (ShadingPosition, error) {
	for p, name := range shadingNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown shading position %q", s)
}

// WindowState is the operable state of the window.
type WindowState int

const (
	WindowClosed WindowState = iota
	WindowTilted
	WindowOpen
)

var windowNames = map[WindowState]string{
	WindowClosed: "closed",
	WindowTilted: "tilted",
	WindowOpen:   "open",
}

func (w WindowState) String() string { return windowNames[w] }

// ParseWindowState converts a config string into a WindowState.
func ParseWindowState(s string) (WindowState, error) {
	for w, name := range windowNames {
		if name == s {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unknown window state %q", s)
}

// Window is the operable-window part of a scenario.
type Window struct {
	State WindowState

	// VentilationFactor in [0, 1] scales how much the window state can
	// relieve heat.
	VentilationFactor float64
}

// Glazing is the glass part of a scenario. A zero SolarTransmittance
// means "use the assembly's table value"; a nonzero value overrides it
// for calibrated products.
type Glazing struct {
	Type               GlazingType
	SolarTransmittance float64
}

// Transmittance returns the effective solar transmittance.
func (g Glazing) Transmittance() float64 {
	if g.SolarTransmittance > 0 {
		return g.SolarTransmittance
	}
	return g.Type.Transmittance()
}

// Shading is the shading-device part of a scenario. A zero
// ReductionFactor means "use the position's default"; lower values
// mean stronger shading.
type Shading struct {
	Position        ShadingPosition
	ReductionFactor float64
}

// Reduction returns the effective pass-through factor in (0, 1].
func (s Shading) Reduction() float64 {
	if s.ReductionFactor > 0 {
		return s.ReductionFactor
	}
	return s.Position.DefaultReduction()
}

// Scenario is one named bundle of envelope choices. It is purely a set
// of multiplicative modifiers on raw irradiance plus comfort-score
// adjustments; the engine is parameterized by exactly one per run.
type Scenario struct {
	Name    string
	Window  Window
	Glazing Glazing
	Shading Shading
}

// DefaultScenario is a plain double-glazed, unshaded, closed-window
// configuration.
func DefaultScenario() Scenario {
	return Scenario{
		Name:    "baseline",
		Window:  Window{State: WindowClosed, VentilationFactor: 0},
		Glazing: Glazing{Type: GlazingDouble},
		Shading: Shading{Position: ShadingNone},
	}
}
