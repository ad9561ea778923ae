package sun

import "math"

// Clear-sky model constants.
const (
	// SolarConstant is the extraterrestrial solar flux in W/m².
	SolarConstant = 1361.0

	// ExtinctionCoefficient is the clear-sky atmospheric extinction per
	// unit air mass.
	ExtinctionCoefficient = 0.14

	// DiffuseRatio is the diffuse fraction of global horizontal
	// irradiance under clear sky.
	DiffuseRatio = 0.15
)

// AirMass returns the relative optical air mass for a sun altitude in
// radians. It is 1 with the sun overhead and roughly 38 at the
// horizon. The core of the formula is 1/cos(Θ); the remaining terms
// account for the curvature of the Earth.
//
// From Kasten, F. and Young, A. T., “Revised optical air mass tables
// and approximation formula”, Applied Optics, vol. 28, pp. 4735–4738,
// 1989.
func AirMass(altitude float64) float64 {
	zenith := 90 - altitude*180/math.Pi // degrees, 0 is overhead
	return 1 / (math.Cos(zenith*math.Pi/180) + 0.50572*math.Pow(96.07995-zenith, -1.6364))
}

// Components is the split of clear-sky irradiance on a horizontal
// surface, in W/m².
type Components struct {
	Direct  float64 // direct beam on the horizontal
	Diffuse float64 // sky diffuse
	Global  float64 // Direct + Diffuse
}

// Irradiance evaluates the clear-sky model at a sun altitude in
// radians: Beer–Lambert transmittance over the Kasten–Young air mass
// gives direct-normal irradiance, projected onto the horizontal by
// sin(altitude), with a fixed diffuse fraction on top. Below the
// horizon everything is zero.
func Irradiance(altitude float64) Components {
	if altitude <= 0 {
		return Components{}
	}
	transmittance := math.Exp(-ExtinctionCoefficient * AirMass(altitude))
	dni := SolarConstant * transmittance
	direct := dni * math.Sin(altitude)
	diffuse := direct * DiffuseRatio
	return Components{Direct: direct, Diffuse: diffuse, Global: direct + diffuse}
}
