package fluid

import (
	"errors"
	"fmt"
	"math"
)

// Grade identifies a supported industrial gear oil.
type Grade string

const (
	GradeVG220 Grade = "VG220"
	GradeVG320 Grade = "VG320"
)

// Eletta S2 GL40 sensor constants.
const (
	PipeDiameterMM        = 41.0    // internal pipe diameter (mm)
	FloatDensity          = 8020.0  // stainless steel float density (kg/m³)
	WaterDensity          = 1000.0  // reference water density (kg/m³)
	DischargeCoefficient  = 0.61    // orifice discharge coefficient
	ThermalExpansionCoeff = 0.00065 // oil thermal expansion coefficient (1/°C)
)

// Recommended operating envelope for the S2 differential pressure cell.
const (
	MinReynolds = 4000.0 // minimum Reynolds number for turbulent flow
	MinBeta     = 0.25   // minimum beta ratio (d/D)
	MaxBeta     = 0.75   // maximum beta ratio
	MinDPmbar   = 50.0   // minimum differential pressure (mbar)
	MaxDPmbar   = 200.0  // maximum differential pressure (mbar)
)

// Properties holds a grade's calibration constants. Adding a grade means
// adding a row to the table below.
type Properties struct {
	Nu40C      float64 `json:"nu_40c"`      // kinematic viscosity at 40°C (cSt)
	Nu100C     float64 `json:"nu_100c"`     // kinematic viscosity at 100°C (cSt)
	Density15C float64 `json:"density_15c"` // density at 15°C (kg/m³)
}

var properties = map[Grade]Properties{
	GradeVG220: {Nu40C: 220.0, Nu100C: 19.0, Density15C: 895.0},
	GradeVG320: {Nu40C: 320.0, Nu100C: 24.5, Density15C: 900.0},
}

var (
	ErrUnknownGrade     = errors.New("unknown oil grade")
	ErrPropertyDomain   = errors.New("fluid property outside physical domain")
	ErrCorrectionDomain = errors.New("correction factor undefined for fluid density")
)

// ParseGrade converts a user-supplied string into a Grade.
func ParseGrade(s string) (Grade, error) {
	switch Grade(s) {
	case GradeVG220, GradeVG320:
		return Grade(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGrade, s)
}

// Lookup returns the calibration constants for a grade.
func Lookup(g Grade) (Properties, error) {
	p, ok := properties[g]
	if !ok {
		return Properties{}, fmt.Errorf("%w: %q", ErrUnknownGrade, g)
	}
	return p, nil
}

// waltherConstants fits log10(log10(nu+0.7)) = A - B*log10(T_K) through the
// grade's two reference points (40°C and 100°C).
func waltherConstants(nu40, nu100 float64) (a, b float64) {
	t1 := 40.0 + 273.15
	t2 := 100.0 + 273.15

	y1 := math.Log10(math.Log10(nu40 + 0.7))
	y2 := math.Log10(math.Log10(nu100 + 0.7))

	b = (y1 - y2) / (math.Log10(t2) - math.Log10(t1))
	a = y1 + b*math.Log10(t1)
	return a, b
}

// Viscosity returns kinematic viscosity in cSt at tempC using the
// Walther-ASTM correlation. No temperature clamp is applied; far outside
// the 20-80°C band the correlation is evaluated as-is.
func Viscosity(g Grade, tempC float64) (float64, error) {
	p, err := Lookup(g)
	if err != nil {
		return 0, err
	}
	tempK := tempC + 273.15
	if tempK <= 0 {
		return 0, fmt.Errorf("%w: %.2f°C is at or below absolute zero", ErrPropertyDomain, tempC)
	}

	a, b := waltherConstants(p.Nu40C, p.Nu100C)
	logLogNu := a - b*math.Log10(tempK)
	nu := math.Pow(10, math.Pow(10, logLogNu)) - 0.7

	if math.IsNaN(nu) || math.IsInf(nu, 0) || nu <= 0 {
		return 0, fmt.Errorf("%w: viscosity of %s at %.2f°C", ErrPropertyDomain, g, tempC)
	}
	return nu, nil
}

// Density returns oil density in kg/m³ at tempC using a linear thermal
// expansion model anchored at 15°C: ρ(T) = ρ15 * (1 - α*(T - 15)).
func Density(g Grade, tempC float64) (float64, error) {
	p, err := Lookup(g)
	if err != nil {
		return 0, err
	}
	rho := p.Density15C * (1 - ThermalExpansionCoeff*(tempC-15.0))
	if rho <= 0 {
		return 0, fmt.Errorf("%w: density of %s at %.2f°C", ErrPropertyDomain, g, tempC)
	}
	return rho, nil
}

// DynamicViscosity returns dynamic viscosity in Pa·s.
// 1 cSt = 1 mm²/s = 1e-6 m²/s, so μ = ν * 1e-6 * ρ.
func DynamicViscosity(g Grade, tempC float64) (float64, error) {
	nu, err := Viscosity(g, tempC)
	if err != nil {
		return 0, err
	}
	rho, err := Density(g, tempC)
	if err != nil {
		return 0, err
	}
	return nu * 1e-6 * rho, nil
}

// CorrectionFactor returns the liquid correction factor (LCF) that maps the
// sensor's water-calibrated scale reading to true oil flow:
//
//	LCF = sqrt[(ρ_float - ρ_oil) * ρ_water / ((ρ_float - ρ_water) * ρ_oil)]
//
// The radicand is guarded so a future grade denser than the float fails
// loudly instead of propagating NaN.
func CorrectionFactor(g Grade, tempC float64) (float64, error) {
	rhoOil, err := Density(g, tempC)
	if err != nil {
		return 0, err
	}

	numerator := (FloatDensity - rhoOil) * WaterDensity
	denominator := (FloatDensity - WaterDensity) * rhoOil
	if denominator == 0 || numerator/denominator <= 0 {
		return 0, fmt.Errorf("%w: oil density %.1f kg/m³", ErrCorrectionDomain, rhoOil)
	}

	return math.Sqrt(numerator / denominator), nil
}
