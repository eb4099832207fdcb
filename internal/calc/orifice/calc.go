package orifice

import (
	"errors"
	"fmt"
	"math"

	fluid "Eletta/internal/calc/fluid"

	log "github.com/sirupsen/logrus"
)

// DefaultTargetDPmbar is the mid-scale differential pressure the plate is
// sized for when the caller does not override it.
const DefaultTargetDPmbar = 125.0

const (
	maxIterations = 10
	toleranceMM   = 0.01
)

var ErrInvalidInput = errors.New("invalid input")

type Input struct {
	Grade        fluid.Grade `json:"grade"`
	TempC        float64     `json:"temp_c"`
	FlowLPM      float64     `json:"flow_lpm"`
	TargetDPmbar float64     `json:"target_dp_mbar"`
}

type Result struct {
	DiameterMM float64 `json:"diameter_mm"`
	BetaRatio  float64 `json:"beta_ratio"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
}

// Size computes the orifice diameter that produces the target differential
// pressure at the requested oil flow. The sensor is factory-calibrated for
// water, so the true oil flow is first converted to the equivalent
// water-scale flow through the LCF, and water density is used in the orifice
// equation; the density difference is already carried by the LCF step.
//
// The velocity-of-approach factor depends on the unknown diameter, so the
// equation is solved by fixed-point iteration from β = 0.5. Convergence is
// not guaranteed for flows that push β far outside [0.1, 0.9]; when the
// iteration cap is hit the last diameter is returned with Converged false.
func Size(in Input) (Result, error) {
	if in.FlowLPM <= 0 {
		return Result{}, fmt.Errorf("%w: flow %.2f L/min", ErrInvalidInput, in.FlowLPM)
	}
	if in.TargetDPmbar <= 0 {
		in.TargetDPmbar = DefaultTargetDPmbar
	}

	lcf, err := fluid.CorrectionFactor(in.Grade, in.TempC)
	if err != nil {
		return Result{}, err
	}

	// Sensor scale reading equivalent to the true oil flow.
	scaleFlowLPM := in.FlowLPM / lcf
	flowM3S := scaleFlowLPM / 60000.0
	dpPa := in.TargetDPmbar * 100.0
	rho := fluid.WaterDensity

	diameterMM := fluid.PipeDiameterMM * 0.5
	converged := false
	iterations := 0

	for i := 0; i < maxIterations; i++ {
		iterations = i + 1
		beta := diameterMM / fluid.PipeDiameterMM

		// Velocity of approach factor.
		epsilon := math.Sqrt(1 - math.Pow(beta, 4))
		if math.IsNaN(epsilon) {
			return Result{}, fmt.Errorf("%w: beta %.3f left the orifice equation domain", ErrInvalidInput, beta)
		}

		// Q = (Cd/ε) * A * sqrt(2*ΔP/ρ)  =>  A = Q*ε / (Cd*sqrt(2*ΔP/ρ))
		areaM2 := (flowM3S * epsilon) / (fluid.DischargeCoefficient * math.Sqrt(2*dpPa/rho))
		newDiameterMM := math.Sqrt(4*areaM2/math.Pi) * 1000.0

		if math.Abs(newDiameterMM-diameterMM) < toleranceMM {
			converged = true
			break
		}
		diameterMM = newDiameterMM
	}

	if !converged {
		log.WithFields(log.Fields{
			"grade":    in.Grade,
			"temp_c":   in.TempC,
			"flow_lpm": in.FlowLPM,
			"diameter": diameterMM,
		}).Warn("orifice sizing hit the iteration cap without converging")
	}

	return Result{
		DiameterMM: diameterMM,
		BetaRatio:  BetaRatio(diameterMM),
		Iterations: iterations,
		Converged:  converged,
	}, nil
}

// BetaRatio returns the orifice/pipe diameter ratio.
func BetaRatio(diameterMM float64) float64 {
	return diameterMM / fluid.PipeDiameterMM
}

// ReynoldsNumber returns the Reynolds number of the flow through the orifice.
func ReynoldsNumber(flowLPM, diameterMM float64, g fluid.Grade, tempC float64) (float64, error) {
	if flowLPM <= 0 {
		return 0, fmt.Errorf("%w: flow %.2f L/min", ErrInvalidInput, flowLPM)
	}
	if diameterMM <= 0 {
		return 0, fmt.Errorf("%w: orifice diameter %.2f mm", ErrInvalidInput, diameterMM)
	}

	flowM3S := flowLPM / 60000.0
	diameterM := diameterMM / 1000.0
	areaM2 := math.Pi * diameterM * diameterM / 4
	velocityMS := flowM3S / areaM2

	rho, err := fluid.Density(g, tempC)
	if err != nil {
		return 0, err
	}
	mu, err := fluid.DynamicViscosity(g, tempC)
	if err != nil {
		return 0, err
	}

	return rho * velocityMS * diameterM / mu, nil
}

// DifferentialPressure returns the pressure drop in mbar across the orifice
// for the given oil flow. Unlike Size this uses the plain orifice equation
// Q = Cd*A*sqrt(2*ΔP/ρ) without the velocity-of-approach factor; the
// asymmetry between sizing and reporting is deliberate and downstream
// numbers depend on it.
func DifferentialPressure(flowLPM, diameterMM float64, g fluid.Grade, tempC float64) (float64, error) {
	if flowLPM <= 0 {
		return 0, fmt.Errorf("%w: flow %.2f L/min", ErrInvalidInput, flowLPM)
	}
	if diameterMM <= 0 {
		return 0, fmt.Errorf("%w: orifice diameter %.2f mm", ErrInvalidInput, diameterMM)
	}

	flowM3S := flowLPM / 60000.0
	diameterM := diameterMM / 1000.0
	areaM2 := math.Pi * diameterM * diameterM / 4

	rho, err := fluid.Density(g, tempC)
	if err != nil {
		return 0, err
	}

	// ΔP = (Q / (Cd*A))² * ρ / 2, in Pa; 1 mbar = 100 Pa.
	velocityTerm := flowM3S / (fluid.DischargeCoefficient * areaM2)
	dpPa := velocityTerm * velocityTerm * rho / 2
	return dpPa / 100.0, nil
}

// ValidateOperatingConditions checks a flow/diameter pair against the S2
// accuracy envelope. All violated checks are reported together, in a fixed
// order (Reynolds, beta, ΔP); none is fatal and an empty slice means every
// parameter is within range.
func ValidateOperatingConditions(flowLPM, diameterMM float64, g fluid.Grade, tempC float64) ([]string, error) {
	var warnings []string

	reynolds, err := ReynoldsNumber(flowLPM, diameterMM, g, tempC)
	if err != nil {
		return nil, err
	}
	if reynolds < fluid.MinReynolds {
		warnings = append(warnings, fmt.Sprintf(
			"Reynolds number %.0f < %.0f - Flow may be laminar, reducing measurement accuracy",
			reynolds, fluid.MinReynolds))
	}

	beta := BetaRatio(diameterMM)
	if beta < fluid.MinBeta || beta > fluid.MaxBeta {
		warnings = append(warnings, fmt.Sprintf(
			"Beta ratio %.3f outside valid range [%.2f-%.2f] - May cause measurement errors",
			beta, fluid.MinBeta, fluid.MaxBeta))
	}

	dp, err := DifferentialPressure(flowLPM, diameterMM, g, tempC)
	if err != nil {
		return nil, err
	}
	if dp < fluid.MinDPmbar || dp > fluid.MaxDPmbar {
		warnings = append(warnings, fmt.Sprintf(
			"Differential pressure %.1f mbar outside S2 range [%.0f-%.0f mbar]",
			dp, fluid.MinDPmbar, fluid.MaxDPmbar))
	}

	return warnings, nil
}
