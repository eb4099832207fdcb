package correction

import (
	"fmt"

	fluid "Eletta/internal/calc/fluid"
	orifice "Eletta/internal/calc/orifice"
)

type Input struct {
	Grade            fluid.Grade `json:"grade"`
	TempC            float64     `json:"temp_c"`
	TrueFlowLPM      float64     `json:"true_flow_lpm"`
	SensorReadingLPM float64     `json:"sensor_reading_lpm"`
	CurrentOrificeMM float64     `json:"current_orifice_mm"`
}

type Result struct {
	TrueFlowLPM        float64 `json:"true_flow_lpm"`
	SensorReadingLPM   float64 `json:"sensor_reading_lpm"`
	ErrorPercent       float64 `json:"error_percent"`
	CurrentOrificeMM   float64 `json:"current_orifice_mm"`
	CorrectedOrificeMM float64 `json:"corrected_orifice_mm"`
	CurrentBeta        float64 `json:"current_beta"`
	CorrectedBeta      float64 `json:"corrected_beta"`
	CurrentDPmbar      float64 `json:"current_dp_mbar"`
	CorrectedDPmbar    float64 `json:"corrected_dp_mbar"`
	CurrentReynolds    float64 `json:"current_reynolds"`
	CorrectedReynolds  float64 `json:"corrected_reynolds"`
	Converged          bool    `json:"converged"`
}

// Calculate quantifies a sensor miscalibration and re-sizes the orifice for
// the true flow. The diagnostics for the current plate are computed at the
// true flow (the physically real flow through the existing hardware), and
// the corrected diameter is independent of the erroneous reading. Checking
// the corrected plate against the operating envelope is left to the caller.
func Calculate(in Input) (Result, error) {
	if in.TrueFlowLPM <= 0 {
		return Result{}, fmt.Errorf("%w: true flow %.2f L/min", orifice.ErrInvalidInput, in.TrueFlowLPM)
	}
	if in.SensorReadingLPM <= 0 {
		return Result{}, fmt.Errorf("%w: sensor reading %.2f L/min", orifice.ErrInvalidInput, in.SensorReadingLPM)
	}
	if in.CurrentOrificeMM <= 0 || in.CurrentOrificeMM >= fluid.PipeDiameterMM {
		return Result{}, fmt.Errorf("%w: current orifice %.2f mm must be inside (0, %.0f) mm",
			orifice.ErrInvalidInput, in.CurrentOrificeMM, fluid.PipeDiameterMM)
	}

	// Positive means the sensor over-reads.
	errorPercent := (in.SensorReadingLPM - in.TrueFlowLPM) / in.TrueFlowLPM * 100.0

	currentDP, err := orifice.DifferentialPressure(in.TrueFlowLPM, in.CurrentOrificeMM, in.Grade, in.TempC)
	if err != nil {
		return Result{}, err
	}
	currentReynolds, err := orifice.ReynoldsNumber(in.TrueFlowLPM, in.CurrentOrificeMM, in.Grade, in.TempC)
	if err != nil {
		return Result{}, err
	}

	corrected, err := orifice.Size(orifice.Input{
		Grade:   in.Grade,
		TempC:   in.TempC,
		FlowLPM: in.TrueFlowLPM,
	})
	if err != nil {
		return Result{}, err
	}

	correctedDP, err := orifice.DifferentialPressure(in.TrueFlowLPM, corrected.DiameterMM, in.Grade, in.TempC)
	if err != nil {
		return Result{}, err
	}
	correctedReynolds, err := orifice.ReynoldsNumber(in.TrueFlowLPM, corrected.DiameterMM, in.Grade, in.TempC)
	if err != nil {
		return Result{}, err
	}

	return Result{
		TrueFlowLPM:        in.TrueFlowLPM,
		SensorReadingLPM:   in.SensorReadingLPM,
		ErrorPercent:       errorPercent,
		CurrentOrificeMM:   in.CurrentOrificeMM,
		CorrectedOrificeMM: corrected.DiameterMM,
		CurrentBeta:        orifice.BetaRatio(in.CurrentOrificeMM),
		CorrectedBeta:      corrected.BetaRatio,
		CurrentDPmbar:      currentDP,
		CorrectedDPmbar:    correctedDP,
		CurrentReynolds:    currentReynolds,
		CorrectedReynolds:  correctedReynolds,
		Converged:          corrected.Converged,
	}, nil
}
