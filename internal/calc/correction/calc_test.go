package correction

import (
	"testing"

	fluid "Eletta/internal/calc/fluid"
	orifice "Eletta/internal/calc/orifice"

	"github.com/stretchr/testify/require"
)

func TestCalculateUnderReadingSensor(t *testing.T) {
	t.Parallel()

	res, err := Calculate(Input{
		Grade:            fluid.GradeVG220,
		TempC:            50.0,
		TrueFlowLPM:      150.0,
		SensorReadingLPM: 100.0,
		CurrentOrificeMM: 20.0,
	})
	require.NoError(t, err)

	// Sized for the true flow, independent of the erroneous reading.
	sized, err := orifice.Size(orifice.Input{Grade: fluid.GradeVG220, TempC: 50.0, FlowLPM: 150.0})
	require.NoError(t, err)
	require.InEpsilon(t, sized.DiameterMM, res.CorrectedOrificeMM, 0.01)
	require.Greater(t, res.CorrectedOrificeMM, res.CurrentOrificeMM)

	require.InDelta(t, -33.33, res.ErrorPercent, 0.01)
	require.InDelta(t, 20.0/fluid.PipeDiameterMM, res.CurrentBeta, 1e-12)
	require.InDelta(t, sized.BetaRatio, res.CorrectedBeta, 1e-12)

	// A larger orifice passes the same flow with a smaller pressure drop
	// and a lower velocity.
	require.Less(t, res.CorrectedDPmbar, res.CurrentDPmbar)
	require.Less(t, res.CorrectedReynolds, res.CurrentReynolds)
	require.Positive(t, res.CorrectedReynolds)
}

func TestCalculateErrorPercent(t *testing.T) {
	t.Parallel()

	res, err := Calculate(Input{
		Grade:            fluid.GradeVG220,
		TempC:            50.0,
		TrueFlowLPM:      100.0,
		SensorReadingLPM: 80.0,
		CurrentOrificeMM: 20.0,
	})
	require.NoError(t, err)
	require.InDelta(t, -20.0, res.ErrorPercent, 0.1)

	res, err = Calculate(Input{
		Grade:            fluid.GradeVG220,
		TempC:            50.0,
		TrueFlowLPM:      100.0,
		SensorReadingLPM: 125.0,
		CurrentOrificeMM: 20.0,
	})
	require.NoError(t, err)
	require.InDelta(t, 25.0, res.ErrorPercent, 0.1)
}

func TestCalculateEchoesInputs(t *testing.T) {
	t.Parallel()

	res, err := Calculate(Input{
		Grade:            fluid.GradeVG320,
		TempC:            40.0,
		TrueFlowLPM:      120.0,
		SensorReadingLPM: 110.0,
		CurrentOrificeMM: 22.0,
	})
	require.NoError(t, err)
	require.Equal(t, 120.0, res.TrueFlowLPM)
	require.Equal(t, 110.0, res.SensorReadingLPM)
	require.Equal(t, 22.0, res.CurrentOrificeMM)
}

func TestCalculateInvalidInputs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   Input
	}{
		{"zero true flow", Input{Grade: fluid.GradeVG220, TempC: 50, SensorReadingLPM: 100, CurrentOrificeMM: 20}},
		{"zero sensor reading", Input{Grade: fluid.GradeVG220, TempC: 50, TrueFlowLPM: 150, CurrentOrificeMM: 20}},
		{"zero orifice", Input{Grade: fluid.GradeVG220, TempC: 50, TrueFlowLPM: 150, SensorReadingLPM: 100}},
		{"orifice at pipe diameter", Input{Grade: fluid.GradeVG220, TempC: 50, TrueFlowLPM: 150, SensorReadingLPM: 100, CurrentOrificeMM: 41.0}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Calculate(tc.in)
			require.ErrorIs(t, err, orifice.ErrInvalidInput)
		})
	}
}
