package report

import (
	"bytes"
	"testing"

	fluid "Eletta/internal/calc/fluid"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	rep := Report{
		Grade:            fluid.GradeVG220,
		TempC:            50.0,
		KinematicCSt:     127.4,
		DynamicPaS:       0.111,
		DensityKgM3:      874.6,
		CorrectionFactor: 1.079,
		Points: []Point{
			{FlowLPM: 150.0, DiameterMM: 29.0, Beta: 0.706, Reynolds: 863, DPmbar: 170, OK: false},
			{FlowLPM: 50.0, DiameterMM: 17.8, Beta: 0.434, Reynolds: 469, DPmbar: 140, OK: false},
		},
		Warnings: []string{"Reynolds number 863 < 4000 - Flow may be laminar, reducing measurement accuracy"},
	}

	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, rep))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	require.Greater(t, buf.Len(), 500)
}

func TestGeneratePropertiesOnly(t *testing.T) {
	t.Parallel()

	rep := Report{
		Title:            "Fluid Properties",
		Grade:            fluid.GradeVG320,
		TempC:            40.0,
		KinematicCSt:     320.0,
		DynamicPaS:       0.283,
		DensityKgM3:      885.4,
		CorrectionFactor: 1.074,
	}

	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, rep))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
