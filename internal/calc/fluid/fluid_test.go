package fluid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViscosityReproducesCalibrationPoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		grade Grade
		tempC float64
		want  float64
	}{
		{"VG220 at 40C", GradeVG220, 40.0, 220.0},
		{"VG220 at 100C", GradeVG220, 100.0, 19.0},
		{"VG320 at 40C", GradeVG320, 40.0, 320.0},
		{"VG320 at 100C", GradeVG320, 100.0, 24.5},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			nu, err := Viscosity(tc.grade, tc.tempC)
			require.NoError(t, err)
			require.InEpsilon(t, tc.want, nu, 0.01)
		})
	}
}

func TestViscosityDecreasesWithTemperature(t *testing.T) {
	t.Parallel()

	for _, grade := range []Grade{GradeVG220, GradeVG320} {
		prev := 0.0
		for tempC := 20.0; tempC <= 100.0; tempC += 10.0 {
			nu, err := Viscosity(grade, tempC)
			require.NoError(t, err)
			require.Positive(t, nu)
			if prev > 0 {
				require.Less(t, nu, prev, "viscosity of %s must decrease at %.0f°C", grade, tempC)
			}
			prev = nu
		}
	}
}

func TestViscosityUnknownGrade(t *testing.T) {
	t.Parallel()

	_, err := Viscosity(Grade("VG460"), 40.0)
	require.ErrorIs(t, err, ErrUnknownGrade)
}

func TestViscosityBelowAbsoluteZero(t *testing.T) {
	t.Parallel()

	_, err := Viscosity(GradeVG220, -300.0)
	require.ErrorIs(t, err, ErrPropertyDomain)
}

func TestDensityAnchorPoints(t *testing.T) {
	t.Parallel()

	rho220, err := Density(GradeVG220, 15.0)
	require.NoError(t, err)
	require.InDelta(t, 895.0, rho220, 1e-9)

	rho320, err := Density(GradeVG320, 15.0)
	require.NoError(t, err)
	require.InDelta(t, 900.0, rho320, 1e-9)
}

func TestDensityVG220At50(t *testing.T) {
	t.Parallel()

	rho, err := Density(GradeVG220, 50.0)
	require.NoError(t, err)
	require.InEpsilon(t, 872.0, rho, 0.01)
}

func TestDensityDecreasesWithTemperature(t *testing.T) {
	t.Parallel()

	for _, grade := range []Grade{GradeVG220, GradeVG320} {
		prev := 0.0
		for tempC := 20.0; tempC <= 80.0; tempC += 10.0 {
			rho, err := Density(grade, tempC)
			require.NoError(t, err)
			if prev > 0 {
				require.Less(t, rho, prev)
			}
			prev = rho
		}
	}
}

func TestDensityDomainError(t *testing.T) {
	t.Parallel()

	// Linear expansion drives density non-positive around 1554°C.
	_, err := Density(GradeVG220, 1600.0)
	require.ErrorIs(t, err, ErrPropertyDomain)
}

func TestDynamicViscosity(t *testing.T) {
	t.Parallel()

	nu, err := Viscosity(GradeVG320, 60.0)
	require.NoError(t, err)
	rho, err := Density(GradeVG320, 60.0)
	require.NoError(t, err)

	mu, err := DynamicViscosity(GradeVG320, 60.0)
	require.NoError(t, err)
	require.InDelta(t, nu*1e-6*rho, mu, 1e-12)
	require.Positive(t, mu)
}

func TestCorrectionFactorGreaterThanOne(t *testing.T) {
	t.Parallel()

	for _, grade := range []Grade{GradeVG220, GradeVG320} {
		for tempC := 20.0; tempC <= 80.0; tempC += 10.0 {
			lcf, err := CorrectionFactor(grade, tempC)
			require.NoError(t, err)
			require.Greater(t, lcf, 1.0, "%s at %.0f°C", grade, tempC)
			require.Less(t, lcf, 1.2)
		}
	}
}

func TestCorrectionFactorVG220At50(t *testing.T) {
	t.Parallel()

	lcf, err := CorrectionFactor(GradeVG220, 50.0)
	require.NoError(t, err)
	require.InEpsilon(t, 1.073, lcf, 0.01)
}

func TestParseGrade(t *testing.T) {
	t.Parallel()

	g, err := ParseGrade("VG220")
	require.NoError(t, err)
	require.Equal(t, GradeVG220, g)

	g, err = ParseGrade("VG320")
	require.NoError(t, err)
	require.Equal(t, GradeVG320, g)

	_, err = ParseGrade("water")
	require.ErrorIs(t, err, ErrUnknownGrade)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	p, err := Lookup(GradeVG220)
	require.NoError(t, err)
	require.Equal(t, 220.0, p.Nu40C)
	require.Equal(t, 19.0, p.Nu100C)
	require.Equal(t, 895.0, p.Density15C)

	_, err = Lookup(Grade(""))
	require.ErrorIs(t, err, ErrUnknownGrade)
}
