package snow_melt_calc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindZeroCrossingDecreasing(t *testing.T) {
	opts := DefaultSolverOptions()
	f := func(x float64) (float64, error) {
		return 1234.5 - 3.0*x, nil
	}

	x, evals, err := find_zero_crossing(f, true, opts)
	require.NoError(t, err)

	r, _ := f(x)
	assert.LessOrEqual(t, math.Abs(r), opts.Tolerance)
	assert.InDelta(t, 411.5, x, 1e-3)
	assert.Greater(t, evals, 1)
}

func TestFindZeroCrossingIncreasing(t *testing.T) {
	opts := DefaultSolverOptions()
	f := func(x float64) (float64, error) {
		return x*x*x + 10.0, nil
	}

	x, _, err := find_zero_crossing(f, false, opts)
	require.NoError(t, err)

	r, _ := f(x)
	assert.LessOrEqual(t, math.Abs(r), opts.Tolerance)
	assert.Less(t, x, 0.0)
}

func TestFindZeroCrossingRootAtStart(t *testing.T) {
	x, evals, err := find_zero_crossing(func(x float64) (float64, error) {
		return -x, nil
	}, true, DefaultSolverOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 1, evals)
}

func TestFindZeroCrossingDiscontinuous(t *testing.T) {
	opts := SolverOptions{Tolerance: 0.001, InitialStep: 100, MaxEvaluations: 500}

	// sign change without a zero
	f := func(x float64) (float64, error) {
		if x < 7.3 {
			return 1.0, nil
		}
		return -1.0, nil
	}

	_, evals, err := find_zero_crossing(f, true, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotConverged))
	assert.Equal(t, opts.MaxEvaluations, evals)
}

func TestFindZeroCrossingNaN(t *testing.T) {
	_, _, err := find_zero_crossing(func(x float64) (float64, error) {
		return math.NaN(), nil
	}, true, DefaultSolverOptions())
	assert.ErrorIs(t, err, ErrNotConverged)
}

func TestFindZeroCrossingPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := find_zero_crossing(func(x float64) (float64, error) {
		if x < -10 {
			return 0, boom
		}
		return 1.0, nil
	}, false, DefaultSolverOptions())
	assert.ErrorIs(t, err, boom)
}

func TestSolveBalances(t *testing.T) {
	c := DefaultPhysicalConstants()
	rth := default_resistances(t)
	w := WeatherSample{WindSpeed: 3, Temperature: -2, Snowfall: 0.5, Cloudiness: 0.5, Humidity: 0.8, Precipitation: 0.5}
	opts := DefaultSolverOptions()

	sl, err := new_surface_load(c, AllLoadTerms(), 35, 1.0, 500, w, 5.0, 1.0)
	require.NoError(t, err)

	q, loads, _, err := solve_f_q(sl, 8.0, rth.Total, opts)
	require.NoError(t, err)
	f, err := sl.f_q(q, 8.0, rth.Total)
	require.NoError(t, err)
	assert.LessOrEqual(t, math.Abs(f), opts.Tolerance)
	assert.InDelta(t, q, loads.total(1.0), opts.Tolerance)

	sl_t := sl.with_terms(sl.terms.without_melting(), 0.2)
	theta, loads, _, err := solve_f_t(sl_t, opts)
	require.NoError(t, err)
	f, err = sl_t.f_t(theta)
	require.NoError(t, err)
	assert.LessOrEqual(t, math.Abs(f), opts.Tolerance)
	assert.Equal(t, 0.0, loads.Lat)
	assert.Equal(t, 0.0, loads.Sen)
}
