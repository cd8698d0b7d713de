package snow_melt_calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plant with the default parameters of the command
func default_plant() (Borefield, *HeatpipeArray, *HeatingElement) {
	bf := Borefield{NewBorehole(100, 2.5, 0.15, 0, 0)}
	hp := NewHeatpipeArray(6, 0.15, 0.12, 0.016, 0.016, 0.015, 2.0, 0.03, 14.0)
	he := NewHeatingElement(35, 0.025, 2.1, 14.0, 0.032, 0.030, 0.05, 1000, 0.25, 0.03)
	return bf, hp, he
}

func default_resistances(t *testing.T) *ThermalResistances {
	bf, hp, he := default_plant()
	rth, err := NewThermalResistances(2.0, bf, hp, he, DefaultSeriesOptions())
	require.NoError(t, err)
	return rth
}

func TestThermalResistancesPositive(t *testing.T) {
	rth := default_resistances(t)

	assert.Greater(t, rth.Contact, 0.0)
	assert.Greater(t, rth.Borehole, 0.0)
	assert.Greater(t, rth.Heatpipe, 0.0)
	assert.Greater(t, rth.HeatingElement, 0.0)

	assert.InDelta(t, rth.Contact+rth.Borehole+rth.Heatpipe+rth.HeatingElement, rth.Total, 1e-15)
	assert.InDelta(t, rth.Contact+rth.Borehole+rth.Heatpipe, rth.GroundToHeatpipe, 1e-15)
	assert.Less(t, rth.GroundToHeatpipe, rth.Total)
}

func TestHeatpipeResistance(t *testing.T) {
	bf, hp, _ := default_plant()
	assert.InDelta(t, 1.0/3000.0, get_r_th_hp(bf, hp), 1e-15)

	bf2 := Borefield{NewBorehole(100, 2.5, 0.15, 0, 0), NewBorehole(100, 2.5, 0.15, 6, 0)}
	assert.InDelta(t, 1.0/6000.0, get_r_th_hp(bf2, hp), 1e-15)
}

func TestBoreholeResistanceRotationInvariant(t *testing.T) {
	bf, hp, _ := default_plant()

	r_0, err := get_r_th_b(2.0, bf, hp)
	require.NoError(t, err)
	require.Greater(t, r_0, 0.0)

	for _, phi := range []float64{0.1, 0.5, math.Pi / 6, 1.0, 2.5} {
		r, err := get_r_th_b(2.0, bf, hp.Rotated(phi))
		require.NoError(t, err)
		assert.InEpsilon(t, r_0, r, 1e-9, "phi=%g", phi)
	}
}

func TestBoreholeResistanceScalesWithLength(t *testing.T) {
	_, hp, _ := default_plant()

	r_100, err := get_r_th_b(2.0, Borefield{NewBorehole(100, 2.5, 0.15, 0, 0)}, hp)
	require.NoError(t, err)
	r_200, err := get_r_th_b(2.0, Borefield{NewBorehole(200, 2.5, 0.15, 0, 0)}, hp)
	require.NoError(t, err)

	assert.InEpsilon(t, r_100/2.0, r_200, 1e-12)
}

func TestContactResistanceScalesWithLength(t *testing.T) {
	r_1 := get_r_th_c(Borefield{NewBorehole(100, 2.5, 0.15, 0, 0)})
	r_2 := get_r_th_c(Borefield{NewBorehole(100, 2.5, 0.15, 0, 0), NewBorehole(100, 2.5, 0.15, 6, 0)})

	assert.Greater(t, r_1, 0.0)
	assert.InEpsilon(t, r_1/2.0, r_2, 1e-12)
}

func TestHeatingElementSeriesStoppingRule(t *testing.T) {
	_, _, he := default_plant()
	opts := DefaultSeriesOptions()

	kappa_o := 1e10
	kappa_u := 1e-10
	x_u := 1e10

	ssum, n, err := sum_fct(kappa_o, kappa_u, he.s_r, 0.0, he.x_o(), x_u, he.lambda_c, opts)
	require.NoError(t, err)

	beta_o := kappa_o * he.s_r / he.lambda_c
	beta_u := kappa_u * he.s_r / he.lambda_c

	// the last term added is below the tolerance
	last := series_term(n, beta_o, beta_u, he.s_r, 0.0, he.x_o(), x_u, he.lambda_c)
	assert.Less(t, math.Abs(last), opts.Tolerance)

	var partial float64
	for j := 1; j <= n; j++ {
		partial += series_term(j, beta_o, beta_u, he.s_r, 0.0, he.x_o(), x_u, he.lambda_c)
	}
	assert.InDelta(t, partial, ssum, 1e-15)

	// one more term does not move the sum beyond the tolerance
	next := ssum + series_term(n+1, beta_o, beta_u, he.s_r, 0.0, he.x_o(), x_u, he.lambda_c)
	assert.Less(t, math.Abs(next-ssum), opts.Tolerance)
}

func TestHeatingElementSeriesCap(t *testing.T) {
	bf, hp, he := default_plant()

	_, err := NewThermalResistances(2.0, bf, hp, he, SeriesOptions{Tolerance: 1e-6, MaxTerms: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSeriesNotConverged)
}

func TestHeatingElementResistanceDeeperPipes(t *testing.T) {
	_, _, he := default_plant()
	deep := NewHeatingElement(35, 0.08, 2.1, 14.0, 0.032, 0.030, 0.05, 1000, 0.25, 0.03)

	r, err := get_r_th_he(he, DefaultSeriesOptions())
	require.NoError(t, err)
	r_deep, err := get_r_th_he(deep, DefaultSeriesOptions())
	require.NoError(t, err)

	assert.Greater(t, r_deep, r)
}
