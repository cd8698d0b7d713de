package snow_melt_calc

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func new_test_generator(t *testing.T, itv Interval) *LoadGenerator {
	bf, hp, he := default_plant()
	rth, err := NewThermalResistances(2.0, bf, hp, he, DefaultSeriesOptions())
	require.NoError(t, err)
	loss, err := NewHeatLoss(NewConnection(5.0, 0.005, hp), he, DefaultSeriesOptions())
	require.NoError(t, err)
	return NewLoadGenerator(DefaultPhysicalConstants(), 520, he, rth, loss, 0.2, itv, DefaultSolverOptions())
}

func TestLoadSnowFree(t *testing.T) {
	lg := new_test_generator(t, IntervalH1)
	w := WeatherSample{WindSpeed: 3, Temperature: -2, Snowfall: 0, Cloudiness: 0.5, Humidity: 0.8, Precipitation: 0}

	res, err := lg.Load(w, 8.0, 8.0, 0, 0, false)
	require.NoError(t, err)

	assert.Equal(t, MODE_SNOW_FREE, res.Mode)
	assert.False(t, res.SnowBalancing)
	assert.False(t, res.CalcT)
	assert.Nil(t, res.ThetaSurf)
	assert.Greater(t, res.Q, 0.0)
	assert.Greater(t, res.QLoss, 0.0)
	assert.Equal(t, 0.0, res.MSnow)

	// power balance at the solution
	theta_surf := 8.0 - res.Q*lg.rth.Total
	l, err := new_surface_load(lg.c, AllLoadTerms(), 35, 1.0, 520, w, 8.0, 0)
	require.NoError(t, err)
	f, err := l.f_t(theta_surf)
	require.NoError(t, err)
	assert.LessOrEqual(t, math.Abs(f-res.Q), lg.opts.Tolerance)
}

func TestLoadSummer(t *testing.T) {
	lg := new_test_generator(t, IntervalH1)
	w := WeatherSample{WindSpeed: 2, Temperature: 25, Snowfall: 0, Cloudiness: 0.2, Humidity: 0.6, Precipitation: 0}

	res, err := lg.Load(w, 10.0, 20.0, 0, 0, false)
	require.NoError(t, err)

	assert.Equal(t, MODE_SUMMER, res.Mode)
	assert.True(t, res.CalcT)
	require.NotNil(t, res.ThetaSurf)
	assert.Equal(t, 0.0, res.Q)
	assert.Equal(t, 0.0, res.QNet)
}

func TestLoadMelting(t *testing.T) {
	lg := new_test_generator(t, IntervalH1)
	w := WeatherSample{WindSpeed: 3, Temperature: -2, Snowfall: 1, Cloudiness: 1, Humidity: 0.9, Precipitation: 1}

	res, err := lg.Load(w, 8.0, 0.0, 0, 10.0, false)
	require.NoError(t, err)

	assert.Equal(t, MODE_MELTING, res.Mode)
	assert.True(t, res.SnowBalancing)
	require.NotNil(t, res.ThetaSurf)
	assert.Equal(t, 0.0, *res.ThetaSurf)

	// the whole spread is used
	q_0 := 8.0 / lg.rth.Total
	assert.InEpsilon(t, q_0, res.Q, 1e-9)
	assert.InDelta(t, res.Loads.total(lg.r_f), res.Q, 1e-9)
	assert.InDelta(t, res.Loads.Lat+res.Loads.Sen, res.QNet, 1e-12)
	assert.Greater(t, res.Loads.Lat, 0.0)

	// the snow mass follows from the melted volume
	m_s := 10.0 + 1.0*lg.c.rho_w*35/1000.0 - res.Loads.Lat/lg.c.h_ph_sl*3600.0
	assert.InDelta(t, math.Max(0, m_s), res.MSnow, 1e-9)
}

func TestLoadLossesOnly(t *testing.T) {
	lg := new_test_generator(t, IntervalH1)
	w := WeatherSample{WindSpeed: 8, Temperature: -15, Snowfall: 0.5, Cloudiness: 1, Humidity: 0.9, Precipitation: 0.5}

	// a small spread does not cover the losses at the melting point
	res, err := lg.Load(w, 0.05, 0.0, 0, 5.0, false)
	require.NoError(t, err)

	assert.Equal(t, MODE_LOSSES_ONLY, res.Mode)
	assert.True(t, res.SnowBalancing)
	assert.False(t, res.CalcT)
	assert.Equal(t, 0.0, res.Loads.Lat)
	assert.Equal(t, 0.0, res.QNet)

	// nothing melts, the snowfall accumulates
	assert.InDelta(t, 5.0+0.5*lg.c.rho_w*35/1000.0, res.MSnow, 1e-9)
}

func TestLoadFrozenBoreholeWall(t *testing.T) {
	lg := new_test_generator(t, IntervalH1)
	w := WeatherSample{WindSpeed: 3, Temperature: -5, Snowfall: 1, Cloudiness: 1, Humidity: 0.9, Precipitation: 1}

	// the wall is warmer than the preceding surface but below the melting point
	theta_b_0, theta_surf_0 := -1.0, -3.0
	res, err := lg.Load(w, theta_b_0, theta_surf_0, 0, 10, false)
	require.NoError(t, err)

	assert.Equal(t, MODE_LOSSES_ONLY, res.Mode)
	assert.False(t, res.CalcT)
	assert.Nil(t, res.ThetaSurf)
	assert.Greater(t, res.Evaluations, 0)
	assert.Equal(t, 0.0, res.Loads.Lat)
	assert.Equal(t, 0.0, res.QNet)

	sl, err := new_surface_load(lg.c, AllLoadTerms(), 35, lg.r_f, 520, w, theta_surf_0, 0)
	require.NoError(t, err)
	sl = sl.with_terms(sl.terms.without_melting(), lg.r_f)
	f, err := sl.f_q(res.Q, theta_b_0, lg.rth.Total)
	require.NoError(t, err)
	assert.LessOrEqual(t, math.Abs(f), lg.opts.Tolerance)

	// nothing melts
	assert.InDelta(t, 10.0+1.0*lg.c.rho_w*35/1000.0, res.MSnow, 1e-9)
}

func TestLoadSnowBalancingHysteresis(t *testing.T) {
	lg := new_test_generator(t, IntervalH1)
	w := WeatherSample{WindSpeed: 2, Temperature: -8, Snowfall: 1, Cloudiness: 1, Humidity: 0.9, Precipitation: 1}

	theta_b_0 := -5.0
	theta_surf_0 := 0.0

	// snow-free attempt freezes the surface
	res, err := lg.Load(w, theta_b_0, theta_surf_0, 0, 0, false)
	require.NoError(t, err)
	assert.False(t, res.SnowBalancing)
	assert.Equal(t, 0.0, res.MSnow)

	theta_surf := theta_b_0 - res.Q*lg.rth.Total
	if res.CalcT {
		theta_surf = *res.ThetaSurf
	}
	require.Less(t, theta_surf, 0.0)
	require.True(t, SnowBalancingRequested(theta_surf, w.Snowfall, res.MSnow))

	// repeated step with snow balancing
	res, err = lg.Load(w, theta_b_0, theta_surf_0, 0, 0, true)
	require.NoError(t, err)
	assert.Equal(t, MODE_NO_SPREAD, res.Mode)
	assert.True(t, res.SnowBalancing)
	assert.True(t, res.CalcT)
	require.NotNil(t, res.ThetaSurf)
	assert.Less(t, *res.ThetaSurf, 0.0)
	assert.Equal(t, 0.0, res.Q)
	assert.Greater(t, res.MSnow, 0.0)
	assert.InDelta(t, 1.0*lg.c.rho_w*35/1000.0, res.MSnow, 1e-9)
}

func TestLoadRandomized(t *testing.T) {
	lg := new_test_generator(t, IntervalH1)
	c := lg.c
	m_w_max := c.h_max / 1000.0 * c.rho_w * 35
	rnd := rand.New(rand.NewSource(1))

	uniform := func(lo, hi float64) float64 {
		return lo + (hi-lo)*rnd.Float64()
	}

	for i := 0; i < 200; i++ {
		theta_inf := uniform(-15, 5)
		rr := uniform(0, 3)
		w := WeatherSample{
			WindSpeed:     uniform(0, 10),
			Temperature:   theta_inf,
			Snowfall:      get_s_r(rr, theta_inf),
			Cloudiness:    uniform(0, 1),
			Humidity:      uniform(0.3, 1),
			Precipitation: rr,
		}
		m_s_0 := 0.0
		if rnd.Intn(2) == 0 {
			m_s_0 = uniform(0, 50)
		}
		theta_b_0 := uniform(-5, 15)
		theta_surf_0 := uniform(-10, 10)
		m_w_0 := uniform(0, m_w_max)
		start_sb := rnd.Intn(4) == 0

		res, err := lg.Load(w, theta_b_0, theta_surf_0, m_w_0, m_s_0, start_sb)
		require.NoError(t, err, "case %d: %+v", i, w)

		assert.GreaterOrEqual(t, res.Q, 0.0)
		assert.GreaterOrEqual(t, res.QLoss, 0.0)
		assert.GreaterOrEqual(t, res.MWater, 0.0)
		assert.LessOrEqual(t, res.MWater, m_w_max+1e-9)
		assert.GreaterOrEqual(t, res.MSnow, 0.0)
		assert.Equal(t, res.Mode.SnowBalancing(), res.SnowBalancing)
		assert.Equal(t, res.Mode.CalcT(), res.ThetaSurf != nil)
		if !res.SnowBalancing {
			assert.Equal(t, 0.0, res.MSnow)
		}

		sl, err := new_surface_load(c, AllLoadTerms(), 35, lg.r_f, 520, w, theta_surf_0, m_w_0)
		require.NoError(t, err)
		sl_m := sl.with_terms(sl.terms.without_melting(), lg.r_f)
		sl_f := sl.with_terms(sl.terms, 1.0)
		tol := lg.opts.Tolerance

		switch res.Mode {
		case MODE_NO_SPREAD:
			assert.Less(t, theta_b_0, theta_surf_0, "case %d", i)
			assert.Greater(t, res.Evaluations, 0, "case %d", i)
			f, err := sl_m.f_t(*res.ThetaSurf)
			require.NoError(t, err)
			assert.LessOrEqual(t, math.Abs(f), tol, "case %d", i)
		case MODE_LOSSES_ONLY:
			assert.GreaterOrEqual(t, theta_b_0, theta_surf_0, "case %d", i)
			f, err := sl_m.f_q(res.Q, theta_b_0, lg.rth.Total)
			require.NoError(t, err)
			if res.Q > 0 {
				assert.LessOrEqual(t, math.Abs(f), tol, "case %d", i)
			} else {
				// the balance has its root below zero
				assert.LessOrEqual(t, f, tol, "case %d", i)
			}
		case MODE_MELTING:
			assert.GreaterOrEqual(t, theta_b_0, theta_surf_0, "case %d", i)
			assert.Equal(t, 0.0, *res.ThetaSurf, "case %d", i)
			assert.InDelta(t, math.Max(0, res.Loads.total(lg.r_f)), res.Q, 1e-9, "case %d", i)
		case MODE_SNOW_FREE:
			f, err := sl_f.f_q(res.Q, theta_b_0, lg.rth.Total)
			require.NoError(t, err)
			assert.LessOrEqual(t, math.Abs(f), tol, "case %d", i)
		case MODE_SUMMER:
			f, err := sl_f.with_terms(sl_f.terms.without_melting(), 1.0).f_t(*res.ThetaSurf)
			require.NoError(t, err)
			assert.LessOrEqual(t, math.Abs(f), tol, "case %d", i)
		default:
			t.Errorf("case %d: unexpected mode %d", i, res.Mode)
		}
	}
}
