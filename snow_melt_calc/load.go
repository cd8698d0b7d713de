package snow_melt_calc

import (
	"fmt"
	"math"
)

// Surface load of the plant, determined by a steady-state power balance of
// ground, borehole and surface for each time step.
//
// Modes 1 to 3 let a snow/ice layer form on the surface (melting takes longer
// than one step), modes 4 and 5 keep the surface free of snow.

// LoadGenerator holds everything that stays constant between time steps.
type LoadGenerator struct {
	c     *PhysicalConstants
	z_asl float64 // altitude above sea level, m
	he    *HeatingElement
	rth   *ThermalResistances
	loss  *HeatLoss
	r_f   float64 // free-area ratio during snow balancing, -
	itv   Interval
	opts  SolverOptions
}

/*
Args:

	c: physical properties
	z_asl: altitude above sea level, m
	he: heating element
	rth: thermal resistances
	loss: thermal losses of connection and underside
	r_f: free-area ratio during snow balancing, -
	itv: time step
	opts: solver options
*/
func NewLoadGenerator(
	c *PhysicalConstants,
	z_asl float64,
	he *HeatingElement,
	rth *ThermalResistances,
	loss *HeatLoss,
	r_f float64,
	itv Interval,
	opts SolverOptions,
) *LoadGenerator {
	return &LoadGenerator{
		c:     c,
		z_asl: z_asl,
		he:    he,
		rth:   rth,
		loss:  loss,
		r_f:   r_f,
		itv:   itv,
		opts:  opts,
	}
}

// LoadResult is the outcome of one time step.
type LoadResult struct {
	Q             float64  // extraction power without losses, W, never negative
	QNet          float64  // net power used for melting (latent + sensible), W
	QLoss         float64  // losses of connection and underside, W
	CalcT         bool     // surface temperature set by the step
	ThetaSurf     *float64 // surface temperature, degree C, nil when CalcT is false
	MWater        float64  // water on the surface, kg
	MSnow         float64  // snow/ice on the surface, kg
	SnowBalancing bool
	Mode          SimulationMode
	Loads         SurfaceLoads
	Evaluations   int // residual evaluations of the solver
}

/*
Surface load of one time step.

	Args:
		w: weather of the step
		theta_b_0: borehole wall temperature of the preceding step, degree C
		theta_surf_0: surface temperature of the preceding step, degree C
		m_w_0: water on the surface at the preceding step, kg
		m_s_0: snow on the surface at the preceding step, kg
		start_sb: snow balancing requested by the preceding invocation

	Returns:
		step result
*/
func (lg *LoadGenerator) Load(
	w WeatherSample,
	theta_b_0, theta_surf_0, m_w_0, m_s_0 float64,
	start_sb bool,
) (*LoadResult, error) {
	c := lg.c
	r_th := lg.rth.Total

	sl, err := new_surface_load(c, AllLoadTerms(), lg.he.a_he, lg.r_f, lg.z_asl, w, theta_surf_0, m_w_0)
	if err != nil {
		return nil, err
	}

	res := &LoadResult{SnowBalancing: is_snow_balancing(m_s_0, start_sb)}

	var q float64
	var theta_surf float64

	if res.SnowBalancing {
		// power available from the ground against the preceding surface
		q_0 := (theta_b_0 - theta_surf_0) / r_th

		// explicit evaluation at the melting point
		theta_mp := c.theta_mp
		var l_mp SurfaceLoads
		var q_r float64
		if q_0 >= 0 {
			l_mp, err = sl.with_previous_surface(theta_mp).loads(theta_mp)
			if err != nil {
				return nil, err
			}
			// power left for melting
			q_r = (theta_b_0-theta_mp)/r_th - l_mp.losses(lg.r_f)
		}

		res.Mode = get_snow_balancing_mode(q_0, q_r)
		switch res.Mode {
		case MODE_NO_SPREAD:
			// heat comes from the ground only
			sl_m := sl.with_terms(sl.terms.without_melting(), lg.r_f)
			theta_surf, res.Loads, res.Evaluations, err = solve_f_t(sl_m, lg.opts)
			if err != nil {
				return nil, fmt.Errorf("mode %d: %w", res.Mode, err)
			}
			q = -1
		case MODE_LOSSES_ONLY:
			sl_m := sl.with_terms(sl.terms.without_melting(), lg.r_f)
			q, res.Loads, res.Evaluations, err = solve_f_q(sl_m, theta_b_0, r_th, lg.opts)
			if err != nil {
				return nil, fmt.Errorf("mode %d: %w", res.Mode, err)
			}
		case MODE_MELTING:
			// melted volume flux, m3/s
			v_s := math.Max(0, q_r/(c.rho_w*(c.h_ph_sl+c.c_p_s*(theta_mp-w.Temperature))))

			res.Loads = SurfaceLoads{
				Lat: c.rho_w * c.h_ph_sl * v_s,
				Sen: c.rho_w * c.c_p_s * (theta_mp - w.Temperature) * v_s,
				Con: l_mp.Con,
				Rad: l_mp.Rad,
				Eva: l_mp.Eva,
			}
			theta_surf = theta_mp
			q = res.Loads.total(lg.r_f)
		}
	} else {
		res.Mode = MODE_SNOW_FREE
		// the whole surface is free of snow
		sl_f := sl.with_terms(sl.terms, 1.0)
		q, res.Loads, res.Evaluations, err = solve_f_q(sl_f, theta_b_0, r_th, lg.opts)
		if err != nil {
			return nil, fmt.Errorf("mode %d: %w", res.Mode, err)
		}

		res.Mode = get_snow_free_mode(q)
		if res.Mode == MODE_SUMMER {
			var evals int
			sl_m := sl_f.with_terms(sl_f.terms.without_melting(), 1.0)
			theta_surf, res.Loads, evals, err = solve_f_t(sl_m, lg.opts)
			res.Evaluations += evals
			if err != nil {
				return nil, fmt.Errorf("mode %d: %w", res.Mode, err)
			}
		}
	}

	res.CalcT = res.Mode.CalcT()
	if res.CalcT {
		res.ThetaSurf = &theta_surf
	}

	// mass balances
	res.MWater = get_m_water(c, m_w_0, w.Precipitation, lg.he.a_he, res.Loads.Eva, lg.itv)
	res.MSnow = get_m_snow(c, m_s_0, w.Snowfall, lg.he.a_he, res.Loads.Lat, res.SnowBalancing, lg.itv)

	// wickless thermosiphons carry no heat into the ground
	res.Q = math.Max(0, q)
	res.QNet = res.Loads.Lat + res.Loads.Sen
	res.QLoss = lg.loss.Q(theta_b_0-res.Q*lg.rth.GroundToHeatpipe, w.Temperature)

	return res, nil
}
