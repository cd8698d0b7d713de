package snow_melt_calc

// Thermal load components on the heating element surface and the two power
// balances built from them.
//
//	Q = (theta_b - theta_surf) / R_th
//	  = Q_lat + Q_sen + R_f * (Q_con + Q_rad + Q_eva)
//
//	F_Q(Q)          = Q_lat + Q_sen + R_f * (Q_con + Q_rad + Q_eva) - Q,  theta_surf = theta_b - Q * R_th
//	F_T(theta_surf) = Q_lat + Q_sen + R_f * (Q_con + Q_rad + Q_eva)

// LoadTerms switches the individual load components on or off.
type LoadTerms struct {
	Latent      bool
	Sensible    bool
	Convection  bool
	Radiation   bool
	Evaporation bool
}

func AllLoadTerms() LoadTerms {
	return LoadTerms{Latent: true, Sensible: true, Convection: true, Radiation: true, Evaporation: true}
}

// without latent and sensible snow loads: heat is taken from the ground only
func (t LoadTerms) without_melting() LoadTerms {
	t.Latent, t.Sensible = false, false
	return t
}

// SurfaceLoads holds the load components of one evaluation, W.
type SurfaceLoads struct {
	Lat float64
	Sen float64
	Con float64
	Rad float64
	Eva float64
}

// loss part weighted by the free-area ratio, W
func (l SurfaceLoads) losses(r_f float64) float64 {
	return r_f * (l.Con + l.Rad + l.Eva)
}

// total surface load, W
func (l SurfaceLoads) total(r_f float64) float64 {
	return l.Lat + l.Sen + l.losses(r_f)
}

// Conditions of one time step that stay fixed while the balance is solved.
type surface_load struct {
	c            *PhysicalConstants
	terms        LoadTerms
	a_he         float64 // surface area, m2
	r_f          float64 // free-area ratio, -
	z_asl        float64 // altitude above sea level, m
	u_inf        float64 // wind-shear-corrected wind speed, m/s
	theta_inf    float64 // ambient temperature, degree C
	s_r          float64 // snowfall rate, mm/h
	theta_surf_0 float64 // surface temperature of the preceding step, degree C
	m_w_0        float64 // water on the surface at the preceding step, kg
	t_mr         float64 // mean radiant temperature, K
	beta_c       float64 // mass transfer coefficient, m/s
	x_inf        float64 // humidity ratio of the ambient air, kg/kg(DA)
}

func new_surface_load(
	c *PhysicalConstants,
	terms LoadTerms,
	a_he, r_f, z_asl float64,
	w WeatherSample,
	theta_surf_0, m_w_0 float64,
) (*surface_load, error) {
	u_inf := get_u_eff(w.WindSpeed)

	sl := &surface_load{
		c:            c,
		terms:        terms,
		a_he:         a_he,
		r_f:          r_f,
		z_asl:        z_asl,
		u_inf:        u_inf,
		theta_inf:    w.Temperature,
		s_r:          w.Snowfall,
		theta_surf_0: theta_surf_0,
		m_w_0:        m_w_0,
		t_mr:         get_t_mr(w.Snowfall, w.Temperature, w.Cloudiness, w.Humidity),
		beta_c:       get_beta_c(w.Temperature, u_inf, z_asl, c),
	}

	if m_w_0 > 0 {
		x_inf, err := get_x_inf(w.Temperature, w.Humidity, z_asl)
		if err != nil {
			return nil, err
		}
		sl.x_inf = x_inf
	}
	return sl, nil
}

// with_terms returns a copy using other load switches or another free-area ratio.
func (sl *surface_load) with_terms(terms LoadTerms, r_f float64) *surface_load {
	cp := *sl
	cp.terms = terms
	cp.r_f = r_f
	return &cp
}

// with_previous_surface returns a copy evaluated as if the preceding surface temperature was theta.
func (sl *surface_load) with_previous_surface(theta float64) *surface_load {
	cp := *sl
	cp.theta_surf_0 = theta
	return &cp
}

// evaporation only takes place on a wet surface that was not frozen
func (sl *surface_load) evaporating() bool {
	return sl.terms.Evaporation && sl.theta_surf_0 >= 0 && sl.m_w_0 > 0
}

// latent heat of the falling snow, W
func (sl *surface_load) get_q_lat() float64 {
	if !sl.terms.Latent {
		return 0
	}
	return sl.c.rho_w * sl.s_r * sl.c.h_ph_sl / 3.6e6 * sl.a_he
}

// sensible heat of the falling snow, W
func (sl *surface_load) get_q_sen(theta_surf float64) float64 {
	if !sl.terms.Sensible {
		return 0
	}
	c := sl.c
	return c.rho_w * sl.s_r * (c.c_p_s*(c.theta_mp-sl.theta_inf) + c.c_p_w*(theta_surf-c.theta_mp)) / 3.6e6 * sl.a_he
}

// convection, W
func (sl *surface_load) get_q_con(theta_surf float64) float64 {
	if !sl.terms.Convection {
		return 0
	}
	return get_alpha_con_he_o(sl.u_inf) * (theta_surf - sl.theta_inf) * sl.a_he
}

// long-wave radiation, W
func (sl *surface_load) get_q_rad(theta_surf float64) float64 {
	if !sl.terms.Radiation {
		return 0
	}
	t := theta_surf + 273.15
	return sl.c.sgm * sl.c.eps_surf * (t*t*t*t - sl.t_mr*sl.t_mr*sl.t_mr*sl.t_mr) * sl.a_he
}

// evaporation, W, never negative
func (sl *surface_load) get_q_eva(theta_surf float64) (float64, error) {
	if !sl.evaporating() {
		return 0, nil
	}
	x_sat, err := get_x_sat_surf(theta_surf, sl.z_asl)
	if err != nil {
		return 0, err
	}
	q_eva := sl.c.rho_a * sl.beta_c * (x_sat - sl.x_inf) * sl.c.h_ph_lg * sl.a_he
	if q_eva < 0 {
		return 0, nil
	}
	return q_eva, nil
}

// all components at the given surface temperature
func (sl *surface_load) loads(theta_surf float64) (SurfaceLoads, error) {
	q_eva, err := sl.get_q_eva(theta_surf)
	if err != nil {
		return SurfaceLoads{}, err
	}
	return SurfaceLoads{
		Lat: sl.get_q_lat(),
		Sen: sl.get_q_sen(theta_surf),
		Con: sl.get_q_con(theta_surf),
		Rad: sl.get_q_rad(theta_surf),
		Eva: q_eva,
	}, nil
}

// reduced power balance F_T, W
func (sl *surface_load) f_t(theta_surf float64) (float64, error) {
	l, err := sl.loads(theta_surf)
	if err != nil {
		return 0, err
	}
	return l.total(sl.r_f), nil
}

// power balance F_Q, W
func (sl *surface_load) f_q(q, theta_b_0, r_th float64) (float64, error) {
	f, err := sl.f_t(theta_b_0 - q*r_th)
	if err != nil {
		return 0, err
	}
	return f - q, nil
}
