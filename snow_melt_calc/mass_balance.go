package snow_melt_calc

import "math"

/*
Mass balance of the water film on the heating element surface.

	Args:
		c: physical properties
		m_w_0: water mass of the preceding step, kg
		rr: precipitation rate, mm/h
		a_he: surface area, m2
		q_eva: evaporation, W
		itv: time step

	Returns:
		water mass, kg

	Notes:
		Water above the level h_max runs off. The film never becomes negative.
*/
func get_m_water(c *PhysicalConstants, m_w_0, rr, a_he, q_eva float64, itv Interval) float64 {
	m_w_1 := m_w_0 + rr*itv.get_time()*c.rho_w*a_he/1000.0 - q_eva/c.h_ph_lg*itv.get_delta_t()

	m_w_max := c.h_max / 1000.0 * c.rho_w * a_he
	return math.Max(0, math.Min(m_w_1, m_w_max))
}

/*
Mass balance of the snow/ice layer on the heating element surface.

	Args:
		c: physical properties
		m_s_0: snow mass of the preceding step, kg
		s_r: snowfall rate, mm/h
		a_he: surface area, m2
		q_lat: latent heat used for melting, W
		sb_active: snow balancing active
		itv: time step

	Returns:
		snow mass, kg. Zero whenever snow balancing is inactive, since the
		snow is then melted within the step.
*/
func get_m_snow(c *PhysicalConstants, m_s_0, s_r, a_he, q_lat float64, sb_active bool, itv Interval) float64 {
	if !sb_active {
		return 0
	}
	m_s_1 := m_s_0 + s_r*itv.get_time()*c.rho_w*a_he/1000.0 - q_lat/c.h_ph_sl*itv.get_delta_t()
	return math.Max(0, m_s_1)
}
