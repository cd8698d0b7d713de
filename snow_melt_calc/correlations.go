package snow_melt_calc

import "math"

/*
Wind speed corrected for wind shear (logarithmic profile).

	Args:
		v: wind speed at the weather station, m/s

	Returns:
		wind speed at 1 m above the surface, m/s
*/
func get_u_eff(v float64) float64 {
	const z_1 = 10.0  // height of meteorological stations, m
	const z_n = 1.0   // reference height, m
	const z_0 = 0.005 // roughness length of the ground, m

	return v * (math.Log10(z_n) - math.Log10(z_0)) / (math.Log10(z_1) - math.Log10(z_0))
}

/*
Convective heat transfer coefficient of the heating element surface.

	Args:
		u: wind speed, m/s

	Returns:
		heat transfer coefficient, W/m2 K

	Notes:
		Bentz (2000), forced convection along a horizontal surface.
*/
func get_alpha_con_he_o(u float64) float64 {
	if u <= 5.0 {
		return 5.6 + 4.0*u
	}
	return 7.2 * math.Pow(u, 0.78)
}

// calm air below the heating element, W/m2 K
func get_alpha_con_he_u() float64 {
	return 10.0
}

// air around the insulated connection pipes, W/m2 K
func get_alpha_con_an(delta_t float64) float64 {
	return 9.4 + 0.052*delta_t
}

/*
Mean radiant temperature of the surroundings.

	Args:
		s_r: snowfall rate, mm/h
		theta_inf: ambient temperature, degree C
		b: cloud fraction, -
		phi: relative humidity, -

	Returns:
		mean radiant temperature, K

	Notes:
		During snowfall the sky is taken at ambient temperature.
*/
func get_t_mr(s_r, theta_inf, b, phi float64) float64 {
	t_inf := theta_inf + 273.15
	if s_r > 0 {
		return t_inf
	}

	t_h := t_inf - (1.1058e3 - 7.562*t_inf + 1.333e-2*t_inf*t_inf - 31.292*phi + 14.58*phi*phi)
	t_w := t_inf - 19.2
	if t_h > t_w {
		t_w = t_h
	}

	return math.Pow(math.Pow(t_w, 4)*b+math.Pow(t_h, 4)*(1.0-b), 0.25)
}

// binary diffusion coefficient of water vapour in air, m2/s
func get_delta(theta_inf, z_asl float64) float64 {
	return 2.252 / get_p_inf(z_asl) * math.Pow((theta_inf+273.15)/273.15, 1.81)
}

/*
Mass transfer coefficient.

	Args:
		theta_inf: ambient temperature, degree C
		u: wind speed, m/s
		z_asl: altitude above sea level, m
		c: physical properties

	Returns:
		mass transfer coefficient, m/s

	Notes:
		Lewis analogy with the convective coefficient of the surface.
*/
func get_beta_c(theta_inf, u, z_asl float64, c *PhysicalConstants) float64 {
	sc := c.mu_a / get_delta(theta_inf, z_asl)
	return math.Pow(c.get_pr()/sc, 2.0/3.0) * get_alpha_con_he_o(u) / (c.rho_a * c.c_p_a)
}
