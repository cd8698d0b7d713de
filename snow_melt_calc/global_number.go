package snow_melt_calc

// Physical properties of water, snow and air (p = 1 bar, 0 °C unless noted).
type PhysicalConstants struct {
	rho_w    float64 // density of water, kg/m3
	h_ph_sl  float64 // phase-change enthalpy solid <-> liquid, J/kg
	h_ph_lg  float64 // phase-change enthalpy liquid <-> vapour (0.01 °C), J/kg
	c_p_s    float64 // specific heat of ice/snow, J/kg K
	c_p_w    float64 // specific heat of water, J/kg K
	theta_mp float64 // melting point of ice/snow, degree C
	rho_a    float64 // density of dry air, kg/m3
	c_p_a    float64 // specific heat of air, J/kg K
	lambda_a float64 // thermal conductivity of air, W/m K
	mu_a     float64 // kinematic viscosity of air, m2/s
	h_max    float64 // water level on the surface above which water runs off, mm
	sgm      float64 // Stefan-Boltzmann constant, W/m2 K4
	eps_surf float64 // emissivity of the heating element surface (concrete), -
}

/*
Returns the default physical properties.

	Notes:
		mainly VDI Heat Atlas 2013
*/
func DefaultPhysicalConstants() *PhysicalConstants {
	return &PhysicalConstants{
		rho_w:    999.84,
		h_ph_sl:  333e3,
		h_ph_lg:  2500.9e3,
		c_p_s:    2.106e3,
		c_p_w:    4219.0,
		theta_mp: 0.0,
		rho_a:    1.276,
		c_p_a:    1006.0,
		lambda_a: 0.0244,
		mu_a:     13.5e-6,
		h_max:    2.0,
		sgm:      5.670374419e-8,
		eps_surf: 0.94,
	}
}

// thermal diffusivity of air, m2/s
func (c *PhysicalConstants) get_a_a() float64 {
	return c.lambda_a / (c.rho_a * c.c_p_a)
}

// Prandtl number of air, -
func (c *PhysicalConstants) get_pr() float64 {
	return c.mu_a / c.get_a_a()
}

// MeltingPoint returns the melting point of ice/snow, degree C.
func (c *PhysicalConstants) MeltingPoint() float64 {
	return c.theta_mp
}

// WaterDensity returns the density of water, kg/m3.
func (c *PhysicalConstants) WaterDensity() float64 {
	return c.rho_w
}
