package snow_melt_calc

import "fmt"

// SimulationMode is the physical regime of one time step.
type SimulationMode int

const (
	// snow balancing, no temperature spread in the ground, F_T solved
	MODE_NO_SPREAD SimulationMode = iota + 1
	// snow balancing, spread used up by the surface losses, F_Q solved
	MODE_LOSSES_ONLY
	// snow balancing, snow is melted at the melting point
	MODE_MELTING
	// snow-free surface, F_Q solved
	MODE_SNOW_FREE
	// snow-free surface heated by the surroundings, F_T solved
	MODE_SUMMER
)

func (m SimulationMode) String() string {
	switch m {
	case MODE_NO_SPREAD:
		return "no-spread"
	case MODE_LOSSES_ONLY:
		return "losses-only"
	case MODE_MELTING:
		return "melting"
	case MODE_SNOW_FREE:
		return "snow-free"
	case MODE_SUMMER:
		return "summer"
	default:
		return fmt.Sprintf("SimulationMode(%d)", int(m))
	}
}

// SnowBalancing reports whether a snow/ice layer may persist in this mode.
func (m SimulationMode) SnowBalancing() bool {
	return m == MODE_NO_SPREAD || m == MODE_LOSSES_ONLY || m == MODE_MELTING
}

// CalcT reports whether the surface temperature is set by the step itself
// rather than reconstructed from the borehole wall temperature.
func (m SimulationMode) CalcT() bool {
	return m == MODE_NO_SPREAD || m == MODE_MELTING || m == MODE_SUMMER
}

/*
Snow accumulation gate.

	Args:
		m_s_0: snow mass of the preceding step, kg
		start_sb: snow balancing requested by the preceding invocation

	Returns:
		true when modes 1 to 3 apply
*/
func is_snow_balancing(m_s_0 float64, start_sb bool) bool {
	return m_s_0 > 0 || start_sb
}

/*
Mode of a step with snow balancing.

	Args:
		q_0: power available from the ground against the preceding surface temperature, W
		q_r: power left for melting after the losses at the melting point, W,
			only evaluated when q_0 is not negative
*/
func get_snow_balancing_mode(q_0, q_r float64) SimulationMode {
	if q_0 < 0 {
		return MODE_NO_SPREAD
	}
	if q_r < 0 {
		return MODE_LOSSES_ONLY
	}
	return MODE_MELTING
}

/*
Mode of a snow-free step.

	Args:
		q: solution of F_Q, W

	Returns:
		mode 5 when no heat can be extracted from the ground
*/
func get_snow_free_mode(q float64) SimulationMode {
	if q < 0 {
		return MODE_SUMMER
	}
	return MODE_SNOW_FREE
}

/*
Hysteresis rule. When a snow-free step ends with a frozen surface during
snowfall, the same time index has to be calculated once more with snow
balancing enabled.

	Args:
		theta_surf: surface temperature at the end of the step, degree C
		s_r: snowfall rate, mm/h
		m_s: snow mass at the end of the step, kg
*/
func SnowBalancingRequested(theta_surf, s_r, m_s float64) bool {
	return theta_surf < 0 && s_r > 0 && m_s == 0
}
