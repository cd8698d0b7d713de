package snow_melt_calc

import (
	"fmt"
	"math"
)

/*
Ambient pressure corrected for the altitude.

	Args:
		z_asl: altitude above sea level, m

	Returns:
		ambient pressure, Pa
*/
func get_p_inf(z_asl float64) float64 {
	return 101325.0 * math.Pow(1.0-2.25577e-5*z_asl, 5.2559)
}

/*
Saturation vapour pressure.

	Args:
		t: temperature, K

	Returns:
		saturation vapour pressure, Pa

	Notes:
		ASHRAE Handbook Fundamentals 2013, over ice below 0 degree C and over
		liquid water above.
*/
func get_p_vs(t float64) (float64, error) {
	const c1 = -5.6745359e3
	const c2 = 6.3925247e0
	const c3 = -9.6778430e-3
	const c4 = 6.2215701e-7
	const c5 = 2.0747825e-9
	const c6 = -9.4840240e-13
	const c7 = 4.1635019e0
	const c8 = -5.8002206e3
	const c9 = 1.3914993e0
	const c10 = -4.8640239e-2
	const c11 = 4.1764768e-5
	const c12 = -1.4452093e-8
	const c13 = 6.5459673e0

	theta := t - 273.15
	switch {
	case theta > -100.0 && theta < 0.0:
		return math.Exp(c1/t + c2 + c3*t + c4*t*t + c5*t*t*t + c6*t*t*t*t + c7*math.Log(t)), nil
	case theta >= 0.0 && theta <= 200.0:
		return math.Exp(c8/t + c9 + c10*t + c11*t*t + c12*t*t*t + c13*math.Log(t)), nil
	default:
		return 0, fmt.Errorf("%w: %.2f", ErrTemperatureRange, theta)
	}
}

/*
Humidity ratio from the vapour pressure.

	Args:
		p_v: vapour pressure, Pa
		z_asl: altitude above sea level, m

	Returns:
		humidity ratio, kg/kg(DA)
*/
func get_x(p_v float64, z_asl float64) float64 {
	return 0.622 * p_v / (get_p_inf(z_asl) - p_v)
}

/*
Humidity ratio of the ambient air.

	Args:
		theta_inf: ambient temperature, degree C
		phi: relative humidity, -
		z_asl: altitude above sea level, m

	Returns:
		humidity ratio, kg/kg(DA)

	Notes:
		The vapour pressure equals the saturation pressure at the dew point,
		phi * p_vs(theta_inf).
*/
func get_x_inf(theta_inf, phi, z_asl float64) (float64, error) {
	p_vs, err := get_p_vs(theta_inf + 273.15)
	if err != nil {
		return 0, err
	}
	return get_x(phi*p_vs, z_asl), nil
}

/*
Humidity ratio of saturated air at the heating element surface.

	Args:
		theta_surf: surface temperature, degree C
		z_asl: altitude above sea level, m

	Returns:
		humidity ratio, kg/kg(DA)
*/
func get_x_sat_surf(theta_surf, z_asl float64) (float64, error) {
	p_vs, err := get_p_vs(theta_surf + 273.15)
	if err != nil {
		return 0, err
	}
	return get_x(p_vs, z_asl), nil
}
