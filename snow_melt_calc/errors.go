package snow_melt_calc

import "errors"

var (
	// ErrNotConverged is returned when the zero-crossing search exceeds its evaluation cap.
	ErrNotConverged = errors.New("snow_melt_calc: power balance did not converge")

	// ErrSeriesNotConverged is returned when the pipe register series exceeds its term cap.
	ErrSeriesNotConverged = errors.New("snow_melt_calc: series sum did not converge")

	// ErrTemperatureRange is returned for temperatures outside the saturation pressure correlation.
	ErrTemperatureRange = errors.New("snow_melt_calc: temperature outside -100..200 degree C")

	// ErrInvalidGeometry is returned by the geometry validator.
	ErrInvalidGeometry = errors.New("snow_melt_calc: invalid geometry")
)
