package snow_melt_calc

import "fmt"

// Interval is the time step of the simulation loop.
type Interval string

const (
	IntervalH1  Interval = "1h"
	IntervalM30 Interval = "30m"
	IntervalM15 Interval = "15m"
)

// ParseInterval converts a configuration value into an Interval.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case IntervalH1, IntervalM30, IntervalM15:
		return Interval(s), nil
	default:
		return "", fmt.Errorf("invalid interval %q", s)
	}
}

/*
Number of steps one hour is divided into.

	Returns:
		number of steps per hour

	Notes:
		1h: 1, 30m: 2, 15m: 4
*/
func (i Interval) get_n_hour() int {
	switch i {
	case IntervalH1:
		return 1
	case IntervalM30:
		return 2
	case IntervalM15:
		return 4
	default:
		panic("invalid interval")
	}
}

// length of one step, h
func (i Interval) get_time() float64 {
	return 1.0 / float64(i.get_n_hour())
}

// length of one step, s
func (i Interval) get_delta_t() float64 {
	return 3600.0 * i.get_time()
}

// number of steps in one year (8760 h)
func (i Interval) get_annual_number() int {
	return 8760 * i.get_n_hour()
}
