package snow_melt_calc

import (
	"fmt"
	"math"
)

// SolverOptions controls the zero-crossing search of the power balances.
type SolverOptions struct {
	Tolerance      float64 // maximum allowed residual, W
	InitialStep    float64 // first step size, W or K
	MaxEvaluations int     // residual evaluations per search
}

func DefaultSolverOptions() SolverOptions {
	return SolverOptions{Tolerance: 0.001, InitialStep: 100.0, MaxEvaluations: 100000}
}

/*
Iterative search for a zero crossing of a monotonic function.

	Args:
		f: residual function
		decreasing: true when f decreases with x (F_Q), false when it increases (F_T)
		opts: tolerance, initial step and evaluation cap

	Returns:
		(1) root, |f(root)| <= opts.Tolerance
		(2) number of residual evaluations

	Notes:
		The candidate starts at 0. Before every march the step is halved, then
		the candidate moves towards the zero crossing until the residual
		changes its sign. The balances are not smooth at their clamps, so no
		derivative is used.
*/
func find_zero_crossing(
	f func(x float64) (float64, error),
	decreasing bool,
	opts SolverOptions,
) (float64, int, error) {
	// direction of the move for a positive residual
	dir := 1.0
	if !decreasing {
		dir = -1.0
	}

	evals := 0
	eval := func(x float64) (float64, error) {
		if evals >= opts.MaxEvaluations {
			return 0, fmt.Errorf("%w: %d evaluations, x=%g", ErrNotConverged, evals, x)
		}
		evals++
		r, err := f(x)
		if err == nil && math.IsNaN(r) {
			err = fmt.Errorf("%w: residual is NaN at x=%g", ErrNotConverged, x)
		}
		return r, err
	}

	x := 0.0
	step := opts.InitialStep

	r, err := eval(x)
	if err != nil {
		return 0, evals, err
	}

	for math.Abs(r) > opts.Tolerance {
		step /= 2.0

		if r > 0 {
			for r > 0 {
				x += dir * step
				if r, err = eval(x); err != nil {
					return 0, evals, err
				}
			}
		} else {
			for r < 0 {
				x -= dir * step
				if r, err = eval(x); err != nil {
					return 0, evals, err
				}
			}
		}
	}

	return x, evals, nil
}

/*
Solves the power balance F_Q = 0 for the extraction power.

	Args:
		sl: load conditions of the time step
		theta_b_0: borehole wall temperature of the preceding step, degree C
		r_th: total thermal resistance, K/W
		opts: solver options

	Returns:
		(1) extraction power, W
		(2) load components at the solution
		(3) number of residual evaluations
*/
func solve_f_q(sl *surface_load, theta_b_0, r_th float64, opts SolverOptions) (float64, SurfaceLoads, int, error) {
	q, evals, err := find_zero_crossing(func(q float64) (float64, error) {
		return sl.f_q(q, theta_b_0, r_th)
	}, true, opts)
	if err != nil {
		return 0, SurfaceLoads{}, evals, fmt.Errorf("F_Q: %w", err)
	}

	l, err := sl.loads(theta_b_0 - q*r_th)
	if err != nil {
		return 0, SurfaceLoads{}, evals, err
	}
	return q, l, evals, nil
}

/*
Solves the reduced power balance F_T = 0 for the surface temperature.

	Args:
		sl: load conditions of the time step
		opts: solver options

	Returns:
		(1) surface temperature, degree C
		(2) load components at the solution
		(3) number of residual evaluations
*/
func solve_f_t(sl *surface_load, opts SolverOptions) (float64, SurfaceLoads, int, error) {
	theta, evals, err := find_zero_crossing(sl.f_t, false, opts)
	if err != nil {
		return 0, SurfaceLoads{}, evals, fmt.Errorf("F_T: %w", err)
	}

	l, err := sl.loads(theta)
	if err != nil {
		return 0, SurfaceLoads{}, evals, err
	}
	return theta, l, evals, nil
}
