package snow_melt_calc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// GroundModel turns the load history of the borefield into borehole wall temperatures.
type GroundModel interface {
	// UndisturbedTemperature returns the ground temperature before any extraction, degree C.
	UndisturbedTemperature() float64

	// BoreholeTemperature stores the load of step n, overwriting an earlier
	// load of the same step, and returns the borehole wall temperature at the
	// end of step n, degree C.
	//
	// q is the extraction power per metre of total borehole length, W/m.
	BoreholeTemperature(n int, q float64) (float64, error)
}

// ConstantGround keeps the borehole wall at a fixed temperature.
type ConstantGround struct {
	Theta float64 // degree C
}

func (g ConstantGround) UndisturbedTemperature() float64 {
	return g.Theta
}

func (g ConstantGround) BoreholeTemperature(n int, q float64) (float64, error) {
	return g.Theta, nil
}

/*
Infinite line source model of the borefield with temporal superposition.

	Notes:
		The temperature drop at step n is

			delta_theta_n = sum_k q_k * h_(n-k)

		with the incremental step response h_j = R((j+1) dt) - R(j dt) and

			R(t) = 1/N_b sum_i sum_j E1(d_ij^2 / (4 a t)) / (4 pi lambda)

		where d_ij is the distance of boreholes i and j (r_b for i = j).
		Axial effects of the finite borehole length are not modelled, so
		the response keeps growing for very long horizons.
*/
type LineSourceGround struct {
	theta_g  float64   // undisturbed ground temperature, degree C
	h_rev    []float64 // step response in reverse order, K m/W, [N]
	q_ns     []float64 // load per metre, W/m, [N]
	n_loaded int       // number of steps with a load
}

/*
Args:

	theta_g: undisturbed ground temperature, degree C
	lambda_g: thermal conductivity of the ground, W/m K
	a_g: thermal diffusivity of the ground, m2/s
	bf: borefield
	itv: time step
	n_steps: number of steps of the simulation
*/
func NewLineSourceGround(
	theta_g, lambda_g, a_g float64,
	bf Borefield,
	itv Interval,
	n_steps int,
) (*LineSourceGround, error) {
	delta_t := itv.get_delta_t()
	if lambda_g <= 0 || a_g <= 0 || delta_t <= 0 || n_steps < 1 {
		return nil, fmt.Errorf("line source: lambda_g=%g, a_g=%g, dt=%g, n=%d", lambda_g, a_g, delta_t, n_steps)
	}

	// squared distances between all borehole pairs
	d2 := make([]float64, 0, len(bf)*len(bf))
	for _, b_i := range bf {
		for _, b_j := range bf {
			d := b_i.distance(b_j)
			d2 = append(d2, d*d)
		}
	}

	r := func(t float64) (float64, error) {
		if t <= 0 {
			return 0, nil
		}
		var sum float64
		for _, v := range d2 {
			e, err := e1(v / (4.0 * a_g * t))
			if err != nil {
				return 0, err
			}
			sum += e
		}
		return sum / float64(len(bf)) / (4.0 * math.Pi * lambda_g), nil
	}

	h_rev := make([]float64, n_steps)
	r_prev := 0.0
	for j := 0; j < n_steps; j++ {
		r_j, err := r(float64(j+1) * delta_t)
		if err != nil {
			return nil, fmt.Errorf("line source response: %w", err)
		}
		h_rev[n_steps-1-j] = r_j - r_prev
		r_prev = r_j
	}

	return &LineSourceGround{
		theta_g: theta_g,
		h_rev:   h_rev,
		q_ns:    make([]float64, n_steps),
	}, nil
}

func (g *LineSourceGround) UndisturbedTemperature() float64 {
	return g.theta_g
}

func (g *LineSourceGround) BoreholeTemperature(n int, q float64) (float64, error) {
	n_steps := len(g.q_ns)
	if n < 0 || n >= n_steps {
		return 0, fmt.Errorf("line source: step %d outside 0..%d", n, n_steps-1)
	}
	if n > g.n_loaded {
		return 0, fmt.Errorf("line source: step %d before step %d", n, g.n_loaded)
	}

	g.q_ns[n] = q
	if n == g.n_loaded {
		g.n_loaded++
	}

	// sum_k q_k h_(n-k)
	delta_theta := floats.Dot(g.q_ns[:n+1], g.h_rev[n_steps-1-n:])
	return g.theta_g - delta_theta, nil
}

/*
Exponential integral E1(x) for x > 0.

	Notes:
		Power series for x <= 1, continued fraction (modified Lentz) above.
*/
func e1(x float64) (float64, error) {
	const euler = 0.5772156649015329
	const eps = 1e-15
	const max_iter = 1000

	switch {
	case x <= 0:
		return 0, fmt.Errorf("E1 of non-positive argument %g", x)
	case x > 700:
		return 0, nil
	case x <= 1.0:
		sum := 0.0
		term := 1.0
		for k := 1; k <= max_iter; k++ {
			term *= -x / float64(k)
			d := term / float64(k)
			sum += d
			if math.Abs(d) < eps*math.Abs(sum) {
				return -euler - math.Log(x) - sum, nil
			}
		}
	default:
		const tiny = 1e-300
		b := x + 1.0
		c := 1.0 / tiny
		d := 1.0 / b
		h := d
		for i := 1; i <= max_iter; i++ {
			an := -float64(i * i)
			b += 2.0
			d = 1.0 / (an*d + b)
			c = b + an/c
			del := c * d
			h *= del
			if math.Abs(del-1.0) < eps {
				return h * math.Exp(-x), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: E1(%g)", ErrSeriesNotConverged, x)
}
