package snow_melt_calc

import (
	"fmt"
	"math"
)

// Concrete slab with an embedded register of equidistant heat pipes.
type HeatingElement struct {
	a_he     float64 // surface area, m2
	x_min    float64 // minimum vertical pipe-to-surface distance, m
	lambda_c float64 // thermal conductivity of the slab material, W/m K
	lambda_p float64 // thermal conductivity of the heat pipes, W/m K
	d_pa     float64 // outer diameter of the heat pipes, m
	d_pi     float64 // inner diameter of the heat pipes, m
	s_r      float64 // centre distance between heat pipes, m
	l_p_he   float64 // total heat pipe length inside the slab, m
	d_he     float64 // vertical thickness of the slab, m
	d_iso_he float64 // thickness of the insulation on the underside, m
}

func NewHeatingElement(
	a_he, x_min, lambda_c, lambda_p, d_pa, d_pi, s_r, l_p_he, d_he, d_iso_he float64,
) *HeatingElement {
	return &HeatingElement{
		a_he:     a_he,
		x_min:    x_min,
		lambda_c: lambda_c,
		lambda_p: lambda_p,
		d_pa:     d_pa,
		d_pi:     d_pi,
		s_r:      s_r,
		l_p_he:   l_p_he,
		d_he:     d_he,
		d_iso_he: d_iso_he,
	}
}

// Area returns the surface area, m2.
func (he *HeatingElement) Area() float64 {
	return he.a_he
}

// vertical pipe-centre-to-surface distance, m
func (he *HeatingElement) x_o() float64 {
	return he.x_min + 0.5*he.d_pa
}

// vertical pipe-centre-to-underside distance, m
func (he *HeatingElement) x_u() float64 {
	return he.d_he - he.x_o()
}

// SeriesOptions bounds the evaluation of the pipe register series.
type SeriesOptions struct {
	Tolerance float64 // stop once two partial sums differ by less than this
	MaxTerms  int
}

func DefaultSeriesOptions() SeriesOptions {
	return SeriesOptions{Tolerance: 1e-6, MaxTerms: 10000}
}

/*
j-th term of the series of VDI 2055-1.

	Args:
		j: term index (from 1)
		beta_o: Biot-like parameter of the upper surface, -
		beta_u: Biot-like parameter of the underside, -
		s_r: pipe centre distance, m
		s_c: thickness of additional cover layers, m
		x_o: pipe-centre-to-surface distance, m
		x_u: pipe-centre-to-underside distance, m
		lambda_c: thermal conductivity of the slab, W/m K
*/
func series_term(j int, beta_o, beta_u, s_r, s_c, x_o, x_u, lambda_c float64) float64 {
	pj := 2.0 * math.Pi * float64(j)

	n_1 := 1.0 - (beta_u+pj)/(beta_u-pj)*math.Exp(2.0*pj*s_c/s_r)
	n_2 := 1.0 - (beta_u-pj)/(beta_u+pj)*math.Exp(-2.0*pj*s_c/s_r)

	gamma := (beta_o - pj) / (beta_o + pj) * math.Exp(-2.0*pj*(x_u+x_o)/s_r)

	e_o := ((lambda_c + lambda_c/n_1 - lambda_c/n_2) * (math.Exp(-2.0*pj*x_u/s_r) - gamma)) /
		(lambda_c*(1.0+gamma) + (lambda_c/n_2-lambda_c/n_1)*(1.0-gamma))

	e_u := -(beta_o - pj) / (beta_o + pj) * math.Exp(-2.0*pj*x_o/s_r) * (1.0 + e_o)

	return (e_o + e_u) / float64(j)
}

/*
Sum term of the pipe register solution.

	Args:
		kappa_o: heat transmission coefficient of the upper surface, W/m2 K
		kappa_u: heat transmission coefficient of the underside, W/m2 K
		s_r, s_c, x_o, x_u, lambda_c: see series_term
		opts: stopping rule and term cap

	Returns:
		(1) series sum, -
		(2) number of terms summed
*/
func sum_fct(kappa_o, kappa_u, s_r, s_c, x_o, x_u, lambda_c float64, opts SeriesOptions) (float64, int, error) {
	beta_o := kappa_o * s_r / lambda_c
	beta_u := kappa_u * s_r / lambda_c

	var ssum_temp float64
	for j := 1; j <= opts.MaxTerms; j++ {
		ssum := ssum_temp + series_term(j, beta_o, beta_u, s_r, s_c, x_o, x_u, lambda_c)
		if math.Abs(ssum-ssum_temp) < opts.Tolerance {
			return ssum, j, nil
		}
		ssum_temp = ssum
	}
	return 0, opts.MaxTerms, fmt.Errorf("%w after %d terms", ErrSeriesNotConverged, opts.MaxTerms)
}

/*
Heat output per metre of pipe of a register with equidistant pipes.

	Args:
		x_o: pipe-centre-to-surface distance, m
		x_u: pipe-centre-to-underside distance, m
		d_pa: outer pipe diameter, m
		d_pi: inner pipe diameter, m
		lambda_c: thermal conductivity of the slab, W/m K
		lambda_p: thermal conductivity of the pipe, W/m K
		s_r: pipe centre distance, m
		theta_r: pipe wall temperature, degree C
		theta_inf_o: temperature above the surface, degree C
		state_u_insul: treat the underside as perfectly insulated (semi-infinite)
		opts: series stopping rule

	Returns:
		heat output, W/m

	Notes:
		VDI 2055-1, Dirichlet boundary on the surface (alpha -> infinity).
		The pipe-to-slab contact is modelled as a 0.1 mm air gap.
*/
func q_l(
	x_o, x_u, d_pa, d_pi, lambda_c, lambda_p, s_r, theta_r, theta_inf_o float64,
	state_u_insul bool,
	opts SeriesOptions,
) (float64, error) {
	// no additional layers in the slab
	const s_c = 0.0
	d_insul_a := d_pa + 0.0002

	theta_inf_u := theta_inf_o
	const lambda_insul = 0.0262
	alpha_o := 1e10
	alpha_u := alpha_o
	if state_u_insul {
		alpha_u = 1e-10
		x_u = 1e10
	}

	kappa_o := 1.0 / (1.0/alpha_o + s_c/lambda_c)
	kappa_u := 1.0 / (1.0/alpha_u + s_c/lambda_c)
	kappa_o_ := 1.0 / (1.0/kappa_o + x_o/lambda_c)
	kappa_u_ := 1.0 / (1.0/kappa_u + x_u/lambda_c)

	ssum, _, err := sum_fct(kappa_o, kappa_u, s_r, s_c, x_o, x_u, lambda_c, opts)
	if err != nil {
		return 0, err
	}

	theta_m := (theta_inf_o*kappa_o_ + theta_inf_u*kappa_u_) / (kappa_o_ + kappa_u_)
	denominator := lambda_c/lambda_p*math.Log(d_pa/d_pi) +
		lambda_c/lambda_insul*math.Log(d_insul_a/d_pa) +
		math.Log(s_r/(math.Pi*d_insul_a)) +
		2.0*math.Pi*lambda_c/(s_r*(kappa_o_+kappa_u_)) +
		ssum

	return 2.0 * math.Pi * lambda_c * (theta_r - theta_m) / denominator, nil
}
