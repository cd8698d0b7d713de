package snow_melt_calc

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Heat pipes of one borehole, uniformly arranged on a circle around the borehole axis.
type HeatpipeArray struct {
	n          int     // number of heat pipes per borehole, -
	r_b        float64 // borehole radius, m
	r_w        float64 // radius of the circle through the heat pipe centres, m
	r_iso_b    float64 // outer radius of the heat pipe insulation, m
	r_pa       float64 // outer radius of the heat pipes, m
	r_pi       float64 // inner radius of the heat pipes, m
	lambda_b   float64 // thermal conductivity of the borehole backfill, W/m K
	lambda_iso float64 // thermal conductivity of the insulation, W/m K
	lambda_p   float64 // thermal conductivity of the heat pipe material, W/m K
	phi_0      float64 // angular position of the first heat pipe, rad
}

func NewHeatpipeArray(
	n int,
	r_b, r_w, r_iso_b, r_pa, r_pi float64,
	lambda_b, lambda_iso, lambda_p float64,
) *HeatpipeArray {
	return &HeatpipeArray{
		n:          n,
		r_b:        r_b,
		r_w:        r_w,
		r_iso_b:    r_iso_b,
		r_pa:       r_pa,
		r_pi:       r_pi,
		lambda_b:   lambda_b,
		lambda_iso: lambda_iso,
		lambda_p:   lambda_p,
	}
}

// Rotated returns a copy of the array turned by phi around the borehole axis.
func (hp *HeatpipeArray) Rotated(phi float64) *HeatpipeArray {
	r := *hp
	r.phi_0 += phi
	return &r
}

// N returns the number of heat pipes per borehole.
func (hp *HeatpipeArray) N() int {
	return hp.n
}

/*
Coordinates of the heat pipe centres with the borehole centre as origin.

	Returns:
		matrix [n, 2], column 0: x, m, column 1: y, m
*/
func (hp *HeatpipeArray) xy_mat() *mat.Dense {
	xy := mat.NewDense(hp.n, 2, nil)
	for i := 0; i < hp.n; i++ {
		phi := hp.phi_0 + 2.0*math.Pi*float64(i)/float64(hp.n)
		xy.Set(i, 0, hp.r_w*math.Cos(phi))
		xy.Set(i, 1, hp.r_w*math.Sin(phi))
	}
	return xy
}
