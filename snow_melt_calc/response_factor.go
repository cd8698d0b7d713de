package snow_melt_calc

// Thermal resistances of the ground-to-surface path

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	gas_constant       = 8.314462618 // universal gas constant, J/mol K
	power_per_heatpipe = 500.0       // heat pipe characteristic, W per K and pipe
)

// ThermalResistances of the system, K/W. Computed once per run.
type ThermalResistances struct {
	Contact          float64 // ground-to-backfill contact
	Borehole         float64 // backfill to heat pipe fluid
	Heatpipe         float64 // heat pipe transport
	HeatingElement   float64 // pipe wall to slab surface
	Total            float64 // ground to surface
	GroundToHeatpipe float64 // ground to heat pipes, omits the heating element
}

/*
Builds the thermal resistance network.

	Args:
		lambda_g: thermal conductivity of the ground, W/m K
		bf: borefield
		hp: heat pipes of one borehole
		he: heating element
		opts: stopping rule of the heating element series

	Returns:
		thermal resistances, K/W
*/
func NewThermalResistances(
	lambda_g float64,
	bf Borefield,
	hp *HeatpipeArray,
	he *HeatingElement,
	opts SeriesOptions,
) (*ThermalResistances, error) {
	r_c := get_r_th_c(bf)

	r_b, err := get_r_th_b(lambda_g, bf, hp)
	if err != nil {
		return nil, err
	}

	r_hp := get_r_th_hp(bf, hp)

	r_he, err := get_r_th_he(he, opts)
	if err != nil {
		return nil, fmt.Errorf("heating element resistance: %w", err)
	}

	return &ThermalResistances{
		Contact:          r_c,
		Borehole:         r_b,
		Heatpipe:         r_hp,
		HeatingElement:   r_he,
		Total:            r_c + r_b + r_hp + r_he,
		GroundToHeatpipe: r_c + r_b + r_hp,
	}, nil
}

/*
Ground-to-backfill thermal contact resistance.

	Args:
		bf: borefield

	Returns:
		contact resistance of the borefield, K/W

	Notes:
		VDI Heat Atlas 2013, heat transfer coefficient wall to packed bed.
*/
func get_r_th_c(bf Borefield) float64 {
	const phi = 0.8          // surface coverage ratio, -
	const lambda_a = 0.025   // thermal conductivity of air, W/m K
	const d = 1e-3           // particle diameter, m
	const delta = 250 * 1e-6 // particle surface roughness, m
	const c = 2.8            // material constant, -
	const m = 0.02896        // molar mass of the gas, kg/mol
	const t = 283.0          // contact zone temperature, K
	const c_pa = 1007.0      // specific heat of the gas, J/kg K
	const eps_b = 0.2        // emissivity of the backfill, -
	const eps_w = 0.2        // emissivity of the wall, -
	const p = 100000.0       // pressure, Pa

	// accommodation coefficient
	gamma := 1.0 / (math.Pow(10, 0.6-(1000.0/t+1.0)/c) + 1.0)

	// free path length of the gas molecules
	l_frei := 2.0 * (2.0 - gamma) / gamma * math.Sqrt(2.0*math.Pi*gas_constant*t/m) *
		lambda_a / (p * (2.0*c_pa - gas_constant/m))

	c_ws := 5.670374419e-8 / (1.0/eps_w + 1.0/eps_b - 1.0)

	// conduction part
	alpha_wp := 4.0 * lambda_a / d * ((1.0+2.0*(l_frei+delta)/d)*
		math.Log(1.0+d/(2.0*(l_frei+delta))) - 1.0)

	// radiation part
	alpha_rad := 4.0 * c_ws * t * t * t

	alpha_ws := phi*alpha_wp + alpha_rad

	return 1.0 / (2.0 * math.Pi * bf.r_b() * alpha_ws * bf.length_field())
}

/*
Borehole thermal resistance for N heat pipes on a circle.

	Args:
		lambda_g: thermal conductivity of the ground, W/m K
		bf: borefield
		hp: heat pipes

	Returns:
		borehole resistance of the borefield, K/W

	Notes:
		Hellström (1991), line source approximation. The pipe interaction is
		not separable for N > 2, so the coefficient matrix is inverted.
*/
func get_r_th_b(lambda_g float64, bf Borefield, hp *HeatpipeArray) (float64, error) {
	r_b := bf.r_b()
	n := hp.n

	xy := hp.xy_mat()

	sigma := (hp.lambda_b - lambda_g) / (hp.lambda_b + lambda_g)

	// heat pipe wall and insulation
	r_pm := math.Log(hp.r_iso_b/hp.r_pa)/(2.0*math.Pi*hp.lambda_iso) +
		math.Log(hp.r_pa/hp.r_pi)/(2.0*math.Pi*hp.lambda_p)

	b_m := func(i int) float64 {
		return math.Hypot(xy.At(i, 0), xy.At(i, 1)) / r_b
	}
	b_mn := func(i, j int) float64 {
		return math.Hypot(xy.At(j, 0)-xy.At(i, 0), xy.At(j, 1)-xy.At(i, 1)) / r_b
	}

	k := 1.0 / (2.0 * math.Pi * hp.lambda_b)

	r_mn_0 := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				bm := b_m(i)
				r_mn_0.Set(i, j, k*(math.Log(r_b/hp.r_pa)-sigma*math.Log(1.0-bm*bm))+r_pm)
			} else {
				bm, bn, bmn := b_m(i), b_m(j), b_mn(i, j)
				bmn_ := math.Sqrt((1.0-bm*bm)*(1.0-bn*bn) + bmn*bmn)
				r_mn_0.Set(i, j, -k*(math.Log(bmn)-sigma*math.Log(bmn_)))
			}
		}
	}

	var inv mat.Dense
	if err := inv.Inverse(r_mn_0); err != nil {
		return 0, fmt.Errorf("borehole coefficient matrix: %w", err)
	}

	return 1.0 / (mat.Sum(&inv) * bf.length_field()), nil
}

/*
Thermal resistance of the thermosiphon heat pipes.

	Notes:
		Two-phase flow limits are not modelled. The pipes follow a linear
		characteristic of 1 K per 500 W and pipe.
*/
func get_r_th_hp(bf Borefield, hp *HeatpipeArray) float64 {
	return 1.0 / (power_per_heatpipe * float64(hp.n) * float64(len(bf)))
}

/*
Thermal resistance of the heating element.

	Notes:
		Pipe wall to surface temperature difference of 1 K, underside
		perfectly insulated: R = 1 K / (q_l * l_p_he).
*/
func get_r_th_he(he *HeatingElement, opts SeriesOptions) (float64, error) {
	q, err := q_l(he.x_o(), he.x_u(), he.d_pa, he.d_pi, he.lambda_c, he.lambda_p, he.s_r, 1.0, 0.0, true, opts)
	if err != nil {
		return 0, err
	}
	return 1.0 / (he.l_p_he * q), nil
}
