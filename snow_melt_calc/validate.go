package snow_melt_calc

import (
	"fmt"
	"math"
)

/*
Checks the plant geometry before a run. The calculation functions assume
geometry that passed this check.

	Args:
		bf: borefield
		hp: heat pipes
		he: heating element

	Returns:
		an error wrapping ErrInvalidGeometry for the first violation found
*/
func ValidateGeometry(bf Borefield, hp *HeatpipeArray, he *HeatingElement) error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidGeometry, fmt.Sprintf(format, args...))
	}

	if len(bf) == 0 {
		return invalid("empty borefield")
	}
	for i, b := range bf {
		if b.h <= 0 || b.d < 0 || b.r_b <= 0 {
			return invalid("borehole %d: H=%g, D=%g, r_b=%g", i+1, b.h, b.d, b.r_b)
		}
		for j := 0; j < i; j++ {
			dis := math.Hypot(b.x-bf[j].x, b.y-bf[j].y)
			if dis < b.r_b || dis < bf[j].r_b {
				return invalid("boreholes %d and %d overlap (distance %g m)", j+1, i+1, dis)
			}
		}
	}

	if hp.n < 1 {
		return invalid("number of heat pipes %d", hp.n)
	}
	if !(0 < hp.r_pi && hp.r_pi < hp.r_pa && hp.r_pa <= hp.r_iso_b) {
		return invalid("heat pipe radii r_pi=%g, r_pa=%g, r_iso=%g", hp.r_pi, hp.r_pa, hp.r_iso_b)
	}
	if hp.r_w+hp.r_iso_b >= bf.r_b() {
		return invalid("heat pipes touch the borehole wall")
	}
	if hp.n > 1 {
		// chord between neighbouring pipes
		chord := 2.0 * hp.r_w * math.Sin(math.Pi/float64(hp.n))
		if chord <= 2.0*hp.r_iso_b {
			return invalid("heat pipes overlap (centre distance %g m)", chord)
		}
	}
	if hp.lambda_b <= 0 || hp.lambda_iso <= 0 || hp.lambda_p <= 0 {
		return invalid("non-positive borehole conductivity")
	}

	if he.a_he <= 0 || he.l_p_he <= 0 || he.s_r <= he.d_pa || he.d_pi >= he.d_pa {
		return invalid("heating element A=%g, l=%g, s_R=%g", he.a_he, he.l_p_he, he.s_r)
	}
	if he.x_min < 0 || he.x_o()+0.5*he.d_pa >= he.d_he {
		return invalid("pipe depth %g m exceeds slab thickness %g m", he.x_min, he.d_he)
	}
	if he.d_iso_he < 0 || he.lambda_c <= 0 {
		return invalid("heating element insulation or conductivity")
	}
	return nil
}
