package snow_melt_calc

import "math"

// Thermal losses of the plant: heat pipes between borehole heads and the
// heating element, and the underside of the heating element.
//
//	Q_V = Q_V_an + Q_V_he

// Insulated heat pipe section between the borehole heads and the heating element.
type Connection struct {
	l_r_an     float64 // total heat pipe length in the connection, m
	r_iso      float64 // outer radius of the insulation, m
	r_pa       float64 // outer pipe radius, m
	r_pi       float64 // inner pipe radius, m
	lambda_p   float64 // thermal conductivity of the pipes, W/m K
	lambda_iso float64 // thermal conductivity of the insulation, W/m K
}

/*
Builds the connection of the heat pipes.

	Args:
		l_conn: total length of all borehole-to-heating-element connections, m
		d_iso: insulation thickness of the connection, m
		hp: heat pipes (radii and conductivities)

	Notes:
		Each connection is a bundle of the N heat pipes of a borehole, so the
		heat pipe length inside the connections is l_conn * N.
*/
func NewConnection(l_conn, d_iso float64, hp *HeatpipeArray) *Connection {
	return &Connection{
		l_r_an:     l_conn * float64(hp.n),
		r_iso:      hp.r_pa + d_iso,
		r_pa:       hp.r_pa,
		r_pi:       hp.r_pi,
		lambda_p:   hp.lambda_p,
		lambda_iso: hp.lambda_iso,
	}
}

/*
Losses of the connection.

	Args:
		theta_r: heat pipe fluid temperature, degree C
		theta_inf: ambient temperature, degree C

	Returns:
		loss, W, never negative

	Notes:
		Peclet equation for cylindrical shells with convection on the outer
		insulation surface. Wickless thermosiphons do not carry heat back
		into the ground.
*/
func (cn *Connection) get_q_v_an(theta_r, theta_inf float64) float64 {
	dt := theta_r - theta_inf
	r := math.Log(cn.r_pa/cn.r_pi)/cn.lambda_p +
		math.Log(cn.r_iso/cn.r_pa)/cn.lambda_iso +
		1.0/(get_alpha_con_an(dt)*cn.r_iso)

	q := dt * 2.0 * math.Pi * cn.l_r_an / r
	return math.Max(0, q)
}

/*
Losses through the underside of the heating element.

	Args:
		he: heating element
		lambda_iso: thermal conductivity of the insulation, W/m K
		theta_r: heat pipe fluid temperature, degree C
		theta_inf: ambient temperature, degree C
		opts: series stopping rule

	Returns:
		loss, W, never negative
*/
func get_q_v_he(he *HeatingElement, lambda_iso, theta_r, theta_inf float64, opts SeriesOptions) (float64, error) {
	// pipes to underside, without insulation (x_o and x_u swapped)
	q, err := q_l(he.x_u(), he.x_o(), he.d_pa, he.d_pi, he.lambda_c, he.lambda_p, he.s_r, 1.0, 0.0, true, opts)
	if err != nil {
		return 0, err
	}
	r_he_u := 1.0 / (he.l_p_he * q)

	r_he_iso := he.d_iso_he / (lambda_iso * he.a_he)

	r_he_alpha := 1.0 / (get_alpha_con_he_u() * he.a_he)

	return math.Max(0, (theta_r-theta_inf)/(r_he_u+r_he_iso+r_he_alpha)), nil
}

// HeatLoss combines the connection and the heating element underside.
type HeatLoss struct {
	conn *Connection
	he   *HeatingElement
	r_u  float64 // underside resistance, K/W
}

/*
Builds the loss model. The underside resistance does not depend on the
operating point, so it is evaluated once.
*/
func NewHeatLoss(conn *Connection, he *HeatingElement, opts SeriesOptions) (*HeatLoss, error) {
	// 1 K driving difference gives the conductance
	g, err := get_q_v_he(he, conn.lambda_iso, 1.0, 0.0, opts)
	if err != nil {
		return nil, err
	}
	return &HeatLoss{conn: conn, he: he, r_u: 1.0 / g}, nil
}

/*
Total loss.

	Args:
		theta_r: heat pipe fluid temperature, degree C
		theta_inf: ambient temperature, degree C

	Returns:
		loss, W
*/
func (hl *HeatLoss) Q(theta_r, theta_inf float64) float64 {
	q_he := math.Max(0, (theta_r-theta_inf)/hl.r_u)
	return hl.conn.get_q_v_an(theta_r, theta_inf) + q_he
}
