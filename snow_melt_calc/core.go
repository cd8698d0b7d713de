package snow_melt_calc

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Simulation couples the load calculation of the surface with the ground.
type Simulation struct {
	lg      *LoadGenerator
	ground  GroundModel
	h_total float64 // total borehole length, m
}

/*
Args:

	lg: surface load calculation
	ground: ground model fed with the load per metre of borehole
	bf: borefield
*/
func NewSimulation(lg *LoadGenerator, ground GroundModel, bf Borefield) *Simulation {
	return &Simulation{
		lg:      lg,
		ground:  ground,
		h_total: bf.length_field(),
	}
}

/*
Runs the simulation over all steps of the weather series.

	Args:
		ctx: checked between the steps
		w: weather series

	Returns:
		results of every step

	Notes:
		The first step starts from the undisturbed ground temperature for the
		borehole wall and the surface, with a dry and snow-free surface.
		When a snow-free step ends with a frozen surface during snowfall, the
		same step is calculated once more with snow balancing enabled.
*/
func (s *Simulation) Run(ctx context.Context, w *Weather) (*Recorder, error) {
	n_step := w.Len()
	lg := s.lg
	r_th := lg.rth.Total

	result := NewRecorder(n_step, w.Interval(), lg.he.a_he, lg.c)

	theta_g := s.ground.UndisturbedTemperature()

	// state of the preceding step
	theta_b_0, theta_surf_0 := theta_g, theta_g
	m_w_0, m_s_0 := 0.0, 0.0

	log.WithFields(log.Fields{
		"steps":    n_step,
		"interval": w.Interval(),
		"theta_g":  theta_g,
	}).Info("simulation started")

	m := 1
	start_sb := false
	for n := 0; n < n_step; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ws := w.Sample(n)

		res, err := lg.Load(ws, theta_b_0, theta_surf_0, m_w_0, m_s_0, start_sb)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", n, w.Date(n), err)
		}

		// losses are extracted from the ground as well
		q := res.Q + res.QLoss

		theta_b, err := s.ground.BoreholeTemperature(n, q/s.h_total)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", n, w.Date(n), err)
		}

		var theta_surf float64
		if res.CalcT {
			theta_surf = *res.ThetaSurf
		} else {
			theta_surf = theta_b - q*r_th
		}

		result.recording(n, w.Date(n), ws, res, q, theta_b, theta_surf, start_sb)

		if !start_sb && SnowBalancingRequested(theta_surf, ws.Snowfall, res.MSnow) {
			log.WithFields(log.Fields{
				"step":       n,
				"date":       w.Date(n),
				"theta_surf": theta_surf,
				"mode":       res.Mode,
			}).Debug("snow balancing started, step repeated")
			start_sb = true
			continue
		}
		start_sb = false

		theta_b_0, theta_surf_0 = theta_b, theta_surf
		m_w_0, m_s_0 = res.MWater, res.MSnow

		for m <= 12 && n+1 >= n_step*m/12 {
			log.Infof("%d / 12 calculated.", m)
			m++
		}
		n++
	}

	return result, nil
}
