package snow_melt_calc

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
)

// Recorder keeps the results of every time step.
type Recorder struct {
	_itv           Interval
	_a_he          float64 // surface area, m2
	_rho_w         float64 // density of water, kg/m3
	dates          []string
	q_ns           []float64 // extraction power including losses, W
	q_n_ns         []float64 // net power used for melting, W
	q_v_ns         []float64 // losses, W
	theta_b_ns     []float64 // borehole wall temperature, degree C
	theta_surf_ns  []float64 // surface temperature, degree C
	theta_inf_ns   []float64 // ambient temperature, degree C
	u_inf_ns       []float64 // wind speed, m/s
	s_r_ns         []float64 // snowfall rate, mm/h
	m_w_ns         []float64 // water on the surface, kg
	m_s_ns         []float64 // snow on the surface, kg
	mode_ns        []SimulationMode
	sb_active_ns   []bool
	start_sb_ns    []bool // step calculated twice
	evaluations_ns []int
}

func NewRecorder(n_step int, itv Interval, a_he float64, c *PhysicalConstants) *Recorder {
	return &Recorder{
		_itv:           itv,
		_a_he:          a_he,
		_rho_w:         c.rho_w,
		dates:          make([]string, n_step),
		q_ns:           make([]float64, n_step),
		q_n_ns:         make([]float64, n_step),
		q_v_ns:         make([]float64, n_step),
		theta_b_ns:     make([]float64, n_step),
		theta_surf_ns:  make([]float64, n_step),
		theta_inf_ns:   make([]float64, n_step),
		u_inf_ns:       make([]float64, n_step),
		s_r_ns:         make([]float64, n_step),
		m_w_ns:         make([]float64, n_step),
		m_s_ns:         make([]float64, n_step),
		mode_ns:        make([]SimulationMode, n_step),
		sb_active_ns:   make([]bool, n_step),
		start_sb_ns:    make([]bool, n_step),
		evaluations_ns: make([]int, n_step),
	}
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	return len(r.q_ns)
}

/*
Writes the result of step n. A repeated step overwrites the earlier result.

	Args:
		n: step
		date: label of the step
		w: weather of the step
		res: result of the load calculation
		q: extraction power including losses, W
		theta_b: borehole wall temperature, degree C
		theta_surf: surface temperature, degree C
		start_sb: step calculated with snow balancing requested
*/
func (r *Recorder) recording(
	n int,
	date string,
	w WeatherSample,
	res *LoadResult,
	q, theta_b, theta_surf float64,
	start_sb bool,
) {
	r.dates[n] = date
	r.q_ns[n] = q
	r.q_n_ns[n] = res.QNet
	r.q_v_ns[n] = res.QLoss
	r.theta_b_ns[n] = theta_b
	r.theta_surf_ns[n] = theta_surf
	r.theta_inf_ns[n] = w.Temperature
	r.u_inf_ns[n] = w.WindSpeed
	r.s_r_ns[n] = w.Snowfall
	r.m_w_ns[n] = res.MWater
	r.m_s_ns[n] = res.MSnow
	r.mode_ns[n] = res.Mode
	r.sb_active_ns[n] = res.SnowBalancing
	r.start_sb_ns[n] = start_sb
	r.evaluations_ns[n] = res.Evaluations
}

// Q returns the extraction power including losses, W.
func (r *Recorder) Q() []float64 {
	return r.q_ns
}

// Losses returns the losses of connection and underside, W.
func (r *Recorder) Losses() []float64 {
	return r.q_v_ns
}

// BoreholeTemperature returns the borehole wall temperature, degree C.
func (r *Recorder) BoreholeTemperature() []float64 {
	return r.theta_b_ns
}

// SurfaceTemperature returns the surface temperature, degree C.
func (r *Recorder) SurfaceTemperature() []float64 {
	return r.theta_surf_ns
}

// Snowfall returns the snowfall rate, mm/h.
func (r *Recorder) Snowfall() []float64 {
	return r.s_r_ns
}

// Modes returns the mode of each step.
func (r *Recorder) Modes() []SimulationMode {
	return r.mode_ns
}

// MWater returns the water on the surface, kg.
func (r *Recorder) MWater() []float64 {
	return r.m_w_ns
}

// MSnow returns the snow on the surface, kg.
func (r *Recorder) MSnow() []float64 {
	return r.m_s_ns
}

// Repeated reports for each step whether it was calculated a second time
// with snow balancing requested.
func (r *Recorder) Repeated() []bool {
	return r.start_sb_ns
}

// SnowHeight returns the snow height on the surface, mm water equivalent.
func (r *Recorder) SnowHeight() []float64 {
	h := make([]float64, len(r.m_s_ns))
	floats.ScaleTo(h, 1000.0/(r._a_he*r._rho_w), r.m_s_ns)
	return h
}

/*
Moving average of the extraction power over 25 hours.

	Returns:
		moving average, W, [n]

	Notes:
		The window is centred and shrinks symmetrically at both ends of the
		series. The last value equals the last extraction power.
*/
func (r *Recorder) QMovingAverage() []float64 {
	return moving_average(r.q_ns, 25*r._itv.get_n_hour())
}

func moving_average(q []float64, width int) []float64 {
	n := len(q)
	q_ma := make([]float64, n)
	if n == 0 {
		return q_ma
	}

	half := width / 2
	mean := func(from, to int) float64 {
		if to > n {
			to = n
		}
		return floats.Sum(q[from:to]) / float64(to-from)
	}

	for i := 0; i < n; i++ {
		switch {
		case i <= half:
			q_ma[i] = mean(0, 2*i+1)
		case i < n-1-half:
			q_ma[i] = mean(i-half, i+width-half)
		default:
			q_ma[i] = mean(i-(n-1-i), n)
		}
	}
	q_ma[n-1] = q[n-1]
	return q_ma
}

// Summary holds the energy indicators of a run.
type Summary struct {
	Steps       int
	Repeats     int     // steps calculated twice
	E           float64 // extracted energy, MWh
	ENet        float64 // energy used for melting, MWh
	ELoss       float64 // energy of the connection and underside losses, MWh
	FNet        float64 // net energy usage factor, %
	QMax        float64 // maximum extraction power, W
	ModeCounts  map[SimulationMode]int
	Evaluations int
}

func (r *Recorder) Summary() Summary {
	to_mwh := r._itv.get_delta_t() / 3.6e9

	s := Summary{
		Steps:      r.Len(),
		E:          floats.Sum(r.q_ns) * to_mwh,
		ENet:       floats.Sum(r.q_n_ns) * to_mwh,
		ELoss:      floats.Sum(r.q_v_ns) * to_mwh,
		ModeCounts: make(map[SimulationMode]int),
	}
	if s.E > 0 {
		s.FNet = s.ENet / s.E * 100.0
	}
	if r.Len() > 0 {
		s.QMax = floats.Max(r.q_ns)
	}
	for n := range r.mode_ns {
		s.ModeCounts[r.mode_ns[n]]++
		s.Evaluations += r.evaluations_ns[n]
		if r.start_sb_ns[n] {
			s.Repeats++
		}
	}
	return s
}

// ResultRow is one line of the result file.
type ResultRow struct {
	Date          string  `csv:"date"`
	Q             float64 `csv:"q"`      // W/m2
	QMA           float64 `csv:"q_ma"`   // W/m2
	QNet          float64 `csv:"q_net"`  // W/m2
	QLoss         float64 `csv:"q_loss"` // W/m2
	ThetaB        float64 `csv:"theta_b"`
	ThetaSurf     float64 `csv:"theta_surf"`
	ThetaInf      float64 `csv:"theta_inf"`
	WindSpeed     float64 `csv:"wind_speed"`
	Snowfall      float64 `csv:"snowfall"`
	SnowHeight    float64 `csv:"snow_height"` // mm
	MWater        float64 `csv:"m_water"`     // kg
	Mode          int     `csv:"mode"`
	SnowBalancing bool    `csv:"snow_balancing"`
	Repeated      bool    `csv:"repeated"`
}

// rows of the result file, powers per surface area
func (r *Recorder) rows() []*ResultRow {
	q_ma := r.QMovingAverage()
	h_s := r.SnowHeight()

	rows := make([]*ResultRow, r.Len())
	for n := range rows {
		rows[n] = &ResultRow{
			Date:          r.dates[n],
			Q:             r.q_ns[n] / r._a_he,
			QMA:           q_ma[n] / r._a_he,
			QNet:          r.q_n_ns[n] / r._a_he,
			QLoss:         r.q_v_ns[n] / r._a_he,
			ThetaB:        r.theta_b_ns[n],
			ThetaSurf:     r.theta_surf_ns[n],
			ThetaInf:      r.theta_inf_ns[n],
			WindSpeed:     r.u_inf_ns[n],
			Snowfall:      r.s_r_ns[n],
			SnowHeight:    h_s[n],
			MWater:        r.m_w_ns[n],
			Mode:          int(r.mode_ns[n]),
			SnowBalancing: r.sb_active_ns[n],
			Repeated:      r.start_sb_ns[n],
		}
	}
	return rows
}

// SaveCSV writes the results of every step to file_path.
func (r *Recorder) SaveCSV(file_path string) error {
	file, err := os.Create(file_path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gocsv.MarshalFile(r.rows(), file); err != nil {
		return fmt.Errorf("write results %s: %w", file_path, err)
	}
	return nil
}
