package snow_melt_calc

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// WeatherSample is the weather of one time step.
type WeatherSample struct {
	WindSpeed     float64 // wind speed at the weather station, m/s
	Temperature   float64 // ambient temperature, degree C
	Snowfall      float64 // snowfall rate, mm/h
	Cloudiness    float64 // cloud fraction, -
	Humidity      float64 // relative humidity, -
	Precipitation float64 // total precipitation rate, mm/h
}

type Weather struct {
	_u_inf_ns     []float64 // wind speed, m/s, [n]
	_theta_inf_ns []float64 // ambient temperature, degree C, [n]
	_s_r_ns       []float64 // snowfall rate, mm/h, [n]
	_b_ns         []float64 // cloud fraction, -, [n]
	_phi_ns       []float64 // relative humidity, -, [n]
	_rr_ns        []float64 // precipitation rate, mm/h, [n]
	_dates        []string  // step labels, [n]
	_itv          Interval
}

/*
Args

	u_inf_ns: wind speed, m/s, [n]
	theta_inf_ns: ambient temperature, degree C, [n]
	rr_ns: precipitation rate, mm/h, [n]
	b_ns: cloud fraction, -, [n]
	phi_ns: relative humidity, -, [n]
	dates: step labels, [n] (may be nil)
	itv: time step

Notes

	The snowfall rate equals the precipitation rate below 1 degree C ambient
	temperature and is zero otherwise (precipitation falls as rain).
*/
func NewWeather(
	u_inf_ns, theta_inf_ns, rr_ns, b_ns, phi_ns []float64,
	dates []string,
	itv Interval,
) (*Weather, error) {
	n := len(theta_inf_ns)
	for _, s := range [][]float64{u_inf_ns, rr_ns, b_ns, phi_ns} {
		if len(s) != n {
			return nil, fmt.Errorf("weather series of different lengths (%d, %d)", n, len(s))
		}
	}
	if dates == nil {
		dates = make([]string, n)
		for i := range dates {
			dates[i] = fmt.Sprint(i + 1)
		}
	} else if len(dates) != n {
		return nil, fmt.Errorf("weather dates: %d labels for %d steps", len(dates), n)
	}

	s_r_ns := make([]float64, n)
	for i := range s_r_ns {
		s_r_ns[i] = get_s_r(rr_ns[i], theta_inf_ns[i])
	}

	return &Weather{
		_u_inf_ns:     u_inf_ns,
		_theta_inf_ns: theta_inf_ns,
		_s_r_ns:       s_r_ns,
		_b_ns:         b_ns,
		_phi_ns:       phi_ns,
		_rr_ns:        rr_ns,
		_dates:        dates,
		_itv:          itv,
	}, nil
}

// snowfall rate from the precipitation rate, mm/h
func get_s_r(rr, theta_inf float64) float64 {
	if theta_inf >= 1.0 {
		return 0
	}
	return rr
}

// Len returns the number of time steps.
func (w *Weather) Len() int {
	return len(w._theta_inf_ns)
}

func (w *Weather) Interval() Interval {
	return w._itv
}

// Sample returns the weather of step n.
func (w *Weather) Sample(n int) WeatherSample {
	return WeatherSample{
		WindSpeed:     w._u_inf_ns[n],
		Temperature:   w._theta_inf_ns[n],
		Snowfall:      w._s_r_ns[n],
		Cloudiness:    w._b_ns[n],
		Humidity:      w._phi_ns[n],
		Precipitation: w._rr_ns[n],
	}
}

// Date returns the label of step n.
func (w *Weather) Date(n int) string {
	return w._dates[n]
}

// WeatherDataRow is one hourly row of a weather file.
type WeatherDataRow struct {
	Month         int     `csv:"month"`
	Day           int     `csv:"day"`
	Hour          int     `csv:"hour"`
	Precipitation float64 `csv:"precipitation"` // mm/h
	Temperature   float64 `csv:"temperature"`   // degree C
	Humidity      float64 `csv:"humidity"`      // %
	WindSpeed     float64 `csv:"wind_speed"`    // m/s
	Cloudiness    float64 `csv:"cloudiness"`    // octas
}

/*
Reads hourly weather data and builds the series of a simulation.

	Args:
		file_path: path of the CSV file
		month: month of the first step
		day: day of the first step
		n_hours: simulated hours
		itv: time step

	Returns:
		weather series with n_hours * itv.get_n_hour() steps

	Notes:
		The rows are taken from the start date on and wrap around to the
		beginning of the file, so horizons longer than the file repeat it.
		Labels are mm-dd-hh, or y-mm-dd-hh when the horizon exceeds one year.

		month,day,hour,precipitation,temperature,humidity,wind_speed,cloudiness
		1,1,1,0.2,-3.1,88,2.4,8
*/
func LoadWeatherCSV(file_path string, month, day, n_hours int, itv Interval) (*Weather, error) {
	file, err := os.Open(file_path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var pp []*WeatherDataRow
	if err := gocsv.UnmarshalFile(file, &pp); err != nil {
		return nil, fmt.Errorf("read weather %s: %w", file_path, err)
	}

	rows, err := select_rows(pp, month, day, n_hours)
	if err != nil {
		return nil, fmt.Errorf("read weather %s: %w", file_path, err)
	}

	f := func(getc func(row *WeatherDataRow) float64) []float64 {
		ret := make([]float64, len(rows))
		for i, row := range rows {
			ret[i] = getc(row)
		}
		return _interpolate(ret, itv)
	}

	u_inf_ns := f(func(row *WeatherDataRow) float64 {
		return row.WindSpeed
	})
	theta_inf_ns := f(func(row *WeatherDataRow) float64 {
		return row.Temperature
	})
	rr_ns := f(func(row *WeatherDataRow) float64 {
		return row.Precipitation
	})

	// octas to fraction, 0/8 cloudless, 8/8 overcast
	b_ns := f(func(row *WeatherDataRow) float64 {
		return row.Cloudiness / 8.0
	})

	// % to fraction
	phi_ns := f(func(row *WeatherDataRow) float64 {
		return row.Humidity / 100.0
	})

	return NewWeather(u_inf_ns, theta_inf_ns, rr_ns, b_ns, phi_ns, get_dates(rows, itv), itv)
}

/*
Rows of the simulation horizon.

	Args:
		pp: rows of the file
		month: month of the first step
		day: day of the first step
		n_hours: simulated hours

	Returns:
		n_hours rows beginning at the first row of the start date
*/
func select_rows(pp []*WeatherDataRow, month, day, n_hours int) ([]*WeatherDataRow, error) {
	if len(pp) == 0 {
		return nil, fmt.Errorf("no rows")
	}
	if n_hours < 1 {
		return nil, fmt.Errorf("invalid number of hours %d", n_hours)
	}

	start := -1
	for i, row := range pp {
		if row.Month == month && row.Day == day {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("start date %02d-%02d not found", month, day)
	}

	rows := make([]*WeatherDataRow, n_hours)
	for i := range rows {
		rows[i] = pp[(start+i)%len(pp)]
	}
	return rows, nil
}

// labels of the time steps
func get_dates(rows []*WeatherDataRow, itv Interval) []string {
	n_hour := itv.get_n_hour()
	multi_year := len(rows) > 8760

	dates := make([]string, 0, len(rows)*n_hour)
	for i, row := range rows {
		label := fmt.Sprintf("%02d-%02d-%02d", row.Month, row.Day, row.Hour)
		if multi_year {
			label = fmt.Sprintf("%d-%s", i/8760+1, label)
		}
		for j := 0; j < n_hour; j++ {
			if n_hour == 1 {
				dates = append(dates, label)
			} else {
				dates = append(dates, fmt.Sprintf("%s:%02d", label, j*60/n_hour))
			}
		}
	}
	return dates
}

/*
Interpolates hourly data to the time step.

	Args:
		weather_data: hourly data [n]
		interval: time step of the result

	Returns:
		data [n * steps per hour]

	Notes:
		"1h": no interpolation
		"30m", "15m": linear between the hour and the next hour. The last hour
		is interpolated towards the first one.
*/
func _interpolate(weather_data []float64, interval Interval) []float64 {
	if interval == IntervalH1 {
		return weather_data
	}

	alpha := map[Interval][]float64{
		IntervalM30: {1.0, 0.5},
		IntervalM15: {1.0, 0.75, 0.5, 0.25},
	}[interval]

	data1 := weather_data
	data2 := roll(weather_data, -1)

	ndata := len(data1)
	nalpha := len(alpha)
	data_interp_1d := make([]float64, ndata*nalpha)
	off := 0
	for i := 0; i < ndata; i++ {
		for j := 0; j < nalpha; j++ {
			data_interp_1d[off] = alpha[j]*data1[i] + (1.0-alpha[j])*data2[i]
			off++
		}
	}
	return data_interp_1d
}

// roll shifts the slice cyclically by shift elements.
func roll(slice []float64, shift int) []float64 {
	length := len(slice)
	if length == 0 {
		return nil
	}
	shift %= length
	if shift < 0 {
		shift += length
	}
	result := make([]float64, 0, length)
	result = append(result, slice[length-shift:]...)
	return append(result, slice[:length-shift]...)
}
