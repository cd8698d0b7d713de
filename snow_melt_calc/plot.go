package snow_melt_calc

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// series of one plot line
type plot_series struct {
	name   string
	ys     []float64
	color  color.Color
	dashed bool
}

var (
	color_black = color.RGBA{A: 255}
	color_red   = color.RGBA{R: 220, A: 255}
	color_green = color.RGBA{G: 150, A: 255}
	color_blue  = color.RGBA{B: 220, A: 255}
)

/*
Saves the result plots as PNG files.

	Args:
		r: results
		output_data_dir: output directory

	Returns:
		paths of the written files

	Notes:
		load.png: extraction power, its 25 h moving average and the losses per surface area
		temperature.png: borehole wall, surface and ambient temperature
		snow.png: snowfall rate and snow height on the surface
*/
func SavePlots(r *Recorder, output_data_dir string) ([]string, error) {
	per_area := func(q []float64) []float64 {
		ret := make([]float64, len(q))
		for i, v := range q {
			ret[i] = v / r._a_he
		}
		return ret
	}

	figures := []struct {
		filename string
		ylabel   string
		series   []plot_series
	}{
		{
			filename: "load.png",
			ylabel:   "q [W/m2]",
			series: []plot_series{
				{name: "Extracted thermal power", ys: per_area(r.q_ns), color: color_black},
				{name: "Extracted thermal power (25 h moving average)", ys: per_area(r.QMovingAverage()), color: color_red, dashed: true},
				{name: "Thermal losses (underside and connection)", ys: per_area(r.q_v_ns), color: color_green},
			},
		},
		{
			filename: "temperature.png",
			ylabel:   "Temperature [degree C]",
			series: []plot_series{
				{name: "Borehole wall", ys: r.theta_b_ns, color: color_red},
				{name: "Surface", ys: r.theta_surf_ns, color: color_black},
				{name: "Ambient", ys: r.theta_inf_ns, color: color_blue, dashed: true},
			},
		},
		{
			filename: "snow.png",
			ylabel:   "Snowfall rate [mm/h], snow height [mm]",
			series: []plot_series{
				{name: "Snowfall rate", ys: r.s_r_ns, color: color_blue},
				{name: "Snow height on heating element", ys: r.SnowHeight(), color: color_green},
			},
		},
	}

	paths := make([]string, 0, len(figures))
	for _, f := range figures {
		path := filepath.Join(output_data_dir, f.filename)
		if err := save_plot(path, f.ylabel, r._itv.get_time(), f.series); err != nil {
			return paths, fmt.Errorf("plot %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func save_plot(path, ylabel string, t_step float64, series []plot_series) error {
	p := plot.New()
	p.X.Label.Text = "Time [h]"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for _, s := range series {
		xys := make(plotter.XYs, len(s.ys))
		for i, y := range s.ys {
			xys[i].X = float64(i) * t_step
			xys[i].Y = y
		}

		l, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		l.Color = s.color
		l.Width = vg.Points(1)
		if s.dashed {
			l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}

		p.Add(l)
		p.Legend.Add(s.name, l)
	}

	return p.Save(12*vg.Inch, 4*vg.Inch, path)
}
