package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	smc "snow_melt_calc/snow_melt_calc"
)

/*
Runs the snow melting simulation.

	Args:
		ctx: cancels the simulation between time steps
		config_path: parameter file (INI)
		borefield_path: borefield file (CSV), empty for a single borehole
		weather_path: hourly weather file (CSV)
		output_data_dir: output directory
		is_plot_saved: save result plots
*/
func run(
	ctx context.Context,
	config_path string,
	borefield_path string,
	weather_path string,
	output_data_dir string,
	is_plot_saved bool,
) error {
	// ---- preparation ----

	if err := os.MkdirAll(output_data_dir, 0755); err != nil {
		return err
	}

	log.Infof("Load parameters from `%s`", config_path)
	cfg, err := LoadConfig(config_path)
	if err != nil {
		return err
	}

	itv, err := smc.ParseInterval(cfg.Interval)
	if err != nil {
		return err
	}

	bf, err := cfg.borefield(borefield_path)
	if err != nil {
		return err
	}
	hp := cfg.heatpipes()
	he := cfg.heatingElement()

	if err := smc.ValidateGeometry(bf, hp, he); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"boreholes":    len(bf),
		"total_length": bf.TotalLength(),
		"heatpipes":    hp.N(),
		"area":         he.Area(),
	}).Info("plant geometry")

	// ---- thermal resistances ----

	rth, err := smc.NewThermalResistances(cfg.Conductivity, bf, hp, he, cfg.seriesOptions())
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"R_c":     rth.Contact,
		"R_b":     rth.Borehole,
		"R_hp":    rth.Heatpipe,
		"R_he":    rth.HeatingElement,
		"R_total": rth.Total,
	}).Info("thermal resistances, K/W")

	conn := smc.NewConnection(cfg.ConnectionLength, cfg.ConnectionInsulation, hp)
	loss, err := smc.NewHeatLoss(conn, he, cfg.seriesOptions())
	if err != nil {
		return err
	}

	// ---- weather and ground ----

	log.Infof("Load weather data from `%s`", weather_path)
	w, err := smc.LoadWeatherCSV(weather_path, cfg.StartMonth, cfg.StartDay, cfg.n_hours(), itv)
	if err != nil {
		return err
	}

	ground, err := smc.NewLineSourceGround(
		cfg.UndisturbedTemperature,
		cfg.Conductivity,
		cfg.Diffusivity*1e-6,
		bf,
		itv,
		w.Len(),
	)
	if err != nil {
		return err
	}

	// ---- calculation ----

	c := smc.DefaultPhysicalConstants()
	lg := smc.NewLoadGenerator(c, cfg.Altitude, he, rth, loss, cfg.FreeAreaRatio, itv, cfg.solverOptions())

	result, err := smc.NewSimulation(lg, ground, bf).Run(ctx, w)
	if err != nil {
		return err
	}

	s := result.Summary()
	log.WithFields(log.Fields{
		"E_MWh":     s.E,
		"E_net_MWh": s.ENet,
		"f_net":     fmt.Sprintf("%.2f %%", s.FNet),
		"q_max_W":   s.QMax,
		"repeats":   s.Repeats,
	}).Info("energy extracted from the ground")
	for mode, n := range s.ModeCounts {
		log.Debugf("mode %d (%s): %d steps", int(mode), mode, n)
	}

	// ---- output ----

	result_path := filepath.Join(output_data_dir, "result.csv")
	log.Infof("Save calculation results to `%s`", result_path)
	if err := result.SaveCSV(result_path); err != nil {
		return err
	}

	if is_plot_saved {
		paths, err := smc.SavePlots(result, output_data_dir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			log.Infof("Save plot to `%s`", p)
		}
	}

	return nil
}

func main() {
	var config_path string
	flag.StringVar(&config_path, "config", "", "parameter file (INI); defaults are used when omitted")

	var borefield_path string
	flag.StringVar(&borefield_path, "borefield", "", "borefield file (CSV: x,y,H,D); a single borehole when omitted")

	var weather_path string
	flag.StringVar(&weather_path, "weather", "", "hourly weather file (CSV)")

	var output_data_dir string
	flag.StringVar(&output_data_dir, "o", ".", "output directory")

	var plot_saved bool
	flag.BoolVar(&plot_saved, "plot", false, "save result plots as PNG")

	var logLevel string
	flag.StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")

	flag.Parse()

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)

	if weather_path == "" {
		log.Fatal("weather file is required (-weather)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()

	if err := run(ctx, config_path, borefield_path, weather_path, output_data_dir, plot_saved); err != nil {
		log.Fatal(err)
	}

	elapsedTime := time.Since(start)
	log.Infof("elapsed_time: %v [sec]", elapsedTime)
}
