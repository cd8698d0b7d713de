package main

import (
	"fmt"

	"gopkg.in/ini.v1"

	smc "snow_melt_calc/snow_melt_calc"
)

// Config holds the parameters of a simulation. Every key of the parameter
// file is optional.
type Config struct {
	// location
	Altitude float64 // m

	// ground
	Diffusivity            float64 // 1e-6 m2/s
	Conductivity           float64 // W/m K
	UndisturbedTemperature float64 // degree C

	// borehole
	Depth          float64 // m, used when the borefield file has no H column
	BuriedDepth    float64 // m, single borehole without borefield file
	BoreholeRadius float64 // m

	// heat pipes
	NumberOfHeatpipes int
	CircleRadius      float64 // m
	InsulationRadius  float64 // m
	OuterRadius       float64 // m
	InnerRadius       float64 // m
	LambdaBackfill    float64 // W/m K
	LambdaInsulation  float64 // W/m K
	LambdaPipe        float64 // W/m K

	// connection
	ConnectionLength     float64 // m
	ConnectionInsulation float64 // m

	// heating element
	Area                float64 // m2
	MinDepth            float64 // m
	LambdaSlab          float64 // W/m K
	PipeSpacing         float64 // m
	PipeLength          float64 // m
	Thickness           float64 // m
	UndersideInsulation float64 // m

	// surface
	FreeAreaRatio float64

	// simulation
	Hours      int
	Years      int
	StartMonth int
	StartDay   int
	Interval   string

	// solver
	Tolerance       float64
	InitialStep     float64
	MaxEvaluations  int
	SeriesTolerance float64
	SeriesMaxTerms  int
}

/*
Reads the parameter file.

	Args:
		file_path: path of the INI file, empty for the defaults only

	Returns:
		parameters
*/
func LoadConfig(file_path string) (*Config, error) {
	file := ini.Empty()
	if file_path != "" {
		var err error
		file, err = ini.Load(file_path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", file_path, err)
		}
	}
	cfg := loadCfg(file)
	return &cfg, nil
}

func loadCfg(file *ini.File) Config {
	location := file.Section("location")
	ground := file.Section("ground")
	borehole := file.Section("borehole")
	heatpipes := file.Section("heatpipes")
	connection := file.Section("connection")
	heating_element := file.Section("heating_element")
	surface := file.Section("surface")
	simulation := file.Section("simulation")
	solver := file.Section("solver")

	return Config{
		Altitude: location.Key("altitude").MustFloat64(520),

		Diffusivity:            ground.Key("diffusivity").MustFloat64(1.0),
		Conductivity:           ground.Key("conductivity").MustFloat64(2.0),
		UndisturbedTemperature: ground.Key("undisturbed_temperature").MustFloat64(10.0),

		Depth:          borehole.Key("depth").MustFloat64(100),
		BuriedDepth:    borehole.Key("buried_depth").MustFloat64(2.5),
		BoreholeRadius: borehole.Key("radius").MustFloat64(0.15),

		NumberOfHeatpipes: heatpipes.Key("number").MustInt(6),
		CircleRadius:      heatpipes.Key("circle_radius").MustFloat64(0.12),
		InsulationRadius:  heatpipes.Key("insulation_radius").MustFloat64(0.016),
		OuterRadius:       heatpipes.Key("outer_radius").MustFloat64(0.016),
		InnerRadius:       heatpipes.Key("inner_radius").MustFloat64(0.015),
		LambdaBackfill:    heatpipes.Key("lambda_backfill").MustFloat64(2.0),
		LambdaInsulation:  heatpipes.Key("lambda_insulation").MustFloat64(0.03),
		LambdaPipe:        heatpipes.Key("lambda_pipe").MustFloat64(14.0),

		ConnectionLength:     connection.Key("length").MustFloat64(5.0),
		ConnectionInsulation: connection.Key("insulation").MustFloat64(0.005),

		Area:                heating_element.Key("area").MustFloat64(35.0),
		MinDepth:            heating_element.Key("min_depth").MustFloat64(0.025),
		LambdaSlab:          heating_element.Key("lambda").MustFloat64(2.1),
		PipeSpacing:         heating_element.Key("pipe_spacing").MustFloat64(0.05),
		PipeLength:          heating_element.Key("pipe_length").MustFloat64(1000),
		Thickness:           heating_element.Key("thickness").MustFloat64(0.25),
		UndersideInsulation: heating_element.Key("insulation").MustFloat64(0.03),

		FreeAreaRatio: surface.Key("free_area_ratio").MustFloat64(0.2),

		Hours:      simulation.Key("hours").MustInt(730),
		Years:      simulation.Key("years").MustInt(0),
		StartMonth: simulation.Key("start_month").MustInt(11),
		StartDay:   simulation.Key("start_day").MustInt(1),
		Interval:   simulation.Key("interval").MustString(string(smc.IntervalH1)),

		Tolerance:       solver.Key("tolerance").MustFloat64(0.001),
		InitialStep:     solver.Key("initial_step").MustFloat64(100),
		MaxEvaluations:  solver.Key("max_evaluations").MustInt(100000),
		SeriesTolerance: solver.Key("series_tolerance").MustFloat64(1e-6),
		SeriesMaxTerms:  solver.Key("series_max_terms").MustInt(10000),
	}
}

// simulated hours, multi-year runs take precedence
func (c *Config) n_hours() int {
	if c.Years > 0 {
		return c.Years * 8760
	}
	return c.Hours
}

func (c *Config) solverOptions() smc.SolverOptions {
	return smc.SolverOptions{
		Tolerance:      c.Tolerance,
		InitialStep:    c.InitialStep,
		MaxEvaluations: c.MaxEvaluations,
	}
}

func (c *Config) seriesOptions() smc.SeriesOptions {
	return smc.SeriesOptions{
		Tolerance: c.SeriesTolerance,
		MaxTerms:  c.SeriesMaxTerms,
	}
}

// borefield from the file, or a single borehole
func (c *Config) borefield(file_path string) (smc.Borefield, error) {
	if file_path == "" {
		return smc.Borefield{smc.NewBorehole(c.Depth, c.BuriedDepth, c.BoreholeRadius, 0, 0)}, nil
	}
	return smc.LoadBorefieldCSV(file_path, c.Depth, c.BoreholeRadius)
}

func (c *Config) heatpipes() *smc.HeatpipeArray {
	return smc.NewHeatpipeArray(
		c.NumberOfHeatpipes,
		c.BoreholeRadius,
		c.CircleRadius,
		c.InsulationRadius,
		c.OuterRadius,
		c.InnerRadius,
		c.LambdaBackfill,
		c.LambdaInsulation,
		c.LambdaPipe,
	)
}

func (c *Config) heatingElement() *smc.HeatingElement {
	return smc.NewHeatingElement(
		c.Area,
		c.MinDepth,
		c.LambdaSlab,
		c.LambdaPipe,
		2*c.OuterRadius,
		2*c.InnerRadius,
		c.PipeSpacing,
		c.PipeLength,
		c.Thickness,
		c.UndersideInsulation,
	)
}
