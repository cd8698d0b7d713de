package snow_melt_calc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGeometry(t *testing.T) {
	bf, hp, he := default_plant()
	require.NoError(t, ValidateGeometry(bf, hp, he))

	tests := []struct {
		name string
		bf   Borefield
		hp   *HeatpipeArray
		he   *HeatingElement
	}{
		{
			name: "empty borefield",
			bf:   Borefield{},
			hp:   hp,
			he:   he,
		},
		{
			name: "overlapping boreholes",
			bf:   Borefield{NewBorehole(100, 2.5, 0.15, 0, 0), NewBorehole(100, 2.5, 0.15, 0.1, 0)},
			hp:   hp,
			he:   he,
		},
		{
			name: "pipes touch the wall",
			bf:   bf,
			hp:   NewHeatpipeArray(6, 0.15, 0.14, 0.016, 0.016, 0.015, 2.0, 0.03, 14.0),
			he:   he,
		},
		{
			name: "pipes overlap",
			bf:   bf,
			hp:   NewHeatpipeArray(24, 0.15, 0.1, 0.016, 0.016, 0.015, 2.0, 0.03, 14.0),
			he:   he,
		},
		{
			name: "inner radius",
			bf:   bf,
			hp:   NewHeatpipeArray(6, 0.15, 0.12, 0.016, 0.016, 0.017, 2.0, 0.03, 14.0),
			he:   he,
		},
		{
			name: "pipes below the slab",
			bf:   bf,
			hp:   hp,
			he:   NewHeatingElement(35, 0.3, 2.1, 14.0, 0.032, 0.030, 0.05, 1000, 0.25, 0.03),
		},
		{
			name: "pipe spacing",
			bf:   bf,
			hp:   hp,
			he:   NewHeatingElement(35, 0.025, 2.1, 14.0, 0.032, 0.030, 0.03, 1000, 0.25, 0.03),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGeometry(tt.bf, tt.hp, tt.he)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestLoadBorefieldCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "borefield.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y,H,D\n0,0,120,2\n5,0,,2.5\n"), 0644))

	bf, err := LoadBorefieldCSV(path, 100, 0.15)
	require.NoError(t, err)
	require.Len(t, bf, 2)

	assert.Equal(t, 220.0, bf.TotalLength())
	assert.Equal(t, 5.0, bf[0].distance(bf[1]))
	assert.Equal(t, 0.15, bf[0].distance(bf[0]))
	assert.Equal(t, 2.5, bf[1].d)

	require.NoError(t, os.WriteFile(path, []byte("x,y,H,D\n0,0,abc,2\n"), 0644))
	_, err = LoadBorefieldCSV(path, 100, 0.15)
	assert.Error(t, err)
}

func TestPsychrometrics(t *testing.T) {
	p, err := get_p_vs(273.15)
	require.NoError(t, err)
	assert.InDelta(t, 611.2, p, 0.5)

	p, err = get_p_vs(263.15)
	require.NoError(t, err)
	assert.InDelta(t, 259.9, p, 0.5)

	p, err = get_p_vs(293.15)
	require.NoError(t, err)
	assert.InDelta(t, 2339.0, p, 1.0)

	_, err = get_p_vs(500.0)
	assert.ErrorIs(t, err, ErrTemperatureRange)

	// saturated air holds more water than humid air at the same temperature
	x_inf, err := get_x_inf(5, 0.8, 520)
	require.NoError(t, err)
	x_sat, err := get_x_sat_surf(5, 520)
	require.NoError(t, err)
	assert.Less(t, x_inf, x_sat)
}

func TestCorrelations(t *testing.T) {
	assert.InDelta(t, 6.9707, get_u_eff(10), 1e-3)
	assert.InDelta(t, 25.6, get_alpha_con_he_o(5), 1e-12)
	assert.Greater(t, get_alpha_con_he_o(10), get_alpha_con_he_o(5))

	// the sky is at ambient temperature during snowfall
	assert.InDelta(t, 268.15, get_t_mr(1, -5, 0.5, 0.8), 1e-9)
	assert.Less(t, get_t_mr(0, -5, 0, 0.8), 268.15)
}
