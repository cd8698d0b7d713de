package snow_melt_calc

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"
)

type Borehole struct {
	h   float64 // borehole depth, m
	d   float64 // buried depth, m
	r_b float64 // borehole radius, m
	x   float64 // position of the head of the borehole along the x-axis, m
	y   float64 // position of the head of the borehole along the y-axis, m
}

func NewBorehole(h, d, r_b, x, y float64) Borehole {
	return Borehole{h: h, d: d, r_b: r_b, x: x, y: y}
}

func (b Borehole) String() string {
	return fmt.Sprintf("Borehole(H=%g, D=%g, r_b=%g, x=%g, y=%g)", b.h, b.d, b.r_b, b.x, b.y)
}

/*
Distance between the borehole and a target borehole.

	Args:
		target: target borehole

	Returns:
		distance, m

	Notes:
		The smallest distance returned is the borehole radius, so the
		distance between a borehole and itself is r_b.
*/
func (b Borehole) distance(target Borehole) float64 {
	return math.Max(b.r_b, math.Hypot(b.x-target.x, b.y-target.y))
}

// Borefield is the ordered set of boreholes connected to one heating element.
type Borefield []Borehole

// total borehole length of the field, m
func (bf Borefield) length_field() float64 {
	var h_field float64
	for _, b := range bf {
		h_field += b.h
	}
	return h_field
}

// TotalLength returns the summed depth of all boreholes, m.
func (bf Borefield) TotalLength() float64 {
	return bf.length_field()
}

// borehole radius shared by the field, m
func (bf Borefield) r_b() float64 {
	return bf[0].r_b
}

type BoreholeRow struct {
	X float64 `csv:"x"`
	Y float64 `csv:"y"`
	H string  `csv:"H"`
	D float64 `csv:"D"`
}

/*
Builds a borefield from a CSV file with the columns x, y, H and D.

	Args:
		file_path: path of the CSV file
		h: depth used for rows without an H value, m
		r_b: borehole radius, m

	Returns:
		borefield

	Notes:
		x,y,H,D
		0,0,100,2.5
		5,0,100,2.5
*/
func LoadBorefieldCSV(file_path string, h float64, r_b float64) (Borefield, error) {
	file, err := os.Open(file_path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []*BoreholeRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("read borefield %s: %w", file_path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read borefield %s: no boreholes", file_path)
	}

	bf := make(Borefield, len(rows))
	for i, row := range rows {
		h_i := h
		if row.H != "" {
			h_i, err = strconv.ParseFloat(row.H, 64)
			if err != nil {
				return nil, fmt.Errorf("read borefield %s: row %d: %w", file_path, i+1, err)
			}
		}
		bf[i] = NewBorehole(h_i, row.D, r_b, row.X, row.Y)
	}
	return bf, nil
}
