// Package normalize rescales batches of feature rows. Two strategies are
// kept apart on purpose: SAW normalization divides by the batch extreme of
// each criterion, while MinMax maps every column linearly onto [0,1].
package normalize

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Polarity tells whether a higher raw value is preferable.
type Polarity int

const (
	Benefit Polarity = iota
	Cost
)

func (p Polarity) String() string {
	if p == Cost {
		return "cost"
	}
	return "benefit"
}

func (p Polarity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Polarity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "benefit":
		*p = Benefit
	case "cost":
		*p = Cost
	default:
		return fmt.Errorf("unknown polarity %q", string(text))
	}
	return nil
}

// Column describes one criterion column of a SAW batch.
type Column struct {
	Name     string
	Polarity Polarity
}

// ErrDegenerateCriterion indicates a SAW column whose batch extremes make
// the ratio undefined: a benefit column with a zero maximum, or a cost
// column holding a zero value.
type ErrDegenerateCriterion struct {
	Criterion string
	Reason    string
}

func (e *ErrDegenerateCriterion) Error() string {
	return fmt.Sprintf("degenerate criterion %q: %s", e.Criterion, e.Reason)
}

// SAW normalizes rows column by column: benefit columns become
// value/max, cost columns become min/value. Rows must have one value per
// column. The input is not modified.
func SAW(rows [][]float64, cols []Column) ([][]float64, error) {
	out := make([][]float64, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(cols))
		}
		out[i] = make([]float64, len(cols))
	}

	for j, col := range cols {
		values := column(rows, j)
		switch col.Polarity {
		case Cost:
			if containsZero(values) {
				return nil, &ErrDegenerateCriterion{Criterion: col.Name, Reason: "cost criterion has a zero value"}
			}
			lo := floats.Min(values)
			for i, v := range values {
				out[i][j] = lo / v
			}
		default:
			hi := floats.Max(values)
			if hi == 0 {
				return nil, &ErrDegenerateCriterion{Criterion: col.Name, Reason: "benefit criterion has a zero maximum"}
			}
			for i, v := range values {
				out[i][j] = v / hi
			}
		}
	}
	return out, nil
}

// MinMax scales every column to (v-min)/(max-min). A constant column maps
// to 0 for every row. All rows must share the width of the first row.
func MinMax(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	if len(rows) == 0 {
		return out
	}
	width := len(rows[0])
	for i := range out {
		out[i] = make([]float64, width)
	}

	for j := 0; j < width; j++ {
		values := column(rows, j)
		lo, hi := floats.Min(values), floats.Max(values)
		span := hi - lo
		if span == 0 {
			continue
		}
		for i, v := range values {
			out[i][j] = (v - lo) / span
		}
	}
	return out
}

// Bounds returns the per-column minimum and maximum of rows.
func Bounds(rows [][]float64) (lo, hi []float64) {
	if len(rows) == 0 {
		return nil, nil
	}
	width := len(rows[0])
	lo = make([]float64, width)
	hi = make([]float64, width)
	for j := 0; j < width; j++ {
		values := column(rows, j)
		lo[j], hi[j] = floats.Min(values), floats.Max(values)
	}
	return lo, hi
}

func column(rows [][]float64, j int) []float64 {
	values := make([]float64, len(rows))
	for i, row := range rows {
		values[i] = row[j]
	}
	return values
}

func containsZero(values []float64) bool {
	for _, v := range values {
		if v == 0 {
			return true
		}
	}
	return false
}
