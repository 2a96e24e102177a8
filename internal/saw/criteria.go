package saw

import (
	"fmt"
	"math"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/normalize"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/student"
)

// weightTolerance bounds how far a criterion table's weights may drift
// from a sum of 1.0.
const weightTolerance = 1e-9

// Criterion is one weighted column of the SAW decision matrix.
type Criterion struct {
	Key    student.Feature    `json:"key"`
	Name   string             `json:"name"`
	Weight float64            `json:"weight"`
	Type   normalize.Polarity `json:"type"`
}

// Criteria is an ordered criterion table.
type Criteria []Criterion

// DefaultCriteria returns the shipped criterion table. All criteria are
// benefit-type and the weights sum to 1.0.
func DefaultCriteria() Criteria {
	return Criteria{
		{Key: student.AverageGrade, Name: student.AverageGrade.DisplayName(), Weight: 0.4, Type: normalize.Benefit},
		{Key: student.Attendance, Name: student.Attendance.DisplayName(), Weight: 0.3, Type: normalize.Benefit},
		{Key: student.Attitude, Name: student.Attitude.DisplayName(), Weight: 0.2, Type: normalize.Benefit},
		{Key: student.Tasks, Name: student.Tasks.DisplayName(), Weight: 0.1, Type: normalize.Benefit},
	}
}

// Sum returns the total of all weights.
func (c Criteria) Sum() float64 {
	var sum float64
	for _, cr := range c {
		sum += cr.Weight
	}
	return sum
}

// Validate checks the table before it is handed to Score: known feature
// keys without duplicates, no negative weight, weights summing to 1.0.
// Score itself does not call Validate.
func (c Criteria) Validate() error {
	if len(c) == 0 {
		return &ErrInvalidConfig{Field: "criteria", Reason: "no criteria"}
	}
	seen := make(map[student.Feature]bool, len(c))
	for _, cr := range c {
		if !cr.Key.Valid() {
			return &ErrInvalidConfig{Field: "criteria", Reason: fmt.Sprintf("unknown feature %d", int(cr.Key))}
		}
		if seen[cr.Key] {
			return &ErrInvalidConfig{Field: "criteria", Reason: fmt.Sprintf("duplicate criterion %s", cr.Key.Key())}
		}
		seen[cr.Key] = true
		if cr.Weight < 0 {
			return &ErrInvalidConfig{Field: "weight", Reason: fmt.Sprintf("negative weight %g for %s", cr.Weight, cr.Key.Key())}
		}
	}
	if sum := c.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return &ErrInvalidConfig{Field: "weight", Reason: fmt.Sprintf("weights sum to %.4f, must sum to 1.0", sum)}
	}
	return nil
}

func (c Criteria) columns() []normalize.Column {
	cols := make([]normalize.Column, len(c))
	for j, cr := range c {
		cols[j] = normalize.Column{Name: cr.Key.Key(), Polarity: cr.Type}
	}
	return cols
}

func (c Criteria) weights() []float64 {
	w := make([]float64, len(c))
	for j, cr := range c {
		w[j] = cr.Weight
	}
	return w
}

// ErrInvalidConfig indicates a criterion table the scorer must not use.
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid SAW configuration (%s): %s", e.Field, e.Reason)
}
