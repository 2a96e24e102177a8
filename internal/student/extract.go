package student

import (
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// Defaults used when a metric is missing from a record.
const (
	DefaultAverageGrade = 80.0
	DefaultAttendance   = 85.0
	DefaultAttitude     = 80.0
	DefaultTasks        = 8
)

// Extract maps a record to its feature vector. A metric that is absent
// or zero takes its default; the average grade falls back to the mean of
// the attached grade list (two decimals) before the fixed default.
func Extract(r Record) Features {
	var v Features
	v[AverageGrade] = averageGrade(r)
	v[Attendance] = orDefault(r.Attendance, DefaultAttendance)
	v[Attitude] = orDefault(r.Attitude, DefaultAttitude)
	if r.Tasks != nil && *r.Tasks != 0 {
		v[Tasks] = float64(*r.Tasks)
	} else {
		v[Tasks] = DefaultTasks
	}
	return v
}

// ExtractAll extracts every record in order.
func ExtractAll(records []Record) []Features {
	out := make([]Features, len(records))
	for i, r := range records {
		out[i] = Extract(r)
	}
	return out
}

// Rows converts feature vectors into a row-major slice of slices.
func Rows(vs []Features) [][]float64 {
	rows := make([][]float64, len(vs))
	for i, v := range vs {
		rows[i] = v.Slice()
	}
	return rows
}

func averageGrade(r Record) float64 {
	if r.AverageGrade != nil && *r.AverageGrade != 0 {
		return *r.AverageGrade
	}
	if len(r.Grades) == 0 {
		return DefaultAverageGrade
	}
	return scalar.Round(stat.Mean(r.Grades, nil), 2)
}

func orDefault(p *float64, def float64) float64 {
	if p == nil || *p == 0 {
		return def
	}
	return *p
}
