package student

import (
	"encoding/json"
	"fmt"
)

// Feature identifies one slot of a Features vector.
type Feature int

const (
	AverageGrade Feature = iota
	Attendance
	Attitude
	Tasks
)

// NumFeatures is the width of a Features vector.
const NumFeatures = 4

// AllFeatures returns every feature in slot order.
func AllFeatures() []Feature {
	return []Feature{AverageGrade, Attendance, Attitude, Tasks}
}

// Key returns the JSON field name of the feature.
func (f Feature) Key() string {
	switch f {
	case AverageGrade:
		return "averageGrade"
	case Attendance:
		return "attendance"
	case Attitude:
		return "attitude"
	case Tasks:
		return "tasks"
	default:
		return fmt.Sprintf("feature%d", int(f))
	}
}

// DisplayName returns the label shown to teachers.
func (f Feature) DisplayName() string {
	switch f {
	case AverageGrade:
		return "Nilai Rata-rata"
	case Attendance:
		return "Kehadiran (%)"
	case Attitude:
		return "Nilai Sikap"
	case Tasks:
		return "Jumlah Tugas"
	default:
		return f.Key()
	}
}

// Valid reports whether f is one of the known slots.
func (f Feature) Valid() bool {
	return f >= AverageGrade && f <= Tasks
}

func (f Feature) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("unknown feature %d", int(f))
	}
	return []byte(f.Key()), nil
}

func (f *Feature) UnmarshalText(text []byte) error {
	p, err := ParseFeature(string(text))
	if err != nil {
		return err
	}
	*f = p
	return nil
}

// ParseFeature resolves a JSON field name to its Feature.
func ParseFeature(key string) (Feature, error) {
	for _, f := range AllFeatures() {
		if f.Key() == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown feature %q", key)
}

// Features is a fixed-width metric vector indexed by Feature.
type Features [NumFeatures]float64

// Slice returns a copy of the vector as a slice.
func (v Features) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}

// Map returns the vector keyed by feature.
func (v Features) Map() map[Feature]float64 {
	m := make(map[Feature]float64, NumFeatures)
	for _, f := range AllFeatures() {
		m[f] = v[f]
	}
	return m
}

// MarshalJSON encodes the vector as an object keyed by feature name.
func (v Features) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Map())
}

// FeaturesFromSlice copies the first NumFeatures values of s.
func FeaturesFromSlice(s []float64) Features {
	var v Features
	copy(v[:], s)
	return v
}
