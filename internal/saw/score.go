// Package saw ranks students with Simple Additive Weighting: each
// criterion is normalized against the batch, weighted, and summed into a
// single priority score.
package saw

import (
	"encoding/json"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/normalize"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/student"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/tier"
)

// scorePrecision is the number of decimals kept on a SAW score.
const scorePrecision = 4

// ScoredRecord is a ranked student.
type ScoredRecord struct {
	Record     student.Record
	Features   student.Features
	Normalized map[student.Feature]float64
	Score      float64
	Rank       int
	Category   tier.Label
}

// MarshalJSON flattens the source record and appends the derived fields.
func (s ScoredRecord) MarshalJSON() ([]byte, error) {
	m := s.Record.Fields()
	m["features"] = s.Features
	m["normalized"] = s.Normalized
	m["sawScore"] = s.Score
	m["rank"] = s.Rank
	m["category"] = s.Category
	return json.Marshal(m)
}

// Result is the output of the SAW pipeline.
type Result struct {
	Data     []ScoredRecord `json:"data"`
	Criteria Criteria       `json:"criteria"`
	Summary  tier.Summary   `json:"summary"`
}

// Analyze scores and ranks records, then counts each category.
// An empty batch yields an empty result.
func Analyze(records []student.Record, criteria Criteria) (*Result, error) {
	scored, err := Score(records, criteria)
	if err != nil {
		return nil, err
	}
	labels := make([]tier.Label, len(scored))
	for i, s := range scored {
		labels[i] = s.Category
	}
	return &Result{
		Data:     scored,
		Criteria: criteria,
		Summary:  tier.Summarize(labels),
	}, nil
}

// Score computes the weighted score of every record, sorts descending
// (ties keep input order), and assigns ranks and categories by position.
func Score(records []student.Record, criteria Criteria) ([]ScoredRecord, error) {
	out := make([]ScoredRecord, 0, len(records))
	if len(records) == 0 {
		return out, nil
	}

	features := student.ExtractAll(records)
	rows := make([][]float64, len(features))
	for i, f := range features {
		row := make([]float64, len(criteria))
		for j, cr := range criteria {
			row[j] = f[cr.Key]
		}
		rows[i] = row
	}

	normalized, err := normalize.SAW(rows, criteria.columns())
	if err != nil {
		return nil, err
	}

	weights := criteria.weights()
	for i, rec := range records {
		slots := make(map[student.Feature]float64, len(criteria))
		for j, cr := range criteria {
			slots[cr.Key] = normalized[i][j]
		}
		out = append(out, ScoredRecord{
			Record:     rec,
			Features:   features[i],
			Normalized: slots,
			Score:      scalar.Round(floats.Dot(weights, normalized[i]), scorePrecision),
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	for i := range out {
		out[i].Rank = i + 1
		out[i].Category = CategoryAt(i, len(out))
	}
	return out, nil
}

// CategoryAt returns the category for the record at 0-based position i
// of a ranked list of n: the first floor(0.2n) are Berprestasi, up to
// floor(0.6n) are Cukup, and the rest need attention.
func CategoryAt(i, n int) tier.Label {
	top, mid := n*2/10, n*6/10
	switch {
	case i < top:
		return tier.Berprestasi
	case i < mid:
		return tier.Cukup
	default:
		return tier.PerluPerhatian
	}
}
