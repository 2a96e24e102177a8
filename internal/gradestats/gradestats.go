// Package gradestats computes descriptive statistics over a list of
// numeric grades: central tendency, spread, pass rate and the letter and
// predicate scales used on report cards.
package gradestats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// DefaultPassingGrade is the minimum grade counted as a pass.
const DefaultPassingGrade = 70.0

// LetterGrade converts a 0-100 grade to A-E.
func LetterGrade(v float64) string {
	switch {
	case v >= 90:
		return "A"
	case v >= 80:
		return "B"
	case v >= 70:
		return "C"
	case v >= 60:
		return "D"
	default:
		return "E"
	}
}

// Predicate converts a 0-100 grade to its report-card predicate.
func Predicate(v float64) string {
	switch {
	case v >= 90:
		return "Sangat Baik"
	case v >= 80:
		return "Baik"
	case v >= 70:
		return "Cukup"
	case v >= 60:
		return "Kurang"
	default:
		return "Sangat Kurang"
	}
}

// Average returns the mean rounded to two decimals, or 0 for no values.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return scalar.Round(stat.Mean(values, nil), 2)
}

// Median returns the middle value, averaging the two middle values of an
// even-length list.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Mode returns the most frequent value. On a tie the value that first
// reached the highest count wins.
func Mode(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	freq := make(map[float64]int, len(values))
	mode, best := values[0], 0
	for _, v := range values {
		freq[v]++
		if freq[v] > best {
			best = freq[v]
			mode = v
		}
	}
	return mode
}

// StdDev returns the population standard deviation around the
// two-decimal average, with the variance also rounded to two decimals
// as on the report card.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Average(values)
	sq := make([]float64, len(values))
	for i, v := range values {
		sq[i] = (v - mean) * (v - mean)
	}
	return math.Sqrt(Average(sq))
}

// PassingRate returns the percentage of grades at or above passing,
// rounded to two decimals.
func PassingRate(values []float64, passing float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var passed int
	for _, v := range values {
		if v >= passing {
			passed++
		}
	}
	return scalar.Round(float64(passed)/float64(len(values))*100, 2)
}

// Band is one grade range on the report-card scale.
type Band struct {
	Name  string  `json:"name"`
	Min   float64 `json:"min"`
	Count int     `json:"count"`
}

// Categorize counts grades per band, best band first.
func Categorize(values []float64) []Band {
	bands := []Band{
		{Name: "Sangat Baik (90-100)", Min: 90},
		{Name: "Baik (80-89)", Min: 80},
		{Name: "Cukup (70-79)", Min: 70},
		{Name: "Kurang (60-69)", Min: 60},
		{Name: "Sangat Kurang (<60)"},
	}
	for _, v := range values {
		for i := range bands {
			if v >= bands[i].Min || i == len(bands)-1 {
				bands[i].Count++
				break
			}
		}
	}
	return bands
}

// Report bundles the statistics of one grade list.
type Report struct {
	Count        int     `json:"count"`
	Average      float64 `json:"average"`
	Median       float64 `json:"median"`
	Mode         float64 `json:"mode"`
	StdDev       float64 `json:"stdDev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	PassingGrade float64 `json:"passingGrade"`
	PassingRate  float64 `json:"passingRate"`
	Letter       string  `json:"letter"`
	Predicate    string  `json:"predicate"`
	Bands        []Band  `json:"bands"`
}

// Describe computes every statistic for values. Letter and predicate
// describe the average.
func Describe(values []float64, passing float64) Report {
	r := Report{
		Count:        len(values),
		Average:      Average(values),
		Median:       Median(values),
		Mode:         Mode(values),
		StdDev:       StdDev(values),
		PassingGrade: passing,
		PassingRate:  PassingRate(values, passing),
		Bands:        Categorize(values),
	}
	if len(values) > 0 {
		r.Min, r.Max = floats.Min(values), floats.Max(values)
		r.Letter = LetterGrade(r.Average)
		r.Predicate = Predicate(r.Average)
	}
	return r
}
