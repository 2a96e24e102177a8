// Package tier holds the performance-tier vocabulary shared by the SAW
// ranking and the K-Means clustering, and counts records per tier.
package tier

// Label names a performance tier.
type Label string

const (
	Berprestasi    Label = "Berprestasi"
	Cukup          Label = "Cukup"
	PerluPerhatian Label = "Perlu Perhatian"
)

// DefaultVocabulary returns the tiers from best to worst.
func DefaultVocabulary() []Label {
	return []Label{Berprestasi, Cukup, PerluPerhatian}
}

// At returns the label for ordinal position i. Positions past the end of
// vocab reuse its last label.
func At(vocab []Label, i int) Label {
	if len(vocab) == 0 {
		return ""
	}
	if i >= len(vocab) {
		i = len(vocab) - 1
	}
	if i < 0 {
		i = 0
	}
	return vocab[i]
}

// Summary counts records per tier.
type Summary struct {
	Berprestasi    int `json:"berprestasi"`
	Cukup          int `json:"cukup"`
	PerluPerhatian int `json:"perluPerhatian"`

	// Other counts labels outside the default vocabulary.
	Other map[Label]int `json:"other,omitempty"`
}

// Summarize counts each label in labels.
func Summarize(labels []Label) Summary {
	var s Summary
	for _, l := range labels {
		switch l {
		case Berprestasi:
			s.Berprestasi++
		case Cukup:
			s.Cukup++
		case PerluPerhatian:
			s.PerluPerhatian++
		default:
			if s.Other == nil {
				s.Other = make(map[Label]int)
			}
			s.Other[l]++
		}
	}
	return s
}

// Count returns the number of records carrying l.
func (s Summary) Count(l Label) int {
	switch l {
	case Berprestasi:
		return s.Berprestasi
	case Cukup:
		return s.Cukup
	case PerluPerhatian:
		return s.PerluPerhatian
	default:
		return s.Other[l]
	}
}

// Total returns the number of records counted.
func (s Summary) Total() int {
	n := s.Berprestasi + s.Cukup + s.PerluPerhatian
	for _, c := range s.Other {
		n += c
	}
	return n
}
