package analytics

import (
	"fmt"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/saw"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/student"
)

// PriorityResult is the SAW pipeline output.
type PriorityResult struct {
	RunID string `json:"runId"`
	saw.Result
}

// Priority ranks records by SAW score and buckets them by rank. An empty
// batch returns an empty result.
func (s *Service) Priority(records []student.Record) (*PriorityResult, error) {
	res, err := saw.Analyze(records, s.criteria)
	if err != nil {
		return nil, fmt.Errorf("saw analysis: %w", err)
	}
	return &PriorityResult{RunID: newRunID(), Result: *res}, nil
}
