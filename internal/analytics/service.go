// Package analytics runs the two student-performance pipelines, SAW
// priority ranking and K-Means tiering, over one batch of records.
package analytics

import (
	"errors"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/kmeans"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/normalize"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/saw"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/tier"
)

// Logger receives warnings from a run. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// Service runs analyses with a fixed criterion table and label vocabulary.
// It holds no per-run state and is safe for concurrent use.
type Service struct {
	criteria saw.Criteria
	vocab    []tier.Label
	logger   Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCriteria replaces the shipped SAW criterion table.
func WithCriteria(c saw.Criteria) Option {
	return func(s *Service) {
		s.criteria = c
	}
}

// WithVocabulary replaces the tier labels assigned to ranked clusters.
func WithVocabulary(v []tier.Label) Option {
	return func(s *Service) {
		s.vocab = v
	}
}

// WithLogger sets where run warnings go.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates a Service. A caller-supplied criterion table is
// validated here, once, rather than on every run.
func NewService(opts ...Option) (*Service, error) {
	s := &Service{
		criteria: saw.DefaultCriteria(),
		vocab:    tier.DefaultVocabulary(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.criteria.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Criteria returns a copy of the criterion table in use.
func (s *Service) Criteria() saw.Criteria {
	return append(saw.Criteria(nil), s.criteria...)
}

// ClusterOptions configures one clustering run.
type ClusterOptions struct {
	kmeans.Config

	// Seed makes the run reproducible. Ignored when Rand is set.
	Seed *uint64

	// Rand overrides the random source entirely.
	Rand *rand.Rand
}

// DefaultClusterOptions returns three clusters, 100 iterations and a
// clock-seeded random source.
func DefaultClusterOptions() ClusterOptions {
	return ClusterOptions{Config: kmeans.DefaultConfig()}
}

func (o ClusterOptions) engine() *kmeans.Engine {
	switch {
	case o.Rand != nil:
		return kmeans.New(o.Config, o.Rand)
	case o.Seed != nil:
		return kmeans.NewSeeded(o.Config, *o.Seed)
	default:
		return kmeans.New(o.Config, nil)
	}
}

func (s *Service) warnf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf("warning: "+format, args...)
	}
}

func newRunID() string {
	return uuid.New().String()
}

// IsInvalidConfig reports whether err rejects a configuration: a bad k,
// iteration bound, epsilon, or criterion table.
func IsInvalidConfig(err error) bool {
	var km *kmeans.ErrInvalidConfig
	var sw *saw.ErrInvalidConfig
	return errors.As(err, &km) || errors.As(err, &sw)
}

// IsDegenerate reports whether err is a SAW criterion that cannot be
// normalized for the batch.
func IsDegenerate(err error) bool {
	var d *normalize.ErrDegenerateCriterion
	return errors.As(err, &d)
}
