package kmeans

import (
	"fmt"
	"math"
)

// Config controls a clustering run.
type Config struct {
	// K is the number of clusters. Must be in [1, number of points].
	K int

	// MaxIterations bounds the assign/update loop.
	MaxIterations int

	// Epsilon is the per-feature centroid movement below which the run
	// is considered converged.
	Epsilon float64

	// Workers splits the assign step across goroutines when > 1.
	// The result is identical to a sequential run.
	Workers int
}

// DefaultConfig returns the standard three-tier configuration.
func DefaultConfig() Config {
	return Config{
		K:             3,
		MaxIterations: 100,
		Epsilon:       0.001,
		Workers:       1,
	}
}

// Validate checks the configuration against a batch of n points.
func (c Config) Validate(n int) error {
	switch {
	case c.K <= 0:
		return &ErrInvalidConfig{Field: "k", Reason: fmt.Sprintf("k must be positive, got %d", c.K)}
	case c.K > n:
		return &ErrInvalidConfig{Field: "k", Reason: fmt.Sprintf("k (%d) exceeds the number of records (%d)", c.K, n)}
	case c.MaxIterations <= 0:
		return &ErrInvalidConfig{Field: "maxIterations", Reason: fmt.Sprintf("must be positive, got %d", c.MaxIterations)}
	case c.Epsilon <= 0 || math.IsNaN(c.Epsilon):
		return &ErrInvalidConfig{Field: "epsilon", Reason: fmt.Sprintf("must be positive, got %g", c.Epsilon)}
	case c.Workers < 0:
		return &ErrInvalidConfig{Field: "workers", Reason: fmt.Sprintf("must not be negative, got %d", c.Workers)}
	}
	return nil
}

// ErrInvalidConfig indicates a configuration rejected before the run starts.
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid k-means configuration (%s): %s", e.Field, e.Reason)
}

// State is a step of the clustering state machine.
type State int

const (
	StateInit State = iota
	StateAssigning
	StateUpdating
	StateConverged
	StateMaxIterations
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateAssigning:
		return "assigning"
	case StateUpdating:
		return "updating"
	case StateConverged:
		return "converged"
	case StateMaxIterations:
		return "max_iterations"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether the run has stopped in s.
func (s State) Terminal() bool {
	return s == StateConverged || s == StateMaxIterations
}
