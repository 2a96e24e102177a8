package kmeans

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/tier"
)

// scatter returns n points in [0,1]^4 from a fixed source.
func scatter(n int, seed uint64) [][]float64 {
	r := rand.New(rand.NewPCG(seed, 7))
	points := make([][]float64, n)
	for i := range points {
		points[i] = []float64{r.Float64(), r.Float64(), r.Float64(), r.Float64()}
	}
	return points
}

func denseOf(rows [][]float64) *mat.Dense {
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, r := range rows {
		m.SetRow(i, r)
	}
	return m
}

// twoBlobs returns points near the origin followed by points near (1,1,1,1).
func twoBlobs() [][]float64 {
	return [][]float64{
		{0, 0.02, 0.01, 0},
		{0.03, 0, 0.02, 0.01},
		{0.01, 0.01, 0, 0.03},
		{1, 0.98, 0.99, 1},
		{0.97, 1, 0.98, 0.99},
		{0.99, 0.99, 1, 0.97},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		n     int
		field string
	}{
		{"k zero", func(c *Config) { c.K = 0 }, 5, "k"},
		{"k negative", func(c *Config) { c.K = -2 }, 5, "k"},
		{"k above n", func(c *Config) { c.K = 6 }, 5, "k"},
		{"no iterations", func(c *Config) { c.MaxIterations = 0 }, 5, "maxIterations"},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }, 5, "epsilon"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, 5, "workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(&cfg)
			var cfgErr *ErrInvalidConfig
			require.True(t, errors.As(cfg.Validate(tt.n), &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
	assert.NoError(t, DefaultConfig().Validate(3))
}

func TestRun_RejectsInvalidConfigBeforeInit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.K = 4
	_, err := NewSeeded(cfg, 1).Run(scatter(3, 1))
	var cfgErr *ErrInvalidConfig
	assert.True(t, errors.As(err, &cfgErr))
}

func TestRun_RaggedPoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.K = 1
	_, err := NewSeeded(cfg, 1).Run([][]float64{{0, 1}, {1}})
	assert.Error(t, err)
}

func TestRun_Deterministic(t *testing.T) {
	points := scatter(40, 3)
	for _, seed := range []uint64{1, 42, 2024} {
		a, err := NewSeeded(DefaultConfig(), seed).Run(points)
		require.NoError(t, err)
		b, err := NewSeeded(DefaultConfig(), seed).Run(points)
		require.NoError(t, err)
		assert.Equal(t, a, b, "seed %d", seed)
	}
}

func TestRun_InertiaNonIncreasing(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.K = 4
			res, err := NewSeeded(cfg, seed).Run(scatter(60, seed+100))
			require.NoError(t, err)
			require.Len(t, res.Inertia, res.Iterations)
			for i := 1; i < len(res.Inertia); i++ {
				assert.LessOrEqual(t, res.Inertia[i], res.Inertia[i-1]+1e-12, "iteration %d", i+1)
			}
		})
	}
}

func TestRun_SingleCluster(t *testing.T) {
	points := scatter(10, 5)
	cfg := DefaultConfig()
	cfg.K = 1
	res, err := NewSeeded(cfg, 9).Run(points)
	require.NoError(t, err)

	assert.Equal(t, StateConverged, res.State)
	assert.LessOrEqual(t, res.Iterations, 2)
	for _, a := range res.Assignments {
		assert.Equal(t, 0, a.Cluster)
	}

	mean := make([]float64, 4)
	for _, p := range points {
		for j, v := range p {
			mean[j] += v / float64(len(points))
		}
	}
	assert.InDeltaSlice(t, mean, res.Centroids[0], 1e-12)
}

func TestRun_KEqualsN(t *testing.T) {
	points := twoBlobs()
	cfg := DefaultConfig()
	cfg.K = len(points)
	res, err := NewSeeded(cfg, 11).Run(points)
	require.NoError(t, err)

	require.Len(t, res.Assignments, len(points))
	require.Len(t, res.Centroids, len(points))
	for _, a := range res.Assignments {
		assert.GreaterOrEqual(t, a.Cluster, 0)
		assert.Less(t, a.Cluster, len(points))
	}
}

func TestRun_SeparatesTwoBlobs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.K = 2
	for seed := uint64(0); seed < 10; seed++ {
		res, err := NewSeeded(cfg, seed).Run(twoBlobs())
		require.NoError(t, err)
		assert.True(t, res.Converged(), "seed %d", seed)

		low, high := res.Assignments[0].Cluster, res.Assignments[3].Cluster
		assert.NotEqual(t, low, high, "seed %d", seed)
		for i, a := range res.Assignments {
			want := low
			if i >= 3 {
				want = high
			}
			assert.Equal(t, want, a.Cluster, "seed %d point %d", seed, i)
		}
	}
}

func TestRun_ConstantFeature(t *testing.T) {
	points := [][]float64{{0, 0, 0, 0}, {0.5, 0, 0, 0}, {1, 0, 0, 0}}
	cfg := DefaultConfig()
	cfg.K = 2
	res, err := NewSeeded(cfg, 3).Run(points)
	require.NoError(t, err)
	for _, c := range res.Centroids {
		assert.Equal(t, []float64{0, 0, 0}, c[1:])
	}
}

func TestRun_IdenticalPointsLeaveEmptyClusters(t *testing.T) {
	points := [][]float64{{0.5, 0.5, 0.5, 0.5}, {0.5, 0.5, 0.5, 0.5}, {0.5, 0.5, 0.5, 0.5}}
	cfg := DefaultConfig()
	cfg.K = 3
	res, err := NewSeeded(cfg, 4).Run(points)
	require.NoError(t, err)

	for _, a := range res.Assignments {
		assert.Equal(t, res.Assignments[0].Cluster, a.Cluster)
		assert.Zero(t, a.Distance)
	}
	stats := Stats(res.Assignments, []float64{0.5, 0.5, 0.5}, cfg.K)
	require.Len(t, stats, 1)
	labeled := LabelClusters(stats, tier.DefaultVocabulary())
	assert.Equal(t, tier.Berprestasi, labeled[0].Label)
}

func TestRun_MaxIterations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.K = 5
	cfg.MaxIterations = 1
	cfg.Epsilon = 1e-300
	res, err := NewSeeded(cfg, 8).Run(scatter(30, 8))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, StateMaxIterations, res.State)
	assert.False(t, res.Converged())
	assert.Len(t, res.Assignments, 30)
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	points := scatter(101, 21)
	seq, err := NewSeeded(DefaultConfig(), 5).Run(points)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Workers = 4
	par, err := NewSeeded(cfg, 5).Run(points)
	require.NoError(t, err)
	assert.Equal(t, seq, par)
}

func TestRun_NearestTieGoesToLowestIndex(t *testing.T) {
	centroids := [][]float64{{0, 0}, {2, 0}}
	out := make([]Assignment, 1)
	assignRange(denseOf([][]float64{{1, 0}}), denseOf(centroids), out, 0, 1)
	assert.Equal(t, 0, out[0].Cluster)
	assert.Equal(t, 1.0, out[0].Distance)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "converged", StateConverged.String())
	assert.Equal(t, "max_iterations", StateMaxIterations.String())
	assert.True(t, StateMaxIterations.Terminal())
	assert.False(t, StateUpdating.Terminal())
}
