// Package kmeans groups feature vectors into k clusters with Lloyd's
// algorithm and ranks the resulting clusters into performance tiers.
package kmeans

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/normalize"
)

// Assignment places one point in a cluster.
type Assignment struct {
	Cluster  int     `json:"cluster"`
	Distance float64 `json:"distance"`
}

// Result is the terminal output of a run.
type Result struct {
	// Assignments holds the last assign step, in input order.
	Assignments []Assignment

	// Centroids are the centroids after the last update step.
	Centroids [][]float64

	// Iterations counts completed assign/update rounds.
	Iterations int

	State State

	// Inertia is the total squared distance of points to their
	// centroid, recorded at every assign step.
	Inertia []float64
}

// Converged reports whether the run stopped on the epsilon criterion.
func (r *Result) Converged() bool {
	return r.State == StateConverged
}

// Engine runs k-means over a batch of points. An Engine draws from its
// random source on every run, so reproducing a run needs a fresh Engine
// with the same seed.
type Engine struct {
	cfg Config
	rng *rand.Rand
}

// New creates an Engine drawing centroids from rng. A nil rng is seeded
// from the clock.
func New(cfg Config, rng *rand.Rand) *Engine {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>1))
	}
	return &Engine{cfg: cfg, rng: rng}
}

// NewSeeded creates an Engine with a deterministic random source.
func NewSeeded(cfg Config, seed uint64) *Engine {
	return New(cfg, rand.New(rand.NewPCG(seed, seed)))
}

// Run clusters points. All points must have the same width.
func (e *Engine) Run(points [][]float64) (*Result, error) {
	if err := e.cfg.Validate(len(points)); err != nil {
		return nil, err
	}
	width := len(points[0])
	if width == 0 {
		return nil, fmt.Errorf("points have no features")
	}
	data := mat.NewDense(len(points), width, nil)
	for i, p := range points {
		if len(p) != width {
			return nil, fmt.Errorf("point %d has %d features, want %d", i, len(p), width)
		}
		data.SetRow(i, p)
	}
	lo, hi := normalize.Bounds(points)

	var (
		res       Result
		centroids *mat.Dense
	)
	state := StateInit
	for !state.Terminal() {
		switch state {
		case StateInit:
			centroids = mat.NewDense(e.cfg.K, width, nil)
			for c := 0; c < e.cfg.K; c++ {
				e.randomize(centroids.RawRowView(c), lo, hi)
			}
			state = StateAssigning

		case StateAssigning:
			res.Assignments = e.assign(data, centroids)
			res.Inertia = append(res.Inertia, inertia(res.Assignments))
			state = StateUpdating

		case StateUpdating:
			next := e.update(data, res.Assignments, lo, hi)
			moved := !within(centroids, next, e.cfg.Epsilon)
			centroids = next
			res.Iterations++
			switch {
			case !moved:
				state = StateConverged
			case res.Iterations >= e.cfg.MaxIterations:
				state = StateMaxIterations
			default:
				state = StateAssigning
			}
		}
	}

	res.State = state
	res.Centroids = make([][]float64, e.cfg.K)
	for c := range res.Centroids {
		res.Centroids[c] = mat.Row(nil, c, centroids)
	}
	return &res, nil
}

// randomize draws every feature of row uniformly from [lo, hi].
func (e *Engine) randomize(row, lo, hi []float64) {
	for j := range row {
		row[j] = lo[j] + e.rng.Float64()*(hi[j]-lo[j])
	}
}

func (e *Engine) assign(data, centroids *mat.Dense) []Assignment {
	n, _ := data.Dims()
	out := make([]Assignment, n)

	workers := e.cfg.Workers
	if workers <= 1 || n < 2*workers {
		assignRange(data, centroids, out, 0, n)
		return out
	}

	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			assignRange(data, centroids, out, start, end)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func assignRange(data, centroids *mat.Dense, out []Assignment, start, end int) {
	k, _ := centroids.Dims()
	for i := start; i < end; i++ {
		point := data.RawRowView(i)
		best, bestDist := 0, math.Inf(1)
		for c := 0; c < k; c++ {
			// Strict comparison keeps the lowest index on ties.
			if d := floats.Distance(point, centroids.RawRowView(c), 2); d < bestDist {
				best, bestDist = c, d
			}
		}
		out[i] = Assignment{Cluster: best, Distance: bestDist}
	}
}

// update moves each centroid to the mean of its members. A cluster that
// lost all members is drawn again at random.
func (e *Engine) update(data *mat.Dense, assignments []Assignment, lo, hi []float64) *mat.Dense {
	_, width := data.Dims()
	next := mat.NewDense(e.cfg.K, width, nil)
	counts := make([]int, e.cfg.K)
	for i, a := range assignments {
		floats.Add(next.RawRowView(a.Cluster), data.RawRowView(i))
		counts[a.Cluster]++
	}
	for c := 0; c < e.cfg.K; c++ {
		row := next.RawRowView(c)
		if counts[c] == 0 {
			e.randomize(row, lo, hi)
			continue
		}
		floats.Scale(1/float64(counts[c]), row)
	}
	return next
}

// within reports whether every feature of every centroid moved by less
// than eps.
func within(old, next *mat.Dense, eps float64) bool {
	k, _ := old.Dims()
	for c := 0; c < k; c++ {
		a, b := old.RawRowView(c), next.RawRowView(c)
		for j := range a {
			if math.Abs(a[j]-b[j]) >= eps {
				return false
			}
		}
	}
	return true
}

func inertia(assignments []Assignment) float64 {
	var sum float64
	for _, a := range assignments {
		sum += a.Distance * a.Distance
	}
	return sum
}
