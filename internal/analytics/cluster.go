package analytics

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/kmeans"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/normalize"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/student"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/tier"
)

// ClusteredRecord is a student placed in a performance tier.
type ClusteredRecord struct {
	Record     student.Record
	Features   student.Features
	Normalized student.Features
	Cluster    int
	Distance   float64
	Label      tier.Label

	// PerformanceScore is the normalized performance on a 0-100 scale.
	PerformanceScore float64
}

// MarshalJSON flattens the source record and appends the derived fields.
// performanceScore is emitted as a two-decimal string.
func (c ClusteredRecord) MarshalJSON() ([]byte, error) {
	m := c.Record.Fields()
	m["features"] = c.Features
	m["normalized"] = c.Normalized
	m["cluster"] = c.Cluster
	m["distance"] = c.Distance
	m["clusterLabel"] = c.Label
	m["performanceScore"] = fmt.Sprintf("%.2f", c.PerformanceScore)
	return json.Marshal(m)
}

// ClusterResult is the K-Means pipeline output.
type ClusterResult struct {
	RunID        string               `json:"runId"`
	Data         []ClusteredRecord    `json:"data"`
	Centroids    []student.Features   `json:"centroids"`
	Iterations   int                  `json:"iterations"`
	State        kmeans.State         `json:"state"`
	Converged    bool                 `json:"converged"`
	ClusterStats []kmeans.ClusterStat `json:"clusterStats"`
	Summary      tier.Summary         `json:"summary"`
}

// Cluster min-max scales the records' features, groups them with
// K-Means and labels each group by its average performance. An empty
// batch returns an empty result; the configuration is still checked.
func (s *Service) Cluster(records []student.Record, opts ClusterOptions) (*ClusterResult, error) {
	out := &ClusterResult{
		RunID:        newRunID(),
		Data:         []ClusteredRecord{},
		Centroids:    []student.Features{},
		ClusterStats: []kmeans.ClusterStat{},
	}
	if len(records) == 0 {
		if err := opts.Config.Validate(opts.K); err != nil {
			return nil, err
		}
		return out, nil
	}

	features := student.ExtractAll(records)
	points := normalize.MinMax(student.Rows(features))

	res, err := opts.engine().Run(points)
	if err != nil {
		return nil, fmt.Errorf("k-means: %w", err)
	}
	if !res.Converged() {
		s.warnf("k-means stopped after %d iterations without converging", res.Iterations)
	}

	performance := make([]float64, len(points))
	for i, p := range points {
		performance[i] = kmeans.Performance(p)
	}
	labeled := kmeans.LabelClusters(kmeans.Stats(res.Assignments, performance, opts.K), s.vocab)
	labelOf := kmeans.LabelIndex(labeled)

	labels := make([]tier.Label, len(records))
	out.Data = make([]ClusteredRecord, len(records))
	for i, rec := range records {
		a := res.Assignments[i]
		labels[i] = labelOf[a.Cluster]
		out.Data[i] = ClusteredRecord{
			Record:           rec,
			Features:         features[i],
			Normalized:       student.FeaturesFromSlice(points[i]),
			Cluster:          a.Cluster,
			Distance:         a.Distance,
			Label:            labels[i],
			PerformanceScore: scalar.Round(performance[i]*100, 2),
		}
	}

	out.Centroids = make([]student.Features, len(res.Centroids))
	for c, centroid := range res.Centroids {
		out.Centroids[c] = student.FeaturesFromSlice(centroid)
	}
	out.Iterations = res.Iterations
	out.State = res.State
	out.Converged = res.Converged()
	out.ClusterStats = labeled
	out.Summary = tier.Summarize(labels)
	return out, nil
}
