package kmeans

import (
	"fmt"
	"sort"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/student"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/tier"
)

// ClusterStat aggregates the members of one non-empty cluster.
type ClusterStat struct {
	Cluster        int        `json:"cluster"`
	Count          int        `json:"count"`
	AvgPerformance float64    `json:"avgPerformance"`
	Label          tier.Label `json:"label,omitempty"`
}

// Performance is the mean of a point's normalized average grade,
// attendance and attitude. Task count does not contribute.
func Performance(point []float64) float64 {
	return (point[student.AverageGrade] + point[student.Attendance] + point[student.Attitude]) / 3
}

// Stats aggregates the non-empty clusters of a run in cluster order.
// performance[i] is the performance score of point i.
func Stats(assignments []Assignment, performance []float64, k int) []ClusterStat {
	counts := make([]int, k)
	sums := make([]float64, k)
	for i, a := range assignments {
		counts[a.Cluster]++
		sums[a.Cluster] += performance[i]
	}

	var stats []ClusterStat
	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			continue
		}
		stats = append(stats, ClusterStat{
			Cluster:        c,
			Count:          counts[c],
			AvgPerformance: sums[c] / float64(counts[c]),
		})
	}
	return stats
}

// LabelClusters orders stats from best to worst performance and labels
// them from vocab. When there are more clusters than labels, the tail
// reuses the last label; with no vocabulary clusters are named by index.
// Equal performance keeps the input order. stats is not modified.
func LabelClusters(stats []ClusterStat, vocab []tier.Label) []ClusterStat {
	out := make([]ClusterStat, len(stats))
	copy(out, stats)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].AvgPerformance > out[b].AvgPerformance
	})
	for i := range out {
		if len(vocab) == 0 {
			out[i].Label = tier.Label(fmt.Sprintf("Cluster %d", out[i].Cluster+1))
			continue
		}
		out[i].Label = tier.At(vocab, i)
	}
	return out
}

// LabelIndex maps cluster index to label for labeled stats.
func LabelIndex(labeled []ClusterStat) map[int]tier.Label {
	m := make(map[int]tier.Label, len(labeled))
	for _, s := range labeled {
		m[s.Cluster] = s.Label
	}
	return m
}
