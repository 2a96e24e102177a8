package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/tier"
)

func TestPerformance_IgnoresTasks(t *testing.T) {
	assert.InDelta(t, 0.5, Performance([]float64{0.2, 0.5, 0.8, 1}), 1e-12)
	assert.InDelta(t, 0.5, Performance([]float64{0.2, 0.5, 0.8, 0}), 1e-12)
}

func TestStats_SkipsEmptyClusters(t *testing.T) {
	assignments := []Assignment{{Cluster: 0}, {Cluster: 2}, {Cluster: 0}, {Cluster: 2}, {Cluster: 2}}
	performance := []float64{0.9, 0.3, 0.7, 0.2, 0.1}

	stats := Stats(assignments, performance, 3)
	require.Len(t, stats, 2)
	assert.Equal(t, 0, stats[0].Cluster)
	assert.Equal(t, 2, stats[0].Count)
	assert.InDelta(t, 0.8, stats[0].AvgPerformance, 1e-12)
	assert.Equal(t, 2, stats[1].Cluster)
	assert.Equal(t, 3, stats[1].Count)
	assert.InDelta(t, 0.2, stats[1].AvgPerformance, 1e-12)
}

func TestLabelClusters(t *testing.T) {
	stats := []ClusterStat{
		{Cluster: 0, Count: 4, AvgPerformance: 0.4},
		{Cluster: 1, Count: 2, AvgPerformance: 0.9},
		{Cluster: 2, Count: 3, AvgPerformance: 0.1},
	}
	labeled := LabelClusters(stats, tier.DefaultVocabulary())

	require.Len(t, labeled, 3)
	assert.Equal(t, []int{1, 0, 2}, []int{labeled[0].Cluster, labeled[1].Cluster, labeled[2].Cluster})
	assert.Equal(t, tier.Berprestasi, labeled[0].Label)
	assert.Equal(t, tier.Cukup, labeled[1].Label)
	assert.Equal(t, tier.PerluPerhatian, labeled[2].Label)

	// Input is left untouched.
	assert.Equal(t, 0, stats[0].Cluster)
	assert.Empty(t, stats[0].Label)

	idx := LabelIndex(labeled)
	assert.Equal(t, tier.Berprestasi, idx[1])
	assert.Equal(t, tier.PerluPerhatian, idx[2])
}

func TestLabelClusters_MoreClustersThanLabels(t *testing.T) {
	stats := []ClusterStat{
		{Cluster: 0, AvgPerformance: 0.1},
		{Cluster: 1, AvgPerformance: 0.5},
		{Cluster: 2, AvgPerformance: 0.9},
		{Cluster: 3, AvgPerformance: 0.3},
		{Cluster: 4, AvgPerformance: 0.7},
	}
	labeled := LabelClusters(stats, tier.DefaultVocabulary())

	var labels []tier.Label
	for _, s := range labeled {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []tier.Label{
		tier.Berprestasi, tier.Cukup, tier.PerluPerhatian, tier.PerluPerhatian, tier.PerluPerhatian,
	}, labels)
}

func TestLabelClusters_FewerClustersThanLabels(t *testing.T) {
	labeled := LabelClusters([]ClusterStat{{Cluster: 2, AvgPerformance: 0.3}}, tier.DefaultVocabulary())
	require.Len(t, labeled, 1)
	assert.Equal(t, tier.Berprestasi, labeled[0].Label)
}

func TestLabelClusters_EqualPerformanceKeepsOrder(t *testing.T) {
	labeled := LabelClusters([]ClusterStat{
		{Cluster: 0, AvgPerformance: 0.5},
		{Cluster: 1, AvgPerformance: 0.5},
	}, tier.DefaultVocabulary())
	assert.Equal(t, 0, labeled[0].Cluster)
	assert.Equal(t, 1, labeled[1].Cluster)
}

func TestLabelClusters_NoVocabulary(t *testing.T) {
	labeled := LabelClusters([]ClusterStat{{Cluster: 0, AvgPerformance: 0.2}, {Cluster: 1, AvgPerformance: 0.6}}, nil)
	assert.Equal(t, tier.Label("Cluster 2"), labeled[0].Label)
	assert.Equal(t, tier.Label("Cluster 1"), labeled[1].Label)
}
