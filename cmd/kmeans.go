package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/analytics"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/config"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/report"
)

var kmeansCmd = &cobra.Command{
	Use:   "kmeans [file]",
	Short: "Group students into performance tiers with K-Means",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		recs, err := loadRecords(cmd, args, cfg)
		if err != nil {
			return err
		}

		svc, err := newService()
		if err != nil {
			return err
		}
		res, err := svc.Cluster(recs, clusterOptions(cmd, cfg))
		if err != nil {
			return err
		}

		headers, rows := report.ClusterRows(res)
		return emit(cmd, res, func() string { return report.Cluster(res) }, headers, rows)
	},
}

func init() {
	addOutputFlags(kmeansCmd)
	kmeansCmd.Flags().Int("k", 0, "Number of clusters (default 3, SISWA_K)")
	kmeansCmd.Flags().Int("max-iter", 0, "Iteration limit (default 100, SISWA_MAX_ITERATIONS)")
	kmeansCmd.Flags().Float64("epsilon", 0, "Convergence threshold (default 0.001, SISWA_EPSILON)")
	kmeansCmd.Flags().Uint64("seed", 0, "Random seed for reproducible runs (SISWA_SEED)")
	kmeansCmd.Flags().Int("workers", 0, "Goroutines for the assign step (default 1, SISWA_WORKERS)")
}

// clusterOptions starts from the resolved config and applies any flag the
// user set explicitly.
func clusterOptions(cmd *cobra.Command, cfg config.Config) analytics.ClusterOptions {
	opts := analytics.DefaultClusterOptions()
	opts.Config = cfg.KMeans
	opts.Seed = cfg.Seed

	flags := cmd.Flags()
	if flags.Changed("k") {
		opts.K, _ = flags.GetInt("k")
	}
	if flags.Changed("max-iter") {
		opts.MaxIterations, _ = flags.GetInt("max-iter")
	}
	if flags.Changed("epsilon") {
		opts.Epsilon, _ = flags.GetFloat64("epsilon")
	}
	if flags.Changed("workers") {
		opts.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("seed") {
		seed, _ := flags.GetUint64("seed")
		opts.Seed = &seed
	}
	return opts
}
