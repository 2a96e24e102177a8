package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/gradestats"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/report"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/student"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Show descriptive statistics of one student metric",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		key, _ := cmd.Flags().GetString("field")
		feature, err := student.ParseFeature(key)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("passing") {
			cfg.PassingGrade, _ = cmd.Flags().GetFloat64("passing")
		}

		recs, err := loadRecords(cmd, args, cfg)
		if err != nil {
			return err
		}

		values := make([]float64, len(recs))
		for i, f := range student.ExtractAll(recs) {
			values[i] = f[feature]
		}
		rep := gradestats.Describe(values, cfg.PassingGrade)

		headers := []string{"statistic", "value"}
		rows := [][]string{
			{"count", fmt.Sprint(rep.Count)},
			{"average", fmt.Sprint(rep.Average)},
			{"median", fmt.Sprint(rep.Median)},
			{"mode", fmt.Sprint(rep.Mode)},
			{"stdDev", fmt.Sprintf("%.4f", rep.StdDev)},
			{"min", fmt.Sprint(rep.Min)},
			{"max", fmt.Sprint(rep.Max)},
			{"passingRate", fmt.Sprint(rep.PassingRate)},
		}
		return emit(cmd, rep, func() string { return report.Stats(rep) }, headers, rows)
	},
}

func init() {
	addOutputFlags(statsCmd)
	statsCmd.Flags().String("field", student.AverageGrade.Key(), "Metric to describe: averageGrade, attendance, attitude or tasks")
	statsCmd.Flags().Float64("passing", 0, "Passing grade (default 70, SISWA_PASSING_GRADE)")
}
