package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/report"
)

var sawCmd = &cobra.Command{
	Use:   "saw [file]",
	Short: "Rank students by SAW priority score",
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
		res, err := svc.Priority(recs)
		if err != nil {
			return err
		}

		headers, rows := report.PriorityRows(res)
		return emit(cmd, res, func() string { return report.Priority(res) }, headers, rows)
	},
}

func init() {
	addOutputFlags(sawCmd)
}
