package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/records"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load students from a JSON or CSV file into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		recs, err := records.LoadFile(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		s, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.StudentRepo().Import(ctx, recs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d students.\n", len(recs))
		return nil
	},
}
