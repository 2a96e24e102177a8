package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/analytics"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/config"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/records"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/store"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/student"
)

var rootCmd = &cobra.Command{
	Use:   "siswa",
	Short: "Student performance analytics",
	Long: "siswa ranks students by Simple Additive Weighting and groups them into\n" +
		"performance tiers with K-Means, from a JSON/CSV file or the student database.",
	SilenceUsage: true,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database DSN or SQLite file path (overrides SISWA_DB env var)")
	rootCmd.PersistentFlags().String("driver", "", "Database driver: sqlite or postgres (overrides SISWA_DB_DRIVER)")

	rootCmd.AddCommand(sawCmd)
	rootCmd.AddCommand(kmeansCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads SISWA_* settings and applies the persistent flags on
// top: flag > env > default.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	if d, _ := cmd.Flags().GetString("driver"); d != "" {
		cfg.DBDriver = d
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBDSN = p
	}
	return cfg, cfg.Validate()
}

func openStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	if cfg.DBDriver == config.DriverSQLite && cfg.DBDSN != "" {
		if err := store.EnsureDir(cfg.DBDSN); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	s, err := store.Open(ctx, store.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

// loadRecords reads the batch from the file argument, or from the
// database filtered by --class when no file is given.
func loadRecords(cmd *cobra.Command, args []string, cfg config.Config) ([]student.Record, error) {
	if len(args) == 1 {
		return records.LoadFile(args[0])
	}

	ctx := cmd.Context()
	s, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	class, _ := cmd.Flags().GetString("class")
	recs, err := s.StudentRepo().List(ctx, store.Filter{Class: class})
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return recs, nil
}

func newService() (*analytics.Service, error) {
	return analytics.NewService(analytics.WithLogger(log.New(os.Stderr, "", 0)))
}

// addOutputFlags registers the flags shared by the analysis commands.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	cmd.Flags().String("out", "", "Also write result rows to this CSV file")
	cmd.Flags().String("class", "", "Only analyse students whose class contains this text (database input)")
}

// emit prints v as JSON with --json, or the rendered view otherwise, and
// writes the CSV rows when --out is set.
func emit(cmd *cobra.Command, v any, view func() string, headers []string, rows [][]string) error {
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := writeCSVFile(out, headers, rows); err != nil {
			return err
		}
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := lipgloss.Fprintln(cmd.OutOrStdout(), view())
	return err
}

func writeCSVFile(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := records.WriteCSV(f, headers, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
