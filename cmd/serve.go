package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			cfg.HTTPAddr = a
		}

		ctx := cmd.Context()
		s, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		svc, err := newService()
		if err != nil {
			return err
		}

		opts := server.DefaultOptions()
		opts.Addr = cfg.HTTPAddr
		opts.CORSOrigins = cfg.CORSOrigins
		opts.Cluster = clusterOptions(cmd, cfg)
		opts.PassingGrade = cfg.PassingGrade

		return server.New(svc, s.StudentRepo(), opts).ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080, SISWA_HTTP_ADDR)")
}
