// Package config resolves runtime settings for the CLI and HTTP server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/gradestats"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/kmeans"
)

// Database drivers accepted by the store.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds every tunable of the analytics tools.
type Config struct {
	// Clustering parameters. Seed is nil for a clock-seeded run.
	KMeans kmeans.Config
	Seed   *uint64

	// PassingGrade is the threshold used by grade statistics. Default: 70.
	PassingGrade float64

	HTTPAddr    string   // Default: ":8080"
	CORSOrigins []string // Default: local dashboard origins

	DBDriver string // "sqlite" or "postgres"
	DBDSN    string // Empty selects the default path for sqlite
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		KMeans:       kmeans.DefaultConfig(),
		PassingGrade: gradestats.DefaultPassingGrade,
		HTTPAddr:     ":8080",
		CORSOrigins:  []string{"http://localhost:3000", "http://localhost:5173"},
		DBDriver:     DriverSQLite,
	}
}

// ConfigFromEnv builds a Config from SISWA_* environment variables,
// falling back to defaults for unset values. A malformed number is an error.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	var err error

	if v := os.Getenv("SISWA_K"); v != "" {
		if cfg.KMeans.K, err = strconv.Atoi(v); err != nil {
			return cfg, envError("SISWA_K", err)
		}
	}
	if v := os.Getenv("SISWA_MAX_ITERATIONS"); v != "" {
		if cfg.KMeans.MaxIterations, err = strconv.Atoi(v); err != nil {
			return cfg, envError("SISWA_MAX_ITERATIONS", err)
		}
	}
	if v := os.Getenv("SISWA_EPSILON"); v != "" {
		if cfg.KMeans.Epsilon, err = strconv.ParseFloat(v, 64); err != nil {
			return cfg, envError("SISWA_EPSILON", err)
		}
	}
	if v := os.Getenv("SISWA_WORKERS"); v != "" {
		if cfg.KMeans.Workers, err = strconv.Atoi(v); err != nil {
			return cfg, envError("SISWA_WORKERS", err)
		}
	}
	if v := os.Getenv("SISWA_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, envError("SISWA_SEED", err)
		}
		cfg.Seed = &seed
	}
	if v := os.Getenv("SISWA_PASSING_GRADE"); v != "" {
		if cfg.PassingGrade, err = strconv.ParseFloat(v, 64); err != nil {
			return cfg, envError("SISWA_PASSING_GRADE", err)
		}
	}

	if a := os.Getenv("SISWA_HTTP_ADDR"); a != "" {
		cfg.HTTPAddr = a
	}
	if o := os.Getenv("SISWA_CORS_ORIGINS"); o != "" {
		cfg.CORSOrigins = splitCSV(o)
	}
	if d := os.Getenv("SISWA_DB_DRIVER"); d != "" {
		cfg.DBDriver = d
	}
	if d := os.Getenv("SISWA_DB"); d != "" {
		cfg.DBDSN = d
	}

	return cfg, nil
}

// Validate checks the settings that are not covered by kmeans.Config,
// which is validated against the batch size at run time.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	if c.PassingGrade < 0 || c.PassingGrade > 100 {
		return fmt.Errorf("passing grade %v outside 0-100", c.PassingGrade)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("http address is empty")
	}
	return nil
}

func envError(name string, err error) error {
	return fmt.Errorf("parse %s: %w", name, err)
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
