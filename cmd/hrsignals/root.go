package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rangapin/hr-hiring-signals/internal/config"
	"github.com/rangapin/hr-hiring-signals/internal/logger"
	"github.com/rangapin/hr-hiring-signals/internal/store"
)

const app = "hrsignals"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hrsignals scores Polish HR job-market hiring signals into ranked sales leads",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("config", "HRSIGNALS_CONFIG"); err != nil {
		log.Fatalf("binding HRSIGNALS_CONFIG environment variable: %v", err)
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config/hrsignals.yml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("data-dir", "", "data directory (overrides the config value)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))
}

func newLogger() *zap.Logger {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return lg
}

// loadConfig reads and validates the config file, applying flag overrides.
// Validation warnings are logged; errors abort.
func loadConfig(lg *zap.Logger) (config.Config, error) {
	path := cfgFile
	if path == "" {
		path = viper.GetString("config")
	}
	if path == "" {
		// First run seeds the user config in the data dir from the
		// shipped default.
		dataDir := viper.GetString("data-dir")
		if dataDir == "" {
			dataDir = "data"
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return config.Config{}, fmt.Errorf("create data dir: %w", err)
		}
		seeded, err := config.EnsureUserConfig(dataDir, filepath.Join("config", config.UserConfigName))
		if err != nil {
			return config.Config{}, fmt.Errorf("seed config: %w", err)
		}
		path = seeded
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	cfg, validation := config.NormalizeAndValidate(cfg)
	for _, w := range validation.Warnings {
		lg.Warn("config warning", zap.String("detail", w))
	}
	if !validation.OK() {
		for _, e := range validation.Errors {
			lg.Error("config error", zap.String("detail", e))
		}
		return cfg, fmt.Errorf("config %s failed validation", path)
	}

	if dir := viper.GetString("data-dir"); dir != "" {
		cfg.App.DataDir = dir
	}
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = "data"
	}
	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		return cfg, fmt.Errorf("create data dir: %w", err)
	}
	return cfg, nil
}

func openStore(cfg config.Config) (*store.DB, error) {
	db, err := store.Open(filepath.Join(cfg.App.DataDir, "hrsignals.db"))
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(db.Pool); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
