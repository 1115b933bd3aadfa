package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rangapin/hr-hiring-signals/internal/ingest"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <profiles.yml>",
	Short: "Apply company enrichment patches to the registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return enrich(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}

func enrich(cmd *cobra.Command, path string) error {
	lg := newLogger()
	defer lg.Sync()

	cfg, err := loadConfig(lg)
	if err != nil {
		return err
	}

	profiles, err := ingest.LoadProfiles(path)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	now := time.Now().UTC()
	for _, p := range profiles {
		if err := db.ApplyProfilePatch(ctx, p, now); err != nil {
			return err
		}
		lg.Debug("profile patched", zap.Int64("company_id", p.CompanyID))
	}

	lg.Info("enrichment applied", zap.Int("profiles", len(profiles)))
	cmd.Printf("applied %d profile patches\n", len(profiles))
	return nil
}
