package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rangapin/hr-hiring-signals/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compose the weekly HTML report from stored signals",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return composeReport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().String("as-of", "", "reference date (YYYY-MM-DD, default today UTC)")
	reportCmd.Flags().StringP("out", "o", "", "write the HTML body to this file")
}

func composeReport(cmd *cobra.Command) error {
	lg := newLogger()
	defer lg.Sync()

	cfg, err := loadConfig(lg)
	if err != nil {
		return err
	}
	asOf, err := asOfDate(cmd)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	composer := report.NewComposer(db, cfg.Scoring.Keywords, lg)
	rep, err := composer.Compose(context.Background(), asOf)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = filepath.Join(cfg.App.DataDir, "weekly_report.html")
	}
	if err := os.WriteFile(out, []byte(rep.HTMLBody), 0o644); err != nil {
		return err
	}

	lg.Info("report written",
		zap.String("file", out),
		zap.String("subject", rep.Subject),
		zap.Int("hot", rep.HotCount),
		zap.Int("warm", rep.WarmCount),
	)
	cmd.Println(rep.Subject)
	return nil
}
