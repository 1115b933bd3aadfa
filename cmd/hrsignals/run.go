package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rangapin/hr-hiring-signals/internal/domain"
	"github.com/rangapin/hr-hiring-signals/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run [batch files...]",
	Short: "Run the daily pipeline over NDJSON posting batches",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("as-of", "", "reference date (YYYY-MM-DD, default today UTC)")
}

func runPipeline(cmd *cobra.Command, batchFiles []string) error {
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

	lg.Info("starting pipeline run",
		zap.String("version", version),
		zap.String("as_of", asOf.Format(time.DateOnly)),
		zap.Strings("batches", batchFiles),
	)

	res, err := pipeline.Run(context.Background(), pipeline.Deps{DB: db, Cfg: cfg, Log: lg}, asOf, batchFiles)
	if err != nil {
		return err
	}

	printLeads(cmd, "HOT", res.Leads.Hot)
	printLeads(cmd, "WARM", res.Leads.Warm)
	cmd.Printf("%d postings ingested (%d new, %d rejected), %d companies scored\n",
		res.Ingested, res.Inserted, res.Rejected, res.Scored)
	return nil
}

func printLeads(cmd *cobra.Command, label string, leads []domain.ScoreResult) {
	if len(leads) == 0 {
		return
	}
	cmd.Printf("%s leads:\n", label)
	for i, s := range leads {
		cmd.Printf("  %2d. %-40s score %3d (7d: %d, 30d: %d)\n",
			i+1, s.CompanyName, s.FinalScore, s.PostingCount7d, s.PostingCount30d)
	}
}

// asOfDate resolves the --as-of flag. The CLI boundary is the only place
// that may consult the wall clock; everything below takes the explicit date.
func asOfDate(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("as-of")
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of %q: %w", raw, err)
	}
	return t, nil
}
