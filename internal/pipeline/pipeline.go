// Package pipeline orchestrates one batch run: ingest, normalize, resolve,
// aggregate, score, filter. Every temporal computation inside the run uses
// the explicit as-of date, never the wall clock, so a run can be replayed
// or backfilled exactly.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rangapin/hr-hiring-signals/internal/aggregate"
	"github.com/rangapin/hr-hiring-signals/internal/config"
	"github.com/rangapin/hr-hiring-signals/internal/domain"
	"github.com/rangapin/hr-hiring-signals/internal/ingest"
	"github.com/rangapin/hr-hiring-signals/internal/lead"
	"github.com/rangapin/hr-hiring-signals/internal/normalize"
	"github.com/rangapin/hr-hiring-signals/internal/resolve"
	"github.com/rangapin/hr-hiring-signals/internal/score"
	"github.com/rangapin/hr-hiring-signals/internal/store"
)

// ErrRunInProgress is returned when another run holds the data-dir lock.
var ErrRunInProgress = errors.New("another pipeline run is in progress")

// Deps bundles what a run needs.
type Deps struct {
	DB  *store.DB
	Cfg config.Config
	Log *zap.Logger
}

// Result summarizes one run.
type Result struct {
	Ingested int // postings read from batch files
	Inserted int // new posting rows
	Updated  int // re-scraped rows overwritten by URL
	Rejected int // postings dropped by validation or date parsing
	Resolved int // company keys processed
	Created  int // new companies minted
	Scored   int // signals upserted
	Leads    lead.Leads
}

// Run executes the full pipeline for one as-of date against the given
// NDJSON batch files. A file lock in the data dir keeps concurrent runs
// out; re-running with the same inputs and date replaces the same signal
// rows, so the operation is idempotent.
func Run(ctx context.Context, deps Deps, asOf time.Time, batchFiles []string) (*Result, error) {
	asOf = normalize.DateOnly(asOf)

	lock := flock.New(filepath.Join(deps.Cfg.App.DataDir, "run.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, ErrRunInProgress
	}
	defer lock.Unlock()

	res := &Result{}

	if err := ingestAndNormalize(ctx, deps, asOf, batchFiles, res); err != nil {
		return nil, err
	}
	if err := resolveCompanies(ctx, deps, res); err != nil {
		return nil, err
	}
	if err := aggregateAndScore(ctx, deps, asOf, res); err != nil {
		return nil, err
	}
	if err := filterLeads(ctx, deps, asOf, res); err != nil {
		return nil, err
	}

	deps.Log.Info("pipeline run complete",
		zap.String("as_of", asOf.Format(time.DateOnly)),
		zap.Int("ingested", res.Ingested),
		zap.Int("inserted", res.Inserted),
		zap.Int("rejected", res.Rejected),
		zap.Int("companies_created", res.Created),
		zap.Int("scored", res.Scored),
		zap.Int("hot", len(res.Leads.Hot)),
		zap.Int("warm", len(res.Leads.Warm)),
	)
	return res, nil
}

// ingestAndNormalize reads every batch file and normalizes postings on a
// bounded worker pool. Normalization is pure per posting; the store upserts
// happen afterwards in input order so reruns insert deterministically. A
// posting that fails validation or date parsing is logged and skipped,
// never aborts the batch.
func ingestAndNormalize(ctx context.Context, deps Deps, asOf time.Time, batchFiles []string, res *Result) error {
	var raws []domain.RawPosting
	for _, path := range batchFiles {
		src := ingest.NewFileSource(path, deps.Log)
		batch, err := src.Postings(ctx)
		if err != nil {
			return err
		}
		raws = append(raws, batch...)
	}
	res.Ingested = len(raws)

	norm := normalize.New(deps.Cfg.Policy)
	normalized := make([]*domain.NormalizedPosting, len(raws))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deps.Cfg.Pipeline.NormalizeWorkers)

	for i, raw := range raws {
		i, raw := i, raw
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := norm.Normalize(raw, asOf)
			if err != nil {
				if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrDateParse) {
					deps.Log.Warn("posting rejected", zap.String("url", raw.JobURL), zap.Error(err))
					mu.Lock()
					res.Rejected++
					mu.Unlock()
					return nil
				}
				return err
			}
			normalized[i] = &p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, p := range normalized {
		if p == nil {
			continue
		}
		inserted, err := deps.DB.UpsertPosting(ctx, *p)
		if err != nil {
			return err
		}
		if inserted {
			res.Inserted++
		} else {
			res.Updated++
		}
	}
	return nil
}

// resolveCompanies funnels all unlinked company keys through one sequential
// resolver. Creation against the registry is a compare-and-create race, so
// this stage is deliberately single-writer; the insert-if-absent primitive
// at the store is the second line of defense.
func resolveCompanies(ctx context.Context, deps Deps, res *Result) error {
	keys, err := deps.DB.UnlinkedCompanyKeys(ctx)
	if err != nil {
		return err
	}

	resolver := resolve.New(deps.DB, deps.Cfg.Resolver.AcceptThreshold, deps.Log)
	for _, key := range keys {
		r, err := resolver.Resolve(ctx, key)
		if err != nil {
			return err
		}
		if _, err := deps.DB.LinkPostings(ctx, key, r.CompanyID); err != nil {
			return err
		}
		res.Resolved++
		if r.Created {
			res.Created++
		}
	}
	return nil
}

// aggregateAndScore runs per company on a bounded pool. Resolution for the
// whole batch finished before this stage, so every worker reads a
// consistent snapshot of linked postings.
func aggregateAndScore(ctx context.Context, deps Deps, asOf time.Time, res *Result) error {
	candidates, err := deps.DB.ScoringCandidates(ctx, asOf, 30, deps.Cfg.Scoring.MinPostings30d)
	if err != nil {
		return err
	}

	agg := aggregate.New(deps.DB, deps.Cfg.Scoring.Keywords, deps.Cfg.Scoring.TargetTitles)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deps.Cfg.Pipeline.ScoreWorkers)

	for _, companyID := range candidates {
		companyID := companyID
		g.Go(func() error {
			stats, err := agg.Aggregate(gctx, companyID, asOf)
			if err != nil {
				return err
			}
			company, err := deps.DB.GetCompany(gctx, companyID)
			if err != nil {
				return err
			}

			result := score.Compose(stats, company)
			if err := deps.DB.UpsertSignal(gctx, result, stats.Count90d); err != nil {
				return err
			}
			if err := deps.DB.SetICPMatch(gctx, companyID, score.InICPBand(company.HeadcountPoland)); err != nil {
				return err
			}

			mu.Lock()
			res.Scored++
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// filterLeads loads the exclusion list and produces the ranked,
// temperature-partitioned lead list for the as-of date.
func filterLeads(ctx context.Context, deps Deps, asOf time.Time, res *Result) error {
	exclusions, err := lead.LoadExclusions(deps.Cfg.Exclusions.File)
	if err != nil {
		return err
	}

	signals, err := deps.DB.SignalsSince(ctx, asOf, asOf)
	if err != nil {
		return err
	}

	companies, err := deps.DB.ListCompanies(ctx)
	if err != nil {
		return err
	}
	byID := make(map[int64]domain.Company, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
	}

	res.Leads = lead.NewFilter(exclusions, deps.Log).Apply(signals, byID)
	return nil
}
