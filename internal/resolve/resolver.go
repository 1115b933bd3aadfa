// Package resolve maps normalized company names to canonical registry
// identities, creating a new identity when no confident match exists.
package resolve

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

// Registry is the storage surface the resolver needs. The store implements
// it; CreateIfAbsent must be atomic on name_normalized so that two runs
// racing on a brand-new company cannot produce two rows.
type Registry interface {
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	CreateIfAbsent(ctx context.Context, nameNormalized string) (id int64, created bool, err error)
}

// Resolution is the outcome of resolving one name.
type Resolution struct {
	CompanyID  int64
	Name       string
	Confidence int // 0..100
	Created    bool
}

// Resolver binds normalized names to companies. It is NOT safe for
// concurrent use: creation against the shared registry is a
// compare-and-create race, so the pipeline funnels all resolutions for a
// batch through a single Resolver sequentially. Reads of already-confident
// matches would be safe to parallelize, but a single sequential stage keeps
// reruns trivially deterministic.
type Resolver struct {
	reg       Registry
	threshold float64
	log       *zap.Logger

	// snapshot of the registry, loaded lazily and extended on create.
	companies []domain.Company
	loaded    bool
}

func New(reg Registry, threshold float64, log *zap.Logger) *Resolver {
	return &Resolver{reg: reg, threshold: threshold, log: log}
}

// Resolve maps one normalized name to a company id.
//
//  1. Exact match (case-insensitive) -> confidence 100.
//  2. Best LCS-ratio similarity >= threshold -> bind, confidence
//     round(sim*100). Ties prefer the candidate with more linked postings,
//     then the lexicographically smallest canonical name.
//  3. Otherwise create, confidence = best similarity seen (0 on an empty
//     registry), Created = true.
//
// "No match" is never an error; only registry I/O fails, wrapped in
// ErrRegistryUnavailable.
func (r *Resolver) Resolve(ctx context.Context, name string) (Resolution, error) {
	name = strings.TrimSpace(name)
	if !r.loaded {
		companies, err := r.reg.ListCompanies(ctx)
		if err != nil {
			return Resolution{}, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
		}
		r.companies = companies
		r.loaded = true
	}

	key := strings.ToLower(name)

	for _, c := range r.companies {
		if strings.ToLower(c.NameNormalized) == key {
			return Resolution{CompanyID: c.ID, Name: c.NameNormalized, Confidence: 100}, nil
		}
	}

	best := domain.Company{}
	bestSim := 0.0
	for _, c := range r.companies {
		sim := Similarity(key, strings.ToLower(c.NameNormalized))
		switch {
		case sim > bestSim:
			best, bestSim = c, sim
		case sim == bestSim && bestSim > 0:
			if c.PostingCount > best.PostingCount ||
				(c.PostingCount == best.PostingCount && c.NameNormalized < best.NameNormalized) {
				best = c
			}
		}
	}

	if bestSim >= r.threshold {
		conf := int(math.Round(bestSim * 100))
		r.log.Debug("fuzzy match",
			zap.String("name", name),
			zap.String("matched", best.NameNormalized),
			zap.Int("confidence", conf),
		)
		return Resolution{CompanyID: best.ID, Name: best.NameNormalized, Confidence: conf}, nil
	}

	id, created, err := r.reg.CreateIfAbsent(ctx, name)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	if created {
		r.companies = append(r.companies, domain.Company{ID: id, NameNormalized: name})
		r.log.Debug("new company",
			zap.String("name", name),
			zap.Float64("best_similarity", bestSim),
		)
	}
	return Resolution{
		CompanyID:  id,
		Name:       name,
		Confidence: int(math.Round(bestSim * 100)),
		Created:    created,
	}, nil
}
