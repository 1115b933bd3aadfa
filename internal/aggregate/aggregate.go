// Package aggregate computes per-company windowed posting stats as of an
// explicit reference date.
package aggregate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rangapin/hr-hiring-signals/internal/config"
	"github.com/rangapin/hr-hiring-signals/internal/domain"
	"github.com/rangapin/hr-hiring-signals/internal/normalize"
	"github.com/rangapin/hr-hiring-signals/internal/store"
)

// PostingSource is the slice of the store the aggregator reads.
type PostingSource interface {
	RelevantPostings(ctx context.Context, companyID int64, since, until time.Time) ([]store.Posting, error)
}

// Aggregator derives WindowStats from stored postings. asOf is always an
// explicit parameter so historical backfills replay exactly.
type Aggregator struct {
	Postings     PostingSource
	Keywords     config.Keywords
	TargetTitles []string
}

func New(src PostingSource, kw config.Keywords, targetTitles []string) *Aggregator {
	return &Aggregator{Postings: src, Keywords: kw, TargetTitles: targetTitles}
}

// Aggregate computes the 7/30/90-day trailing windows for one company.
// Window boundaries are inclusive on both ends: a posting dated exactly
// asOf-7d counts toward the 7-day window.
func (a *Aggregator) Aggregate(ctx context.Context, companyID int64, asOf time.Time) (domain.WindowStats, error) {
	asOf = normalize.DateOnly(asOf)
	since90 := asOf.AddDate(0, 0, -90)

	postings, err := a.Postings.RelevantPostings(ctx, companyID, since90, asOf)
	if err != nil {
		return domain.WindowStats{}, fmt.Errorf("aggregate company %d: %w", companyID, err)
	}

	stats := domain.WindowStats{
		CompanyID: companyID,
		AsOf:      asOf,
		Tiers:     make(map[domain.SeniorityTier]bool),
	}

	since7 := asOf.AddDate(0, 0, -7)
	since30 := asOf.AddDate(0, 0, -30)

	cities := make(map[string]bool)

	for _, p := range postings {
		stats.Count90d++
		if !p.PostDate.Before(since30) {
			stats.Count30d++
		}
		if !p.PostDate.Before(since7) {
			stats.Count7d++
		}
		if p.PostDate.After(stats.MostRecentPost) {
			stats.MostRecentPost = p.PostDate
		}

		// The derived facts all look at the 30-day window only.
		if p.PostDate.Before(since30) {
			continue
		}

		stats.Tiers[p.Seniority] = true
		if p.Seniority.Leadership() {
			stats.HasDirectorRole = true
		}

		if loc := normalize.CleanText(p.Location); loc != "" {
			cities[strings.ToLower(loc)] = true
		}

		if matchAny(p.JobTitle, a.TargetTitles) {
			stats.TargetTitleMatches++
		}

		if matchAny(p.JobTitle, a.Keywords.Wellbeing) || matchAny(p.Description, a.Keywords.Wellbeing) {
			stats.HasWellbeingKeywords = true
		}

		if matchAny(p.Description, a.Keywords.Wellbeing) {
			stats.ContentPoints += 5
		}
		if matchAny(p.Description, a.Keywords.EAP) {
			stats.ContentPoints += 3
		}
		if matchAny(p.Description, a.Keywords.Culture) {
			stats.ContentPoints += 2
		}
	}

	stats.MultiCityExpansion = len(cities) >= 2

	return stats, nil
}

func matchAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
