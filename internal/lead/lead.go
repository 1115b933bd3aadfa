// Package lead turns one day's scored signals into the final ordered lead
// list: exclusion suppression, deterministic ranking, and partitioning by
// temperature.
package lead

import (
	"sort"

	"go.uber.org/zap"

	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

// Leads is the filter output, each slice in final rank order.
type Leads struct {
	Hot  []domain.ScoreResult
	Warm []domain.ScoreResult
	Cold []domain.ScoreResult
}

// Filter applies the exclusion list and ranking to scorer output.
type Filter struct {
	exclusions *Exclusions
	log        *zap.Logger
}

func NewFilter(ex *Exclusions, log *zap.Logger) *Filter {
	return &Filter{exclusions: ex, log: log}
}

// Apply drops excluded companies, ranks the survivors, and partitions them
// by temperature. companies maps company id to its registry row; signals
// without a registry row are kept (exclusion needs the profile to match).
func (f *Filter) Apply(signals []domain.ScoreResult, companies map[int64]domain.Company) Leads {
	kept := make([]domain.ScoreResult, 0, len(signals))
	for _, s := range signals {
		if c, ok := companies[s.CompanyID]; ok {
			if entry, hit := f.exclusions.Match(c); hit {
				f.log.Debug("lead excluded",
					zap.String("company", c.NameNormalized),
					zap.String("reason", entry.Reason))
				continue
			}
		}
		kept = append(kept, s)
	}

	Rank(kept)

	var out Leads
	for _, s := range kept {
		switch s.Temp {
		case domain.TempHot:
			out.Hot = append(out.Hot, s)
		case domain.TempWarm:
			out.Warm = append(out.Warm, s)
		default:
			out.Cold = append(out.Cold, s)
		}
	}
	return out
}

// Rank sorts signals in place: final score descending, then 7-day posting
// count descending, then most recent posting descending, then company id
// ascending. The order is total, so reruns over the same rows are stable.
func Rank(signals []domain.ScoreResult) {
	sort.Slice(signals, func(i, j int) bool {
		a, b := signals[i], signals[j]
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		if a.PostingCount7d != b.PostingCount7d {
			return a.PostingCount7d > b.PostingCount7d
		}
		if !a.MostRecentPost.Equal(b.MostRecentPost) {
			return a.MostRecentPost.After(b.MostRecentPost)
		}
		return a.CompanyID < b.CompanyID
	})
}
