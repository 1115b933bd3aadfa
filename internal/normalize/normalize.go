// Package normalize turns raw scraped postings into normalized ones: cleaned
// company name, seniority tier, absolute post date, and a relevance flag.
package normalize

import (
	"fmt"
	"time"

	"github.com/rangapin/hr-hiring-signals/internal/config"
	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

// Normalizer applies the configured keyword policy to one posting at a time.
// It holds no mutable state, so one instance is safe for concurrent use.
type Normalizer struct {
	Policy config.Policy
}

func New(pol config.Policy) *Normalizer {
	return &Normalizer{Policy: pol}
}

// Normalize validates and normalizes one raw posting against an explicit
// reference date. Empty required fields fail with ErrValidation; bad date
// strings fail with ErrDateParse. The posting itself is never mutated.
func (n *Normalizer) Normalize(raw domain.RawPosting, asOf time.Time) (domain.NormalizedPosting, error) {
	if CleanText(raw.JobTitle) == "" {
		return domain.NormalizedPosting{}, fmt.Errorf("%w: empty job title (url=%s)", domain.ErrValidation, raw.JobURL)
	}
	if CleanText(raw.CompanyNameRaw) == "" {
		return domain.NormalizedPosting{}, fmt.Errorf("%w: empty company name (url=%s)", domain.ErrValidation, raw.JobURL)
	}
	if CleanText(raw.JobURL) == "" {
		return domain.NormalizedPosting{}, fmt.Errorf("%w: empty job url", domain.ErrValidation)
	}

	postDate, err := ParsePostDate(raw.PostDateText, asOf)
	if err != nil {
		return domain.NormalizedPosting{}, err
	}

	tier := DetectSeniority(raw.JobTitle, n.Policy.SeniorityBuckets)

	return domain.NormalizedPosting{
		RawPosting: raw,
		CompanyKey: CleanCompanyName(raw.CompanyNameRaw, n.Policy.LegalSuffixes),
		Seniority:  tier,
		PostDate:   postDate,
		IsRelevant: IsRelevant(raw.JobTitle, tier, n.Policy),
	}, nil
}
