package normalize

import (
	"strings"

	"github.com/rangapin/hr-hiring-signals/internal/config"
	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

// IsRelevant applies the exclusion keyword policy to a job title.
//
// A title matching an exclusion keyword (recruiter/agency/intern terms) is
// irrelevant unless the override fires: the posting is senior tier or above
// AND the title carries a people-ops term. "Senior Recruiter, People Team"
// therefore stays in while "IT Recruiter" drops out. Titles matching no
// exclusion keyword are always relevant; the bias is optimistic because a
// dropped lead is invisible while a weak one is caught by scoring.
func IsRelevant(title string, tier domain.SeniorityTier, pol config.Policy) bool {
	lower := strings.ToLower(title)

	excluded := false
	for _, kw := range pol.Relevance.ExcludeAny {
		if strings.Contains(lower, strings.ToLower(kw)) {
			excluded = true
			break
		}
	}
	if !excluded {
		return true
	}

	if tier.Rank() < domain.TierSenior.Rank() {
		return false
	}
	for _, kw := range pol.Relevance.PeopleOpsAny {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
