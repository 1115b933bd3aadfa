package score

import "github.com/rangapin/hr-hiring-signals/internal/domain"

// Recency scores how fresh the single most recent relevant posting is.
// Max 10 points; a company with no postings at all scores 0.
func Recency(s domain.WindowStats) int {
	if s.MostRecentPost.IsZero() {
		return 0
	}

	daysAgo := int(s.AsOf.Sub(s.MostRecentPost).Hours() / 24)
	switch {
	case daysAgo <= 3:
		return 10
	case daysAgo <= 7:
		return 8
	case daysAgo <= 14:
		return 5
	case daysAgo <= 30:
		return 3
	default:
		return 0
	}
}
