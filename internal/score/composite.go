// Package score folds windowed posting stats into a composite 0-100 lead
// score. Every function here is pure: same stats and profile in, same
// numbers out, which is what lets the daily batch recompute without drift.
package score

import "github.com/rangapin/hr-hiring-signals/internal/domain"

// Temperature thresholds, inclusive at the lower bound of each band.
const (
	hotThreshold  = 75
	warmThreshold = 50
)

// Classify maps a final score to its temperature label.
func Classify(finalScore int) domain.Temperature {
	switch {
	case finalScore >= hotThreshold:
		return domain.TempHot
	case finalScore >= warmThreshold:
		return domain.TempWarm
	default:
		return domain.TempCold
	}
}

// Compose combines the five dimensions into one ScoreResult. Each dimension
// is individually capped (40+20+20+10+10), so the sum never exceeds 100.
// Compose is total: absent profile fields degrade their sub-score to its
// minimum instead of failing.
func Compose(stats domain.WindowStats, company domain.Company) domain.ScoreResult {
	velocity := Velocity(stats)
	seniority := Seniority(stats)
	icp := ICP(stats, company.HeadcountPoland)
	content := Content(stats)
	recency := Recency(stats)

	final := velocity + seniority + icp + content + recency

	return domain.ScoreResult{
		CompanyID:  stats.CompanyID,
		SignalDate: stats.AsOf,
		FinalScore: final,
		Temp:       Classify(final),

		Velocity:  velocity,
		Seniority: seniority,
		ICP:       icp,
		Content:   content,
		Recency:   recency,

		PostingCount7d:       stats.Count7d,
		PostingCount30d:      stats.Count30d,
		HasDirectorRole:      stats.HasDirectorRole,
		HasWellbeingKeywords: stats.HasWellbeingKeywords,
		MultiCityExpansion:   stats.MultiCityExpansion,

		MostRecentPost: stats.MostRecentPost,
		CompanyName:    company.NameNormalized,
	}
}
