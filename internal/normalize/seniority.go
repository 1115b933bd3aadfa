package normalize

import (
	"strings"

	"github.com/rangapin/hr-hiring-signals/internal/config"
	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

// DetectSeniority scans a job title against the configured keyword buckets.
// When a title hits several buckets ("Senior Director, People") the highest
// tier wins. Titles matching nothing default to mid.
func DetectSeniority(title string, buckets []config.Bucket) domain.SeniorityTier {
	lower := strings.ToLower(title)

	best := domain.SeniorityTier("")
	for _, b := range buckets {
		tier := domain.SeniorityTier(b.Tier)
		if tier.Rank() <= best.Rank() {
			continue
		}
		for _, kw := range b.Any {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if strings.Contains(lower, kw) {
				best = tier
				break
			}
		}
	}

	if best == "" {
		return domain.TierMid
	}
	return best
}
