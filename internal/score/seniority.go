package score

import "github.com/rangapin/hr-hiring-signals/internal/domain"

// Seniority scores the role mix of the 30-day window. Max 20 points:
// +15 for any director/c-level role, +5 for any senior role, +5 when two or
// more distinct tiers are present.
func Seniority(s domain.WindowStats) int {
	total := 0
	if s.HasDirectorRole {
		total += 15
	}
	if s.Tiers[domain.TierSenior] {
		total += 5
	}
	if len(s.Tiers) >= 2 {
		total += 5
	}
	return clamp(total, 20)
}

func clamp(v, max int) int {
	if v > max {
		return max
	}
	return v
}
