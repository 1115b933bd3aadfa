package score

import "github.com/rangapin/hr-hiring-signals/internal/domain"

// ICP headcount band for the Poland headcount, in employees.
const (
	icpFloor        = 200
	icpCeiling      = 5000
	icpUpperCeiling = 10000
)

// ICP scores Ideal-Customer-Profile fit. Max 20 points: +15 for a Poland
// headcount inside the target band, +10 just above it, +5 when at least two
// 30-day titles match the target-title list. A missing headcount contributes
// nothing from the headcount term; title matching still applies.
func ICP(s domain.WindowStats, headcountPoland *int) int {
	total := 0

	if headcountPoland != nil {
		hc := *headcountPoland
		switch {
		case hc >= icpFloor && hc <= icpCeiling:
			total += 15
		case hc > icpCeiling && hc <= icpUpperCeiling:
			total += 10
		}
	}

	if s.TargetTitleMatches >= 2 {
		total += 5
	}

	return clamp(total, 20)
}

// InICPBand reports whether the Poland headcount sits in the core target
// band. The pipeline persists this as the company's is_icp_match flag.
func InICPBand(headcountPoland *int) bool {
	return headcountPoland != nil &&
		*headcountPoland >= icpFloor && *headcountPoland <= icpCeiling
}
