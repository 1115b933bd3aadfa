package score

import "github.com/rangapin/hr-hiring-signals/internal/domain"

// Content scores description keyword hits accumulated by the aggregator
// (+5 wellbeing, +3 EAP, +2 culture per 30-day posting). Max 10 points.
func Content(s domain.WindowStats) int {
	return clamp(s.ContentPoints, 10)
}
