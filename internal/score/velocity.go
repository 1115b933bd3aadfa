package score

import "github.com/rangapin/hr-hiring-signals/internal/domain"

// Velocity scores hiring frequency across the trailing windows.
// Max 40 points; rules evaluated top-down, first match wins.
func Velocity(s domain.WindowStats) int {
	switch {
	case s.Count7d >= 3:
		return 40
	case s.Count30d >= 5:
		return 35
	case s.Count30d >= 3:
		return 30
	case s.Count30d >= 2:
		return 20
	case s.Count90d >= 2:
		return 10
	default:
		return 0
	}
}
