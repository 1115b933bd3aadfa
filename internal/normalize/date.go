package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

var daysAgoRe = regexp.MustCompile(`(\d+)\s*dni\s*temu`)

// ParsePostDate resolves a Polish-language post-date string against an
// explicit reference date. Recognized forms:
//
//	"dzisiaj" / "dziś"  -> asOf
//	"wczoraj"           -> asOf - 1 day
//	"N dni temu"        -> asOf - N days
//	"DD.MM.YYYY"
//	"YYYY-MM-DD"
//
// The wall clock is never consulted; unparseable input returns ErrDateParse
// so the caller can decide what to do with the posting.
func ParsePostDate(text string, asOf time.Time) (time.Time, error) {
	s := strings.ToLower(CleanText(text))
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date string", domain.ErrDateParse)
	}

	day := DateOnly(asOf)

	if strings.Contains(s, "dzisiaj") || strings.Contains(s, "dziś") || strings.Contains(s, "dzis") {
		return day, nil
	}
	if strings.Contains(s, "wczoraj") {
		return day.AddDate(0, 0, -1), nil
	}
	if m := daysAgoRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return day.AddDate(0, 0, -n), nil
		}
	}
	if t, err := time.ParseInLocation("02.01.2006", s, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.UTC); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrDateParse, text)
}

// DateOnly truncates t to a UTC calendar date. All windowing math runs on
// these midnight-UTC values.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
