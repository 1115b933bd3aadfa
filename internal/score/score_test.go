package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

func tiers(ts ...domain.SeniorityTier) map[domain.SeniorityTier]bool {
	m := make(map[domain.SeniorityTier]bool)
	for _, t := range ts {
		m[t] = true
	}
	return m
}

func TestVelocity(t *testing.T) {
	tests := []struct {
		name              string
		c7d, c30d, c90d   int
		want              int
	}{
		{"three in a week", 3, 3, 3, 40},
		{"five in a month", 2, 5, 5, 35},
		{"three in a month", 1, 3, 3, 30},
		{"two in a month", 0, 2, 2, 20},
		{"two in a quarter", 0, 1, 2, 10},
		{"single posting", 1, 1, 1, 0},
		{"nothing", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Velocity(domain.WindowStats{Count7d: tt.c7d, Count30d: tt.c30d, Count90d: tt.c90d})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeniority(t *testing.T) {
	tests := []struct {
		name  string
		stats domain.WindowStats
		want  int
	}{
		{
			name:  "director only",
			stats: domain.WindowStats{HasDirectorRole: true, Tiers: tiers(domain.TierDirector)},
			want:  15,
		},
		{
			name:  "senior only",
			stats: domain.WindowStats{Tiers: tiers(domain.TierSenior)},
			want:  5,
		},
		{
			name:  "two mid tiers",
			stats: domain.WindowStats{Tiers: tiers(domain.TierMid, domain.TierJunior)},
			want:  5,
		},
		{
			name:  "full mix capped at 20",
			stats: domain.WindowStats{HasDirectorRole: true, Tiers: tiers(domain.TierDirector, domain.TierSenior, domain.TierMid)},
			want:  20,
		},
		{
			name:  "empty",
			stats: domain.WindowStats{Tiers: tiers()},
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Seniority(tt.stats))
		})
	}
}

func TestICP(t *testing.T) {
	hc := func(v int) *int { return &v }

	tests := []struct {
		name      string
		headcount *int
		matches   int
		want      int
	}{
		{"perfect band", hc(450), 0, 15},
		{"band floor", hc(200), 0, 15},
		{"band ceiling", hc(5000), 0, 15},
		{"upper band", hc(7500), 0, 10},
		{"too small", hc(50), 0, 0},
		{"too big", hc(20000), 0, 0},
		{"missing headcount", nil, 0, 0},
		{"missing headcount with titles", nil, 2, 5},
		{"band plus titles", hc(450), 3, 20},
		{"one title match is not enough", hc(450), 1, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ICP(domain.WindowStats{TargetTitleMatches: tt.matches}, tt.headcount)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentCapped(t *testing.T) {
	assert.Equal(t, 0, Content(domain.WindowStats{ContentPoints: 0}))
	assert.Equal(t, 8, Content(domain.WindowStats{ContentPoints: 8}))
	assert.Equal(t, 10, Content(domain.WindowStats{ContentPoints: 27}))
}

func TestRecency(t *testing.T) {
	asOf := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	post := func(daysAgo int) domain.WindowStats {
		return domain.WindowStats{AsOf: asOf, MostRecentPost: asOf.AddDate(0, 0, -daysAgo)}
	}

	tests := []struct {
		daysAgo int
		want    int
	}{
		{0, 10}, {3, 10}, {4, 8}, {7, 8}, {10, 5}, {14, 5}, {20, 3}, {30, 3}, {31, 0}, {120, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Recency(post(tt.daysAgo)), "days ago %d", tt.daysAgo)
	}

	assert.Equal(t, 0, Recency(domain.WindowStats{AsOf: asOf}), "no postings at all")
}

func TestClassify(t *testing.T) {
	assert.Equal(t, domain.TempHot, Classify(75))
	assert.Equal(t, domain.TempHot, Classify(100))
	assert.Equal(t, domain.TempWarm, Classify(74))
	assert.Equal(t, domain.TempWarm, Classify(50))
	assert.Equal(t, domain.TempCold, Classify(49))
	assert.Equal(t, domain.TempCold, Classify(0))
}

// Worked example: 4 postings in 30 days (1 director, 2 mid, 1 senior),
// headcount_poland 450, wellbeing+EAP content, freshest posting 2 days old.
func TestComposeHotExample(t *testing.T) {
	asOf := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	hc := 450

	stats := domain.WindowStats{
		CompanyID:            1,
		AsOf:                 asOf,
		Count7d:              2,
		Count30d:             4,
		Count90d:             4,
		HasDirectorRole:      true,
		HasWellbeingKeywords: true,
		Tiers:                tiers(domain.TierDirector, domain.TierMid, domain.TierSenior),
		ContentPoints:        8,
		MostRecentPost:       asOf.AddDate(0, 0, -2),
	}
	company := domain.Company{ID: 1, NameNormalized: "Acme", HeadcountPoland: &hc}

	got := Compose(stats, company)

	assert.Equal(t, 30, got.Velocity)
	assert.Equal(t, 20, got.Seniority)
	assert.Equal(t, 15, got.ICP)
	assert.Equal(t, 8, got.Content)
	assert.Equal(t, 10, got.Recency)
	assert.Equal(t, 83, got.FinalScore)
	assert.Equal(t, domain.TempHot, got.Temp)
}

// Worked example: 2 mid postings in 30 days, headcount below the ICP floor,
// no keyword hits, freshest posting 10 days old.
func TestComposeColdExample(t *testing.T) {
	asOf := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	hc := 50

	stats := domain.WindowStats{
		CompanyID:      2,
		AsOf:           asOf,
		Count30d:       2,
		Count90d:       2,
		Tiers:          tiers(domain.TierMid),
		MostRecentPost: asOf.AddDate(0, 0, -10),
	}
	company := domain.Company{ID: 2, NameNormalized: "SmallCo", HeadcountPoland: &hc}

	got := Compose(stats, company)

	assert.Equal(t, 20, got.Velocity)
	assert.Equal(t, 0, got.Seniority)
	assert.Equal(t, 0, got.ICP)
	assert.Equal(t, 0, got.Content)
	assert.Equal(t, 5, got.Recency)
	assert.Equal(t, 25, got.FinalScore)
	assert.Equal(t, domain.TempCold, got.Temp)
}

func TestComposeNeverExceeds100(t *testing.T) {
	asOf := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	hc := 450
	stats := domain.WindowStats{
		AsOf:               asOf,
		Count7d:            10,
		Count30d:           20,
		Count90d:           40,
		HasDirectorRole:    true,
		Tiers:              tiers(domain.TierDirector, domain.TierCLevel, domain.TierSenior, domain.TierMid),
		TargetTitleMatches: 10,
		ContentPoints:      50,
		MostRecentPost:     asOf,
	}
	got := Compose(stats, domain.Company{HeadcountPoland: &hc})
	assert.Equal(t, 100, got.FinalScore)
	assert.Equal(t, domain.TempHot, got.Temp)
}
