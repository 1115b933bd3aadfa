package lead

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

func sig(id int64, score, count7d int, recent time.Time, temp domain.Temperature) domain.ScoreResult {
	return domain.ScoreResult{
		CompanyID:      id,
		FinalScore:     score,
		PostingCount7d: count7d,
		MostRecentPost: recent,
		Temp:           temp,
	}
}

func TestRankTotalOrder(t *testing.T) {
	day := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)

	signals := []domain.ScoreResult{
		sig(4, 60, 1, day.AddDate(0, 0, -5), domain.TempWarm),
		sig(3, 80, 1, day, domain.TempHot),
		sig(2, 80, 2, day.AddDate(0, 0, -3), domain.TempHot),
		sig(1, 80, 2, day, domain.TempHot),
		sig(5, 80, 2, day, domain.TempHot),
	}

	Rank(signals)

	ids := make([]int64, len(signals))
	for i, s := range signals {
		ids[i] = s.CompanyID
	}
	// score desc, then count_7d desc, then most recent desc, then id asc
	assert.Equal(t, []int64{1, 5, 2, 3, 4}, ids)
}

func TestApplyExcludesByName(t *testing.T) {
	day := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	ex := NewExclusions([]domain.ExclusionEntry{
		{CompanyName: "Samsung Electronics Polska", Reason: "existing customer"},
	})
	f := NewFilter(ex, zap.NewNop())

	signals := []domain.ScoreResult{
		sig(1, 90, 3, day, domain.TempHot),
		sig(2, 60, 1, day, domain.TempWarm),
	}
	companies := map[int64]domain.Company{
		1: {ID: 1, NameNormalized: "samsung electronics polska"},
		2: {ID: 2, NameNormalized: "Allegro"},
	}

	out := f.Apply(signals, companies)

	assert.Empty(t, out.Hot, "excluded company must never appear, regardless of score")
	require.Len(t, out.Warm, 1)
	assert.Equal(t, int64(2), out.Warm[0].CompanyID)
}

func TestApplyExcludesByDomain(t *testing.T) {
	day := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	ex := NewExclusions([]domain.ExclusionEntry{
		{CompanyName: "Acme", Domain: "acme.pl", Reason: "competitor"},
	})
	f := NewFilter(ex, zap.NewNop())

	url := "https://www.linkedin.com/company/acme.pl"
	companies := map[int64]domain.Company{
		1: {ID: 1, NameNormalized: "Acme Polska", LinkedInURL: &url},
	}
	out := f.Apply([]domain.ScoreResult{sig(1, 85, 2, day, domain.TempHot)}, companies)

	assert.Empty(t, out.Hot)
	assert.Empty(t, out.Warm)
	assert.Empty(t, out.Cold)
}

func TestApplyPartitionsByTemperature(t *testing.T) {
	day := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	f := NewFilter(NewExclusions(nil), zap.NewNop())

	signals := []domain.ScoreResult{
		sig(1, 83, 2, day, domain.TempHot),
		sig(2, 55, 1, day, domain.TempWarm),
		sig(3, 25, 0, day.AddDate(0, 0, -10), domain.TempCold),
		sig(4, 91, 3, day, domain.TempHot),
	}

	out := f.Apply(signals, map[int64]domain.Company{})

	require.Len(t, out.Hot, 2)
	assert.Equal(t, int64(4), out.Hot[0].CompanyID, "hot list ranked by score")
	assert.Equal(t, int64(1), out.Hot[1].CompanyID)
	require.Len(t, out.Warm, 1)
	require.Len(t, out.Cold, 1)
}

func TestLoadExclusionsMissingFile(t *testing.T) {
	ex, err := LoadExclusions(t.TempDir() + "/nope.yml")
	require.NoError(t, err)
	_, hit := ex.Match(domain.Company{NameNormalized: "Anyone"})
	assert.False(t, hit)
}

func TestLoadExclusionsFile(t *testing.T) {
	path := t.TempDir() + "/exclusions.yml"
	body := "exclusions:\n  - company_name: Orange Polska\n    reason: existing customer\n  - company_name: Rivalry\n    domain: rivalry.io\n    reason: competitor\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	ex, err := LoadExclusions(path)
	require.NoError(t, err)

	entry, hit := ex.Match(domain.Company{NameNormalized: "ORANGE POLSKA"})
	require.True(t, hit)
	assert.Equal(t, "existing customer", entry.Reason)
}
