package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rangapin/hr-hiring-signals/internal/config"
	"github.com/rangapin/hr-hiring-signals/internal/domain"
	"github.com/rangapin/hr-hiring-signals/internal/store"
)

func testKeywords() config.Keywords {
	return config.Keywords{
		Wellbeing: []string{"wellbeing", "dobrostan"},
		EAP:       []string{"eap"},
		Culture:   []string{"kultura organizacyjna"},
	}
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedCompany(t *testing.T, db *store.DB, name string, postDates []string, desc string) int64 {
	t.Helper()
	ctx := context.Background()
	id, _, err := db.CreateIfAbsent(ctx, name)
	require.NoError(t, err)
	for _, d := range postDates {
		_, err := db.UpsertPosting(ctx, domain.NormalizedPosting{
			RawPosting: domain.RawPosting{
				Source:         "pracuj",
				JobURL:         "https://x/" + name + "/" + d,
				JobTitle:       "HR Manager",
				CompanyNameRaw: name,
				Description:    desc,
			},
			CompanyKey: name,
			Seniority:  domain.TierMid,
			PostDate:   day(d),
			IsRelevant: true,
		})
		require.NoError(t, err)
	}
	_, err = db.LinkPostings(ctx, name, id)
	require.NoError(t, err)
	return id
}

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))
	return db
}

func TestComposeWeeklyReport(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	asOf := day("2026-02-08")

	hotID := seedCompany(t, db, "Acme", []string{"2026-02-06", "2026-02-07"}, "dbamy o wellbeing")
	warmID := seedCompany(t, db, "Beta", []string{"2026-02-05"}, "")
	coldID := seedCompany(t, db, "Gamma", []string{"2026-02-01"}, "")

	require.NoError(t, db.UpsertSignal(ctx, domain.ScoreResult{
		CompanyID: hotID, SignalDate: asOf, FinalScore: 83, Temp: domain.TempHot,
		HasDirectorRole: true, PostingCount30d: 4, PostingCount7d: 2,
	}, 4))
	require.NoError(t, db.UpsertSignal(ctx, domain.ScoreResult{
		CompanyID: warmID, SignalDate: asOf, FinalScore: 55, Temp: domain.TempWarm,
		PostingCount30d: 2,
	}, 2))
	require.NoError(t, db.UpsertSignal(ctx, domain.ScoreResult{
		CompanyID: coldID, SignalDate: asOf, FinalScore: 25, Temp: domain.TempCold,
	}, 1))

	rep, err := NewComposer(db, testKeywords(), zap.NewNop()).Compose(ctx, asOf)
	require.NoError(t, err)

	assert.Equal(t, 1, rep.HotCount)
	assert.Equal(t, 1, rep.WarmCount)
	assert.Equal(t, "2 Companies Scaling HR Teams This Week | Polish Job Market Alerter", rep.Subject)

	assert.Contains(t, rep.HTMLBody, "Acme")
	assert.Contains(t, rep.HTMLBody, "Beta")
	assert.NotContains(t, rep.HTMLBody, "Gamma", "cold leads stay out of the report")
	assert.Contains(t, rep.HTMLBody, "Hiring HR leadership roles")
	assert.Contains(t, rep.HTMLBody, "wellbeing")
}

func TestComposeSkipsExistingCustomers(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	asOf := day("2026-02-08")

	id := seedCompany(t, db, "Customer", []string{"2026-02-06"}, "")
	require.NoError(t, db.UpsertSignal(ctx, domain.ScoreResult{
		CompanyID: id, SignalDate: asOf, FinalScore: 90, Temp: domain.TempHot,
	}, 3))
	require.NoError(t, db.MarkExistingCustomer(ctx, id))

	rep, err := NewComposer(db, testKeywords(), zap.NewNop()).Compose(ctx, asOf)
	require.NoError(t, err)

	assert.Equal(t, 0, rep.HotCount)
	assert.NotContains(t, rep.HTMLBody, "Customer")
}

func TestWhyNowFallback(t *testing.T) {
	got := whyNow(domain.ScoreResult{PostingCount30d: 3})
	assert.Equal(t, "Active HR hiring with 3 postings in 30 days indicates team expansion.", got)

	got = whyNow(domain.ScoreResult{HasWellbeingKeywords: true, MultiCityExpansion: true})
	assert.Equal(t,
		"Job descriptions mention wellbeing/mental health programs. Expanding HR presence across multiple cities.",
		got)
}

func TestWeekRange(t *testing.T) {
	// 2026-02-08 is a Sunday; its week starts Monday 2026-02-02.
	assert.Equal(t, "Week of February 02 - February 08, 2026", weekRange(day("2026-02-08")))
	assert.Equal(t, "Week of February 02 - February 08, 2026", weekRange(day("2026-02-02")))
}
