package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rangapin/hr-hiring-signals/internal/config"
	"github.com/rangapin/hr-hiring-signals/internal/store"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	var cfg config.Config
	cfg.App.DataDir = t.TempDir()
	cfg.Policy.LegalSuffixes = []string{"Sp. z o. o.", "Sp. z o.o.", "S.A."}
	cfg.Policy.SeniorityBuckets = []config.Bucket{
		{Tier: "c-level", Any: []string{"chro", "cpo", "chief"}},
		{Tier: "director", Any: []string{"director", "dyrektor", "head of"}},
		{Tier: "senior", Any: []string{"senior", "lead"}},
		{Tier: "junior", Any: []string{"junior", "intern"}},
	}
	cfg.Policy.Relevance.ExcludeAny = []string{"recruiter", "intern"}
	cfg.Policy.Relevance.PeopleOpsAny = []string{"people", "hr"}
	cfg.Resolver.AcceptThreshold = 0.85
	cfg.Scoring.Keywords = config.Keywords{
		Wellbeing: []string{"wellbeing"},
		EAP:       []string{"eap"},
		Culture:   []string{"kultura organizacyjna"},
	}
	cfg.Scoring.TargetTitles = []string{"hr director", "hr business partner"}
	cfg.Scoring.MinPostings30d = 2
	cfg.Pipeline.NormalizeWorkers = 4
	cfg.Pipeline.ScoreWorkers = 4
	cfg.Exclusions.File = filepath.Join(cfg.App.DataDir, "exclusions.yml")
	return cfg
}

func testDeps(t *testing.T) Deps {
	t.Helper()
	db, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))
	return Deps{DB: db, Cfg: testConfig(t), Log: zap.NewNop()}
}

func writeBatch(t *testing.T, dir string, lines string) string {
	t.Helper()
	path := filepath.Join(dir, "batch.ndjson")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	return path
}

const batchBody = `{"source":"pracuj","job_url":"https://x/1","job_title":"HR Director","company_name_raw":"Acme Solutions Sp. z o.o.","location":"Warszawa","post_date_text":"dzisiaj","job_description":"Oferujemy program wellbeing"}
{"source":"pracuj","job_url":"https://x/2","job_title":"Senior HR Business Partner","company_name_raw":"Acme Solutions S.A.","location":"Kraków","post_date_text":"wczoraj","job_description":"employee assistance eap program"}
{"source":"pracuj","job_url":"https://x/3","job_title":"HR Manager","company_name_raw":"Acme Solutions Sp. z o.o.","location":"Warszawa","post_date_text":"3 dni temu"}
{"source":"pracuj","job_url":"https://x/4","job_title":"HR Specialist","company_name_raw":"Acme Solutions Sp. z o.o.","post_date_text":"05.02.2026"}
{"source":"pracuj","job_url":"https://x/5","job_title":"HR Coordinator","company_name_raw":"Beta Sp. z o.o.","post_date_text":"dzisiaj"}
{"source":"pracuj","job_url":"https://x/6","job_title":"HR Analyst","company_name_raw":"Gamma Sp. z o.o.","post_date_text":"someday"}
`

func TestRunEndToEnd(t *testing.T) {
	deps := testDeps(t)
	asOf := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	batch := writeBatch(t, deps.Cfg.App.DataDir, batchBody)

	res, err := Run(context.Background(), deps, asOf, []string{batch})
	require.NoError(t, err)

	assert.Equal(t, 6, res.Ingested)
	assert.Equal(t, 5, res.Inserted)
	assert.Equal(t, 1, res.Rejected, "unparseable date is rejected, not substituted")
	assert.Equal(t, 2, res.Resolved, "both legal forms of Acme collapse to one key")
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Scored, "Beta has a single posting and is below the scoring floor")

	require.Len(t, res.Leads.Hot, 1)
	hot := res.Leads.Hot[0]
	assert.Equal(t, "Acme Solutions", hot.CompanyName)
	// velocity 40 (4 postings in 7d) + seniority 20 (director, senior,
	// multiple tiers) + icp 5 (two target titles, no headcount) +
	// content 8 (wellbeing + eap) + recency 10 = 83
	assert.Equal(t, 83, hot.FinalScore)
	assert.True(t, hot.MultiCityExpansion)
	assert.Empty(t, res.Leads.Warm)
}

func TestRunIdempotent(t *testing.T) {
	deps := testDeps(t)
	ctx := context.Background()
	asOf := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	batch := writeBatch(t, deps.Cfg.App.DataDir, batchBody)

	_, err := Run(ctx, deps, asOf, []string{batch})
	require.NoError(t, err)
	first, err := deps.DB.AllSignalRows(ctx)
	require.NoError(t, err)

	res, err := Run(ctx, deps, asOf, []string{batch})
	require.NoError(t, err)
	second, err := deps.DB.AllSignalRows(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second, "rerun for the same date replaces, never accumulates")
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 5, res.Updated)
	assert.Equal(t, 0, res.Created)

	n, err := deps.DB.PostingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestRunRespectsLock(t *testing.T) {
	deps := testDeps(t)
	asOf := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)

	held := flock.New(filepath.Join(deps.Cfg.App.DataDir, "run.lock"))
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer held.Unlock()

	_, err = Run(context.Background(), deps, asOf, nil)
	assert.ErrorIs(t, err, ErrRunInProgress)
}

func TestRunExcludesListedCompanies(t *testing.T) {
	deps := testDeps(t)
	ctx := context.Background()
	asOf := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	batch := writeBatch(t, deps.Cfg.App.DataDir, batchBody)

	exclusions := "exclusions:\n  - company_name: Acme Solutions\n    reason: existing customer\n"
	require.NoError(t, os.WriteFile(deps.Cfg.Exclusions.File, []byte(exclusions), 0o644))

	res, err := Run(ctx, deps, asOf, []string{batch})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Scored, "exclusion suppresses reporting, not scoring")
	assert.Empty(t, res.Leads.Hot)
	assert.Empty(t, res.Leads.Warm)
	assert.Empty(t, res.Leads.Cold)
}
