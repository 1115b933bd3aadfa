// Package report composes the weekly HTML lead report from stored signals.
// Delivery (SMTP, CRM push) is a separate collaborator; this package only
// builds and persists the document.
package report

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rangapin/hr-hiring-signals/internal/config"
	"github.com/rangapin/hr-hiring-signals/internal/domain"
	"github.com/rangapin/hr-hiring-signals/internal/store"
)

const maxPostingsPerCompany = 5

// Report is one composed weekly report.
type Report struct {
	Subject   string
	HTMLBody  string
	HotCount  int
	WarmCount int
}

// Lead is one company entry in the rendered report.
type Lead struct {
	CompanyName    string
	FinalScore     int
	PostingCount7d int
	WhyNow         string
	Postings       []PostingLine
}

// PostingLine is one recent posting under a lead.
type PostingLine struct {
	JobTitle     string
	DaysAgo      int
	HasWellbeing bool
}

// Composer builds weekly reports against the store.
type Composer struct {
	db       *store.DB
	keywords config.Keywords
	log      *zap.Logger
}

func NewComposer(db *store.DB, keywords config.Keywords, log *zap.Logger) *Composer {
	return &Composer{db: db, keywords: keywords, log: log}
}

// Compose builds the report for the 7 days ending at asOf: hot and warm
// signals, each enriched with recent postings and a why-now blurb, plus
// aggregate stats. The composed report is persisted for audit.
func (c *Composer) Compose(ctx context.Context, asOf time.Time) (*Report, error) {
	signals, err := c.db.SignalsSince(ctx, asOf.AddDate(0, 0, -7), asOf)
	if err != nil {
		return nil, fmt.Errorf("compose report: %w", err)
	}

	var hot, warm []Lead
	for _, s := range signals {
		switch s.Temp {
		case domain.TempHot, domain.TempWarm:
		default:
			continue
		}
		lead, err := c.buildLead(ctx, s, asOf)
		if err != nil {
			return nil, err
		}
		if s.Temp == domain.TempHot {
			hot = append(hot, lead)
		} else {
			warm = append(warm, lead)
		}
	}

	stats, err := c.db.GetReportStats(ctx, asOf)
	if err != nil {
		return nil, err
	}

	var body strings.Builder
	err = reportTmpl.Execute(&body, map[string]any{
		"WeekRange": weekRange(asOf),
		"Hot":       hot,
		"Warm":      warm,
		"Stats":     stats,
	})
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	subject := fmt.Sprintf(
		"%d Companies Scaling HR Teams This Week | Polish Job Market Alerter",
		len(hot)+len(warm))

	rep := &Report{
		Subject:   subject,
		HTMLBody:  body.String(),
		HotCount:  len(hot),
		WarmCount: len(warm),
	}

	if _, err := c.db.SaveReport(ctx, asOf, "weekly", rep.Subject, rep.HTMLBody, rep.HotCount, rep.WarmCount); err != nil {
		return nil, err
	}

	c.log.Info("composed weekly report",
		zap.Int("hot", rep.HotCount),
		zap.Int("warm", rep.WarmCount))
	return rep, nil
}

func (c *Composer) buildLead(ctx context.Context, s domain.ScoreResult, asOf time.Time) (Lead, error) {
	postings, err := c.db.RelevantPostings(ctx, s.CompanyID, asOf.AddDate(0, 0, -30), asOf)
	if err != nil {
		return Lead{}, fmt.Errorf("lead postings for company %d: %w", s.CompanyID, err)
	}
	if len(postings) > maxPostingsPerCompany {
		postings = postings[:maxPostingsPerCompany]
	}

	lines := make([]PostingLine, 0, len(postings))
	for _, p := range postings {
		lines = append(lines, PostingLine{
			JobTitle:     p.JobTitle,
			DaysAgo:      int(asOf.Sub(p.PostDate).Hours() / 24),
			HasWellbeing: matchesAny(p.Description, c.keywords.Wellbeing),
		})
	}

	return Lead{
		CompanyName:    s.CompanyName,
		FinalScore:     s.FinalScore,
		PostingCount7d: s.PostingCount7d,
		WhyNow:         whyNow(s),
		Postings:       lines,
	}, nil
}

// whyNow turns the signal flags into a short pitch blurb.
func whyNow(s domain.ScoreResult) string {
	var parts []string
	if s.HasDirectorRole {
		parts = append(parts, "Hiring HR leadership roles signals strategic investment in people operations")
	}
	if s.HasWellbeingKeywords {
		parts = append(parts, "Job descriptions mention wellbeing/mental health programs")
	}
	if s.MultiCityExpansion {
		parts = append(parts, "Expanding HR presence across multiple cities")
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf(
			"Active HR hiring with %d postings in 30 days indicates team expansion",
			s.PostingCount30d))
	}
	return strings.Join(parts, ". ") + "."
}

// weekRange renders the Monday-to-Sunday span containing asOf.
func weekRange(asOf time.Time) string {
	offset := (int(asOf.Weekday()) + 6) % 7 // days since Monday
	monday := asOf.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return fmt.Sprintf("Week of %s - %s",
		monday.Format("January 02"), sunday.Format("January 02, 2006"))
}

func matchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

var reportTmpl = template.Must(template.New("weekly").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body>
<h1>HR Hiring Signals</h1>
<p>{{.WeekRange}}</p>

{{if .Hot}}
<h2>&#128293; Hot Leads</h2>
{{range .Hot}}
<div class="lead hot">
  <h3>{{.CompanyName}} &mdash; score {{.FinalScore}}</h3>
  <p><strong>Why now:</strong> {{.WhyNow}}</p>
  <ul>
  {{range .Postings}}
    <li>{{.JobTitle}} ({{.DaysAgo}}d ago){{if .HasWellbeing}} &middot; wellbeing{{end}}</li>
  {{end}}
  </ul>
</div>
{{end}}
{{end}}

{{if .Warm}}
<h2>Warm Leads</h2>
{{range .Warm}}
<div class="lead warm">
  <h3>{{.CompanyName}} &mdash; score {{.FinalScore}}</h3>
  <p><strong>Why now:</strong> {{.WhyNow}}</p>
  <ul>
  {{range .Postings}}
    <li>{{.JobTitle}} ({{.DaysAgo}}d ago){{if .HasWellbeing}} &middot; wellbeing{{end}}</li>
  {{end}}
  </ul>
</div>
{{end}}
{{end}}

<h2>This Week</h2>
<p>{{.Stats.TotalPostings7d}} HR postings across {{.Stats.DistinctCompanies7d}} companies;
{{.Stats.ICPMatches}} ICP matches in the registry.</p>
</body>
</html>
`))
