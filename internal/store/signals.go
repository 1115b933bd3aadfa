package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

// UpsertSignal persists one scoring result. The (company_id, signal_date)
// primary key makes recomputation replace the prior row instead of
// appending, which is what keeps daily reruns idempotent.
func (d *DB) UpsertSignal(ctx context.Context, s domain.ScoreResult, count90d int) error {
	mostRecent := ""
	if !s.MostRecentPost.IsZero() {
		mostRecent = fmtDate(s.MostRecentPost)
	}

	_, err := d.Pool.ExecContext(ctx, `
INSERT INTO signals
  (company_id, signal_date, final_score, lead_temperature,
   velocity_score, seniority_score, icp_score, content_score, recency_score,
   posting_count_7d, posting_count_30d, posting_count_90d,
   has_director_role, has_wellbeing_keywords, multi_city_expansion,
   most_recent_post)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(company_id, signal_date) DO UPDATE SET
  final_score = excluded.final_score,
  lead_temperature = excluded.lead_temperature,
  velocity_score = excluded.velocity_score,
  seniority_score = excluded.seniority_score,
  icp_score = excluded.icp_score,
  content_score = excluded.content_score,
  recency_score = excluded.recency_score,
  posting_count_7d = excluded.posting_count_7d,
  posting_count_30d = excluded.posting_count_30d,
  posting_count_90d = excluded.posting_count_90d,
  has_director_role = excluded.has_director_role,
  has_wellbeing_keywords = excluded.has_wellbeing_keywords,
  multi_city_expansion = excluded.multi_city_expansion,
  most_recent_post = excluded.most_recent_post;`,
		s.CompanyID, fmtDate(s.SignalDate), s.FinalScore, string(s.Temp),
		s.Velocity, s.Seniority, s.ICP, s.Content, s.Recency,
		s.PostingCount7d, s.PostingCount30d, count90d,
		s.HasDirectorRole, s.HasWellbeingKeywords, s.MultiCityExpansion,
		mostRecent,
	)
	if err != nil {
		return fmt.Errorf("upsert signal: %w", err)
	}
	return nil
}

// SignalsSince returns signals dated in [since, until] joined with their
// company name, existing customers excluded, highest score first.
func (d *DB) SignalsSince(ctx context.Context, since, until time.Time) ([]domain.ScoreResult, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT s.company_id, s.signal_date, s.final_score, s.lead_temperature,
       s.velocity_score, s.seniority_score, s.icp_score, s.content_score,
       s.recency_score, s.posting_count_7d, s.posting_count_30d,
       s.has_director_role, s.has_wellbeing_keywords, s.multi_city_expansion,
       s.most_recent_post, c.name_normalized
FROM signals s
JOIN companies c ON s.company_id = c.id
WHERE s.signal_date >= ? AND s.signal_date <= ?
  AND c.is_existing_customer = 0
ORDER BY s.final_score DESC, s.company_id ASC;`,
		fmtDate(since), fmtDate(until),
	)
	if err != nil {
		return nil, fmt.Errorf("signals since: %w", err)
	}
	defer rows.Close()

	var out []domain.ScoreResult
	for rows.Next() {
		var s domain.ScoreResult
		var dateStr, temp, mostRecent string
		if err := rows.Scan(
			&s.CompanyID, &dateStr, &s.FinalScore, &temp,
			&s.Velocity, &s.Seniority, &s.ICP, &s.Content, &s.Recency,
			&s.PostingCount7d, &s.PostingCount30d,
			&s.HasDirectorRole, &s.HasWellbeingKeywords, &s.MultiCityExpansion,
			&mostRecent, &s.CompanyName,
		); err != nil {
			return nil, err
		}
		s.SignalDate = parseDate(dateStr)
		s.Temp = domain.Temperature(temp)
		if mostRecent != "" {
			s.MostRecentPost = parseDate(mostRecent)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SignalRow is one raw signals row, used by the idempotence check and tests.
type SignalRow struct {
	CompanyID  int64
	SignalDate string
	FinalScore int
	Temp       string
}

// AllSignalRows returns every signal row ordered by key.
func (d *DB) AllSignalRows(ctx context.Context) ([]SignalRow, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT company_id, signal_date, final_score, lead_temperature
FROM signals
ORDER BY company_id, signal_date;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SignalRow
	for rows.Next() {
		var r SignalRow
		if err := rows.Scan(&r.CompanyID, &r.SignalDate, &r.FinalScore, &r.Temp); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveReport persists a composed report for audit.
func (d *DB) SaveReport(ctx context.Context, reportDate time.Time, reportType, subject, htmlBody string, hotCount, warmCount int) (int64, error) {
	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO reports (report_date, report_type, hot_count, warm_count, subject, html_body, created_at)
VALUES (?,?,?,?,?,?,?);`,
		fmtDate(reportDate), reportType, hotCount, warmCount, subject, htmlBody,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("save report: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}
