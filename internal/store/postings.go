package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

// Posting is one stored job_postings row.
type Posting struct {
	ID             int64
	Source         string
	JobURL         string
	JobTitle       string
	CompanyNameRaw string
	CompanyKey     string
	Location       string
	PostDate       time.Time
	Description    string
	EmploymentType string
	Seniority      domain.SeniorityTier
	IsRelevant     bool
	CompanyID      *int64
}

// UpsertPosting inserts a normalized posting, or overwrites the stored row
// when the job URL is already known (re-scrape). The company link is cleared
// on overwrite so the resolver stage relinks it from the fresh company key.
func (d *DB) UpsertPosting(ctx context.Context, p domain.NormalizedPosting) (inserted bool, err error) {
	// changes() can't tell an upsert-update from an insert, so precheck.
	var one int
	scanErr := d.Pool.QueryRowContext(ctx,
		`SELECT 1 FROM job_postings WHERE job_url = ? LIMIT 1;`, p.JobURL,
	).Scan(&one)
	existed := scanErr == nil

	_, err = d.Pool.ExecContext(ctx, `
INSERT INTO job_postings
  (source, job_url, job_title, company_name_raw, company_key, location,
   post_date, job_description, employment_type, seniority_tier, is_relevant)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(job_url) DO UPDATE SET
  source = excluded.source,
  job_title = excluded.job_title,
  company_name_raw = excluded.company_name_raw,
  company_key = excluded.company_key,
  location = excluded.location,
  post_date = excluded.post_date,
  job_description = excluded.job_description,
  employment_type = excluded.employment_type,
  seniority_tier = excluded.seniority_tier,
  is_relevant = excluded.is_relevant,
  company_id = NULL;`,
		p.Source, p.JobURL, p.JobTitle, p.CompanyNameRaw, p.CompanyKey, p.Location,
		fmtDate(p.PostDate), p.Description, p.EmploymentType, string(p.Seniority), p.IsRelevant,
	)
	if err != nil {
		return false, fmt.Errorf("upsert posting: %w", err)
	}
	return !existed, nil
}

// UnlinkedCompanyKeys returns the distinct company keys of postings that
// have no company id yet. This is the resolver stage's work list.
func (d *DB) UnlinkedCompanyKeys(ctx context.Context) ([]string, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT DISTINCT company_key
FROM job_postings
WHERE company_id IS NULL AND company_key != ''
ORDER BY company_key;`)
	if err != nil {
		return nil, fmt.Errorf("unlinked keys: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// LinkPostings binds every posting with the given company key to companyID.
func (d *DB) LinkPostings(ctx context.Context, companyKey string, companyID int64) (int64, error) {
	res, err := d.Pool.ExecContext(ctx, `
UPDATE job_postings
SET company_id = ?
WHERE company_key = ? AND company_id IS NULL;`,
		companyID, companyKey,
	)
	if err != nil {
		return 0, fmt.Errorf("link postings: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// RelevantPostings returns the company's relevant postings with post_date in
// [since, until], both ends inclusive, newest first.
func (d *DB) RelevantPostings(ctx context.Context, companyID int64, since, until time.Time) ([]Posting, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, source, job_url, job_title, company_name_raw, company_key, location,
       post_date, job_description, employment_type, seniority_tier, is_relevant, company_id
FROM job_postings
WHERE company_id = ?
  AND is_relevant = 1
  AND post_date >= ? AND post_date <= ?
ORDER BY post_date DESC, id ASC;`,
		companyID, fmtDate(since), fmtDate(until),
	)
	if err != nil {
		return nil, fmt.Errorf("relevant postings: %w", err)
	}
	defer rows.Close()

	var out []Posting
	for rows.Next() {
		var p Posting
		var dateStr, tier string
		if err := rows.Scan(
			&p.ID, &p.Source, &p.JobURL, &p.JobTitle, &p.CompanyNameRaw, &p.CompanyKey,
			&p.Location, &dateStr, &p.Description, &p.EmploymentType, &tier, &p.IsRelevant, &p.CompanyID,
		); err != nil {
			return nil, err
		}
		p.PostDate = parseDate(dateStr)
		p.Seniority = domain.SeniorityTier(tier)
		out = append(out, p)
	}
	return out, rows.Err()
}

// ScoringCandidates returns ids of companies with at least minPostings
// relevant postings in the trailing window ending at asOf.
func (d *DB) ScoringCandidates(ctx context.Context, asOf time.Time, windowDays, minPostings int) ([]int64, error) {
	since := asOf.AddDate(0, 0, -windowDays)
	rows, err := d.Pool.QueryContext(ctx, `
SELECT company_id
FROM job_postings
WHERE company_id IS NOT NULL
  AND is_relevant = 1
  AND post_date >= ? AND post_date <= ?
GROUP BY company_id
HAVING COUNT(*) >= ?
ORDER BY COUNT(*) DESC, company_id ASC;`,
		fmtDate(since), fmtDate(asOf), minPostings,
	)
	if err != nil {
		return nil, fmt.Errorf("scoring candidates: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// PostingCount reports the total number of stored postings.
func (d *DB) PostingCount(ctx context.Context) (int, error) {
	var n int
	err := d.Pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_postings;`).Scan(&n)
	return n, err
}
