package store

import (
	"context"
	"fmt"
	"time"
)

// ReportStats is the aggregate numbers shown in the weekly report footer.
type ReportStats struct {
	TotalPostings7d     int
	DistinctCompanies7d int
	ICPMatches          int
}

// GetReportStats counts postings and active companies in the 7-day window
// ending at asOf, plus the registry's current ICP match total.
func (d *DB) GetReportStats(ctx context.Context, asOf time.Time) (ReportStats, error) {
	var st ReportStats
	since := fmtDate(asOf.AddDate(0, 0, -7))
	until := fmtDate(asOf)

	err := d.Pool.QueryRowContext(ctx, `
SELECT COUNT(*) FROM job_postings
WHERE post_date >= ? AND post_date <= ?;`, since, until).Scan(&st.TotalPostings7d)
	if err != nil {
		return st, fmt.Errorf("report stats postings: %w", err)
	}

	err = d.Pool.QueryRowContext(ctx, `
SELECT COUNT(DISTINCT company_key) FROM job_postings
WHERE post_date >= ? AND post_date <= ?;`, since, until).Scan(&st.DistinctCompanies7d)
	if err != nil {
		return st, fmt.Errorf("report stats companies: %w", err)
	}

	err = d.Pool.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM companies WHERE is_icp_match = 1;`).Scan(&st.ICPMatches)
	if err != nil {
		return st, fmt.Errorf("report stats icp: %w", err)
	}
	return st, nil
}
