package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

// ListCompanies returns every registry entry with its linked-posting count
// (the resolver's tie-break input).
func (d *DB) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT c.id, c.name_normalized, c.linkedin_url, c.headcount_global,
       c.headcount_poland, c.industry, c.is_icp_match, c.is_existing_customer,
       c.enriched_at,
       (SELECT COUNT(*) FROM job_postings p WHERE p.company_id = c.id) AS posting_count
FROM companies c
ORDER BY c.id;`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetCompany fetches one registry entry by id.
func (d *DB) GetCompany(ctx context.Context, id int64) (domain.Company, error) {
	row := d.Pool.QueryRowContext(ctx, `
SELECT c.id, c.name_normalized, c.linkedin_url, c.headcount_global,
       c.headcount_poland, c.industry, c.is_icp_match, c.is_existing_customer,
       c.enriched_at,
       (SELECT COUNT(*) FROM job_postings p WHERE p.company_id = c.id) AS posting_count
FROM companies c
WHERE c.id = ?;`, id)
	return scanCompany(row)
}

// CreateIfAbsent inserts a company under a unique normalized name, or
// returns the existing row's id. INSERT OR IGNORE on the unique index makes
// the compare-and-create atomic at the storage layer, so two racing runs
// cannot mint two ids for one name.
func (d *DB) CreateIfAbsent(ctx context.Context, nameNormalized string) (id int64, created bool, err error) {
	if nameNormalized == "" {
		return 0, false, fmt.Errorf("create company: empty name")
	}

	_, err = d.Pool.ExecContext(ctx,
		`INSERT OR IGNORE INTO companies (name_normalized) VALUES (?);`,
		nameNormalized,
	)
	if err != nil {
		return 0, false, fmt.Errorf("create company: %w", err)
	}

	var changes int
	if e := d.Pool.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		created = changes > 0
	}

	err = d.Pool.QueryRowContext(ctx,
		`SELECT id FROM companies WHERE name_normalized = ?;`,
		nameNormalized,
	).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("create company: %w", err)
	}
	return id, created, nil
}

// ApplyProfilePatch merges an enrichment patch into a company row. Nil patch
// fields never clear stored values.
func (d *DB) ApplyProfilePatch(ctx context.Context, patch domain.CompanyProfile, now time.Time) error {
	res, err := d.Pool.ExecContext(ctx, `
UPDATE companies SET
  linkedin_url = COALESCE(?, linkedin_url),
  headcount_global = COALESCE(?, headcount_global),
  headcount_poland = COALESCE(?, headcount_poland),
  industry = COALESCE(?, industry),
  enriched_at = ?
WHERE id = ?;`,
		patch.LinkedInURL, patch.HeadcountGlobal, patch.HeadcountPoland,
		patch.Industry, now.UTC().Format(time.RFC3339), patch.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("apply profile patch: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("apply profile patch: company %d not found", patch.CompanyID)
	}
	return nil
}

// SetICPMatch records whether a company currently fits the ICP headcount band.
func (d *DB) SetICPMatch(ctx context.Context, companyID int64, match bool) error {
	_, err := d.Pool.ExecContext(ctx,
		`UPDATE companies SET is_icp_match = ? WHERE id = ?;`, match, companyID)
	if err != nil {
		return fmt.Errorf("set icp match: %w", err)
	}
	return nil
}

// MarkExistingCustomer flags a company so report queries skip it.
func (d *DB) MarkExistingCustomer(ctx context.Context, companyID int64) error {
	_, err := d.Pool.ExecContext(ctx,
		`UPDATE companies SET is_existing_customer = 1 WHERE id = ?;`, companyID)
	if err != nil {
		return fmt.Errorf("mark existing customer: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(r rowScanner) (domain.Company, error) {
	var c domain.Company
	var linkedin, industry, enrichedAt sql.NullString
	var hcGlobal, hcPoland sql.NullInt64

	err := r.Scan(&c.ID, &c.NameNormalized, &linkedin, &hcGlobal, &hcPoland,
		&industry, &c.IsICPMatch, &c.IsExistingCustomer, &enrichedAt, &c.PostingCount)
	if err != nil {
		return c, err
	}

	if linkedin.Valid {
		c.LinkedInURL = &linkedin.String
	}
	if industry.Valid {
		c.Industry = &industry.String
	}
	if hcGlobal.Valid {
		v := int(hcGlobal.Int64)
		c.HeadcountGlobal = &v
	}
	if hcPoland.Valid {
		v := int(hcPoland.Int64)
		c.HeadcountPoland = &v
	}
	if enrichedAt.Valid {
		if t, err := time.Parse(time.RFC3339, enrichedAt.String); err == nil {
			c.EnrichedAt = &t
		}
	}
	return c, nil
}
