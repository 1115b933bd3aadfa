package store

import "database/sql"

// Migrate brings the schema to v1, tracked via PRAGMA user_version.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS companies (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name_normalized TEXT NOT NULL UNIQUE,
  linkedin_url TEXT,
  headcount_global INTEGER,
  headcount_poland INTEGER,
  industry TEXT,
  is_icp_match INTEGER NOT NULL DEFAULT 0,
  is_existing_customer INTEGER NOT NULL DEFAULT 0,
  enriched_at TEXT
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS job_postings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  job_url TEXT NOT NULL UNIQUE,
  job_title TEXT NOT NULL,
  company_name_raw TEXT NOT NULL,
  company_key TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  post_date TEXT NOT NULL,
  job_description TEXT NOT NULL DEFAULT '',
  employment_type TEXT NOT NULL DEFAULT '',
  seniority_tier TEXT NOT NULL,
  is_relevant INTEGER NOT NULL DEFAULT 1,
  company_id INTEGER REFERENCES companies(id)
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS signals (
  company_id INTEGER NOT NULL REFERENCES companies(id),
  signal_date TEXT NOT NULL,
  final_score INTEGER NOT NULL,
  lead_temperature TEXT NOT NULL,
  velocity_score INTEGER NOT NULL,
  seniority_score INTEGER NOT NULL,
  icp_score INTEGER NOT NULL,
  content_score INTEGER NOT NULL,
  recency_score INTEGER NOT NULL,
  posting_count_7d INTEGER NOT NULL,
  posting_count_30d INTEGER NOT NULL,
  posting_count_90d INTEGER NOT NULL,
  has_director_role INTEGER NOT NULL,
  has_wellbeing_keywords INTEGER NOT NULL,
  multi_city_expansion INTEGER NOT NULL,
  most_recent_post TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (company_id, signal_date)
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS reports (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  report_date TEXT NOT NULL,
  report_type TEXT NOT NULL,
  hot_count INTEGER NOT NULL,
  warm_count INTEGER NOT NULL,
  subject TEXT NOT NULL,
  html_body TEXT NOT NULL,
  created_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_postings_company_date
ON job_postings(company_id, post_date);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_postings_company_key
ON job_postings(company_key);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
