package domain

import "time"

// SeniorityTier is the detected seniority of a single posting's title.
type SeniorityTier string

const (
	TierJunior   SeniorityTier = "junior"
	TierMid      SeniorityTier = "mid"
	TierSenior   SeniorityTier = "senior"
	TierDirector SeniorityTier = "director"
	TierCLevel   SeniorityTier = "c-level"
)

// Rank orders tiers so that a title matching several buckets can take the
// highest one. Unknown tiers rank below junior.
func (t SeniorityTier) Rank() int {
	switch t {
	case TierJunior:
		return 1
	case TierMid:
		return 2
	case TierSenior:
		return 3
	case TierDirector:
		return 4
	case TierCLevel:
		return 5
	}
	return 0
}

// Leadership reports whether the tier counts as a director-level signal.
func (t SeniorityTier) Leadership() bool {
	return t == TierDirector || t == TierCLevel
}

// RawPosting is one scraped job-posting record as delivered by the scraping
// collaborators. JobURL is the global unique key; re-ingesting the same URL
// overwrites the stored row.
type RawPosting struct {
	Source         string `json:"source"`
	JobURL         string `json:"job_url"`
	JobTitle       string `json:"job_title"`
	CompanyNameRaw string `json:"company_name_raw"`
	Location       string `json:"location,omitempty"`
	PostDateText   string `json:"post_date_text"`
	Description    string `json:"job_description,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
}

// NormalizedPosting is the normalizer's view over a RawPosting. It is never
// persisted on its own; the store keeps the raw row plus the derived columns.
type NormalizedPosting struct {
	RawPosting

	CompanyKey string
	Seniority  SeniorityTier
	PostDate   time.Time
	IsRelevant bool
}
