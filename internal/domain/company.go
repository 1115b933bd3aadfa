package domain

import "time"

// Company is a canonical identity in the registry. NameNormalized is unique
// and stable once assigned; companies are never deleted, they just stop
// producing fresh signals.
type Company struct {
	ID                 int64
	NameNormalized     string
	LinkedInURL        *string
	HeadcountGlobal    *int
	HeadcountPoland    *int
	Industry           *string
	IsICPMatch         bool
	IsExistingCustomer bool
	EnrichedAt         *time.Time
	PostingCount       int // linked postings, used by resolver tie-breaks
}

// CompanyProfile is a partial enrichment patch. Nil fields leave the stored
// value untouched; a patch never clears previously known data.
type CompanyProfile struct {
	CompanyID       int64   `yaml:"company_id"`
	LinkedInURL     *string `yaml:"linkedin_url"`
	HeadcountGlobal *int    `yaml:"headcount_global"`
	HeadcountPoland *int    `yaml:"headcount_poland"`
	Industry        *string `yaml:"industry"`
}

// ExclusionEntry suppresses a company from the lead list regardless of score
// (existing customer, competitor). Consulted read-only by the lead filter.
type ExclusionEntry struct {
	CompanyName string `yaml:"company_name"`
	Domain      string `yaml:"domain,omitempty"`
	Reason      string `yaml:"reason"`
}
