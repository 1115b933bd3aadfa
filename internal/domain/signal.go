package domain

import "time"

// Temperature is the discrete lead classification derived from the final
// composite score.
type Temperature string

const (
	TempHot  Temperature = "hot"
	TempWarm Temperature = "warm"
	TempCold Temperature = "cold"
)

// WindowStats is the temporal aggregator's output for one company as of one
// reference date. It carries everything the scorer needs so that scoring
// stays a pure function.
type WindowStats struct {
	CompanyID int64
	AsOf      time.Time

	Count7d  int
	Count30d int
	Count90d int

	HasDirectorRole      bool
	HasWellbeingKeywords bool
	MultiCityExpansion   bool

	// Derived from the 30-day window.
	Tiers              map[SeniorityTier]bool
	TargetTitleMatches int
	ContentPoints      int

	// Most recent relevant posting across all windows; zero when none.
	MostRecentPost time.Time
}

// ScoreResult is one scoring run's output for one company as of one date.
// Keyed by (CompanyID, SignalDate); recomputation for the same date replaces
// the prior row. This is the sole contract the delivery layer depends on.
type ScoreResult struct {
	CompanyID  int64       `json:"company_id"`
	SignalDate time.Time   `json:"signal_date"`
	FinalScore int         `json:"final_score"`
	Temp       Temperature `json:"lead_temperature"`

	Velocity  int `json:"velocity"`
	Seniority int `json:"seniority"`
	ICP       int `json:"icp"`
	Content   int `json:"content"`
	Recency   int `json:"recency"`

	PostingCount7d       int  `json:"posting_count_7d"`
	PostingCount30d      int  `json:"posting_count_30d"`
	HasDirectorRole      bool `json:"has_director_role"`
	HasWellbeingKeywords bool `json:"has_wellbeing_keywords"`
	MultiCityExpansion   bool `json:"multi_city_expansion"`

	// Carried for ranking tie-breaks, not part of the delivery contract.
	MostRecentPost time.Time `json:"-"`
	CompanyName    string    `json:"-"`
}
