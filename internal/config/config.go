package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Bucket maps a seniority tier to the title keywords that indicate it.
type Bucket struct {
	Tier string   `yaml:"tier"`
	Any  []string `yaml:"any"`
}

// Policy is the keyword policy consumed by the posting normalizer. It lives
// in the config file, not in code, so the suffix and keyword lists can be
// extended without touching logic.
type Policy struct {
	// LegalSuffixes is tried in order; keep longer suffixes before their
	// shorter sub-strings ("Sp. z o. o." before "Sp. z o.o.").
	LegalSuffixes []string `yaml:"legal_suffixes"`

	SeniorityBuckets []Bucket `yaml:"seniority_buckets"`

	Relevance struct {
		ExcludeAny []string `yaml:"exclude_any"`
		// PeopleOpsAny feeds the override: an excluded title stays relevant
		// when it carries a senior-or-above keyword and a people-ops term.
		PeopleOpsAny []string `yaml:"people_ops_any"`
	} `yaml:"relevance"`
}

// Keywords are the content-signal keyword sets (Polish and English),
// matched case-insensitively as substrings.
type Keywords struct {
	Wellbeing []string `yaml:"wellbeing"`
	EAP       []string `yaml:"eap"`
	Culture   []string `yaml:"culture"`
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Policy Policy `yaml:"policy"`

	Resolver struct {
		// AcceptThreshold is the minimum similarity in [0,1] for binding a
		// name to an existing company instead of creating a new one.
		AcceptThreshold float64 `yaml:"accept_threshold"`
	} `yaml:"resolver"`

	Scoring struct {
		Keywords     Keywords `yaml:"keywords"`
		TargetTitles []string `yaml:"target_titles"`
		// MinPostings30d gates which companies get scored at all.
		MinPostings30d int `yaml:"min_postings_30d"`
	} `yaml:"scoring"`

	Pipeline struct {
		NormalizeWorkers int `yaml:"normalize_workers"`
		ScoreWorkers     int `yaml:"score_workers"`
	} `yaml:"pipeline"`

	Exclusions struct {
		File string `yaml:"file"`
	} `yaml:"exclusions"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
