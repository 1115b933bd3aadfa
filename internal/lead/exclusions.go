package lead

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

// Exclusions is the suppression list consulted by the filter. Matching is
// case-insensitive on the normalized company name and substring on the
// company's LinkedIn URL for domain entries.
type Exclusions struct {
	byName  map[string]domain.ExclusionEntry
	domains []domain.ExclusionEntry
}

// LoadExclusions reads a YAML exclusion file. A missing file is not an
// error: it yields an empty list so a fresh install runs unexcluded.
func LoadExclusions(path string) (*Exclusions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewExclusions(nil), nil
		}
		return nil, fmt.Errorf("read exclusions %s: %w", path, err)
	}

	var doc struct {
		Exclusions []domain.ExclusionEntry `yaml:"exclusions"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse exclusions %s: %w", path, err)
	}
	return NewExclusions(doc.Exclusions), nil
}

// NewExclusions indexes entries for lookup.
func NewExclusions(entries []domain.ExclusionEntry) *Exclusions {
	ex := &Exclusions{byName: make(map[string]domain.ExclusionEntry)}
	for _, e := range entries {
		if name := strings.ToLower(strings.TrimSpace(e.CompanyName)); name != "" {
			ex.byName[name] = e
		}
		if strings.TrimSpace(e.Domain) != "" {
			ex.domains = append(ex.domains, e)
		}
	}
	return ex
}

// Match reports whether the company is suppressed, and by which entry.
func (ex *Exclusions) Match(c domain.Company) (domain.ExclusionEntry, bool) {
	if e, ok := ex.byName[strings.ToLower(c.NameNormalized)]; ok {
		return e, true
	}
	if c.LinkedInURL != nil {
		url := strings.ToLower(*c.LinkedInURL)
		for _, e := range ex.domains {
			if strings.Contains(url, strings.ToLower(e.Domain)) {
				return e, true
			}
		}
	}
	return domain.ExclusionEntry{}, false
}
