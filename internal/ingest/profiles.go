package ingest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rangapin/hr-hiring-signals/internal/domain"
)

// LoadProfiles reads a YAML file of enrichment patches keyed by company id.
// Absent fields stay nil so the store can apply them without clearing
// previously known values.
func LoadProfiles(path string) ([]domain.CompanyProfile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read profiles %s: %v", domain.ErrEnrichmentUnavailable, path, err)
	}

	var doc struct {
		Profiles []domain.CompanyProfile `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}

	for i, p := range doc.Profiles {
		if p.CompanyID <= 0 {
			return nil, fmt.Errorf("profiles %s: entry %d has no company_id", path, i+1)
		}
	}
	return doc.Profiles, nil
}
