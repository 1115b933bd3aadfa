package normalize

import "strings"

// CleanText collapses internal whitespace (including non-breaking spaces)
// and trims the result.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// CleanCompanyName strips legal-entity suffixes from a raw company name.
// Suffixes are removed case-insensitively at their rightmost occurrence, in
// the configured order, so "Samsung Electronics Polska Sp. z o.o." becomes
// "Samsung Electronics Polska".
func CleanCompanyName(raw string, suffixes []string) string {
	name := CleanText(raw)
	if name == "" {
		return name
	}

	for _, suffix := range suffixes {
		suffix = strings.TrimSpace(suffix)
		if suffix == "" {
			continue
		}
		idx := strings.LastIndex(strings.ToLower(name), strings.ToLower(suffix))
		if idx != -1 {
			name = name[:idx] + name[idx+len(suffix):]
		}
	}

	name = CleanText(name)
	name = strings.TrimRight(name, ",")
	return strings.TrimSpace(name)
}
