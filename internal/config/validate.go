package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

var knownTiers = map[string]bool{
	"junior": true, "mid": true, "senior": true, "director": true, "c-level": true,
}

// NormalizeAndValidate returns a cleaned copy of cfg plus validation results.
// Keyword lists are trimmed and de-duplicated; missing numeric knobs fall
// back to their defaults.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Policy.Relevance.ExcludeAny = trimList(out.Policy.Relevance.ExcludeAny)
	out.Policy.Relevance.PeopleOpsAny = trimList(out.Policy.Relevance.PeopleOpsAny)
	out.Scoring.Keywords.Wellbeing = trimList(out.Scoring.Keywords.Wellbeing)
	out.Scoring.Keywords.EAP = trimList(out.Scoring.Keywords.EAP)
	out.Scoring.Keywords.Culture = trimList(out.Scoring.Keywords.Culture)
	out.Scoring.TargetTitles = trimList(out.Scoring.TargetTitles)

	// ---- Defaults ----

	if out.Resolver.AcceptThreshold == 0 {
		out.Resolver.AcceptThreshold = 0.85
	}
	if out.Scoring.MinPostings30d == 0 {
		out.Scoring.MinPostings30d = 2
	}
	if out.Pipeline.NormalizeWorkers <= 0 {
		out.Pipeline.NormalizeWorkers = 4
	}
	if out.Pipeline.ScoreWorkers <= 0 {
		out.Pipeline.ScoreWorkers = 4
	}

	// ---- Validation rules ----

	if out.Resolver.AcceptThreshold < 0 || out.Resolver.AcceptThreshold > 1 {
		res.addErr("resolver.accept_threshold must be in [0,1], got %v", out.Resolver.AcceptThreshold)
	} else if out.Resolver.AcceptThreshold < 0.6 {
		res.addWarn("resolver.accept_threshold is very low (%v); distinct companies may get merged.", out.Resolver.AcceptThreshold)
	}

	if len(out.Policy.LegalSuffixes) == 0 {
		res.addWarn("policy.legal_suffixes is empty; raw company names will keep their legal forms.")
	}

	if len(out.Policy.SeniorityBuckets) == 0 {
		res.addErr("policy.seniority_buckets must define at least one bucket")
	}
	for i, b := range out.Policy.SeniorityBuckets {
		if !knownTiers[b.Tier] {
			res.addErr("policy.seniority_buckets[%d].tier %q is not a known tier", i, b.Tier)
		}
		if len(b.Any) == 0 {
			res.addErr("policy.seniority_buckets[%d].any must have at least 1 term", i)
		}
	}

	if len(out.Scoring.TargetTitles) == 0 {
		res.addWarn("scoring.target_titles is empty; the ICP title component will always be 0.")
	}
	if len(out.Scoring.Keywords.Wellbeing) == 0 {
		res.addWarn("scoring.keywords.wellbeing is empty; wellbeing signals will never fire.")
	}

	// A suffix that is a substring of a later, longer one would shadow it
	// ("Sp. z o.o." before "Sp. z o. o.").
	for i, s := range out.Policy.LegalSuffixes {
		for _, longer := range out.Policy.LegalSuffixes[i+1:] {
			if len(longer) > len(s) && strings.Contains(strings.ToLower(longer), strings.ToLower(s)) {
				res.addWarn("legal suffix %q appears before longer %q; longer suffixes should come first", s, longer)
			}
		}
	}

	return out, res
}
