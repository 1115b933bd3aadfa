package domain

import "errors"

// Error taxonomy. Per-posting errors (validation, date parse) are isolated
// and never abort a batch; registry failures abort the whole run.
var (
	// ErrValidation marks a posting with empty required fields. The posting
	// is discarded and the pipeline continues.
	ErrValidation = errors.New("posting validation failed")

	// ErrDateParse marks an unparseable post-date string. The caller decides
	// whether to discard or queue the posting; the normalizer never
	// substitutes the current date.
	ErrDateParse = errors.New("unparseable post date")

	// ErrRegistryUnavailable wraps storage I/O failures during company
	// resolution. Fatal for the current run; the run is retried whole.
	ErrRegistryUnavailable = errors.New("company registry unavailable")

	// ErrEnrichmentUnavailable marks a failed external profile lookup.
	// Non-fatal; the company proceeds with a stale or absent profile.
	ErrEnrichmentUnavailable = errors.New("enrichment unavailable")
)
