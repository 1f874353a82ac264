package model

import (
	"time"

	"github.com/minwoo-jeong/asreco/internal/tabular"
)

// AnalysisSession holds everything one pipeline run produced. Sessions live
// only in memory; re-uploading rebuilds the whole thing from scratch.
type AnalysisSession struct {
	ID        string
	CreatedAt time.Time

	// Enriched is the reconciled maintenance table the presentation layer
	// consumes.
	Enriched *tabular.Table
	// Parts is the normalized parts-issuance table, kept for supplementary
	// display.
	Parts *tabular.Table
	// AffiliationStats is the per-affiliation cost statistics table.
	AffiliationStats *tabular.Table

	Match  MatchReport
	Issues []Issue
}

// SessionSummary is the JSON shape returned after an analyze call.
type SessionSummary struct {
	ID             string      `json:"id"`
	CreatedAt      time.Time   `json:"created_at"`
	RecordCount    int         `json:"record_count"`
	PartsCount     int         `json:"parts_count"`
	HasAffiliation bool        `json:"has_affiliation_stats"`
	Match          MatchReport `json:"match"`
	Issues         []Issue     `json:"issues"`
}

// Summary projects the session into its API summary.
func (s *AnalysisSession) Summary() SessionSummary {
	sum := SessionSummary{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Match:     s.Match,
		Issues:    s.Issues,
	}
	if s.Enriched != nil {
		sum.RecordCount = s.Enriched.NumRows()
	}
	if s.Parts != nil {
		sum.PartsCount = s.Parts.NumRows()
	}
	sum.HasAffiliation = s.AffiliationStats != nil && s.AffiliationStats.NumRows() > 0
	if sum.Issues == nil {
		sum.Issues = []Issue{}
	}
	return sum
}
