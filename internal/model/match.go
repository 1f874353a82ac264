package model

import "math"

// MatchReport is the diagnostic summary of one cost-matching run. The rate is
// surfaced to the operator so they can judge how well the two uploads line
// up; it never alters the matching itself.
type MatchReport struct {
	TotalRecords   int     `json:"total_records"`
	MatchedRecords int     `json:"matched_records"`
	MatchRate      float64 `json:"match_rate"` // percent, one decimal
}

// NewMatchReport computes the rate from the counts, rounded to one decimal
// place in percent.
func NewMatchReport(total, matched int) MatchReport {
	r := MatchReport{TotalRecords: total, MatchedRecords: matched}
	if total > 0 {
		r.MatchRate = math.Round(float64(matched)/float64(total)*1000) / 10
	}
	return r
}
