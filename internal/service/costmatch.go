package service

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/minwoo-jeong/asreco/internal/model"
	"github.com/minwoo-jeong/asreco/internal/schema"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

// MatchOptions tunes the cost matcher.
type MatchOptions struct {
	// WindowDays is the symmetric tolerance: an issuance up to this many days
	// before or after the maintenance date still belongs to it.
	WindowDays int
	// MatchBlankIdentity keeps the inherited behavior of letting a record
	// with no technician match an issuance with no issuer ("" == ""). The
	// upstream pipeline has always worked this way; the flag exists so the
	// policy can be revisited without touching the join mechanics.
	MatchBlankIdentity bool
}

// DefaultMatchOptions mirrors the upstream pipeline: 30-day window, blank
// identities match each other.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{WindowDays: 30, MatchBlankIdentity: true}
}

type partsEntry struct {
	hasDate  bool
	date     tabular.Value
	amount   decimal.Decimal
	material string
}

// partsKey is the hard component of the fuzzy join: asset id plus issuer
// identity, both string-coerced, nulls as empty strings.
func partsKey(asset, identity string) string {
	return asset + "\x1f" + identity
}

// MatchRepairCosts merges the maintenance table with the parts-issuance
// table. A pair is a candidate when asset ids are equal and the technician
// identity equals the issuer identity; it is retained when the issue date
// lies within WindowDays of the maintenance date in either direction.
// Retained pairs are aggregated per maintenance record: amounts sum into
// 수리비 and distinct material names join, sorted, into 사용부품. Records
// with no match get cost 0 and an empty parts string, never null; downstream
// consumers rely on cost > 0 as the matched indicator. The returned report
// carries the match rate as an operator diagnostic.
func MatchRepairCosts(maint, parts *tabular.Table, opts MatchOptions) (*tabular.Table, model.MatchReport, []model.Issue) {
	if maint == nil {
		return nil, model.MatchReport{}, nil
	}
	if parts == nil {
		return maint, model.NewMatchReport(maint.NumRows(), 0), []model.Issue{{
			Stage:   stageCostMatch,
			Kind:    model.IssueMissingReference,
			Message: "parts-issuance table not loaded; cost matching skipped",
		}}
	}
	if !maint.HasColumns(schema.ColAssetID, schema.ColMaintDate, schema.ColTechnicianID) {
		return maint, model.MatchReport{}, []model.Issue{{
			Stage:   stageCostMatch,
			Kind:    model.IssueMissingColumn,
			Message: "maintenance table lacks a required column; cost matching skipped",
		}}
	}
	if !parts.HasColumns(schema.ColAssetID, schema.ColIssueDate, schema.ColIssuerID, schema.ColIssueAmount, schema.ColMaterialName) {
		return maint, model.MatchReport{}, []model.Issue{{
			Stage:   stageCostMatch,
			Kind:    model.IssueMissingColumn,
			Message: "parts table lacks a required column; cost matching skipped",
		}}
	}

	index := make(map[string][]partsEntry)
	for i := 0; i < parts.NumRows(); i++ {
		asset := canonicalID(parts.At(i, schema.ColAssetID).Text())
		issuer := canonicalID(parts.At(i, schema.ColIssuerID).Text())
		entry := partsEntry{
			amount:   cellAmount(parts.At(i, schema.ColIssueAmount)),
			material: parts.At(i, schema.ColMaterialName).Text(),
		}
		if d := parts.At(i, schema.ColIssueDate); !d.IsNull() {
			if _, ok := d.Date(); ok {
				entry.hasDate = true
				entry.date = d
			}
		}
		key := partsKey(asset, issuer)
		index[key] = append(index[key], entry)
	}

	out := maint.Clone()
	out.AddColumn(schema.ColRepairCost, tabular.Number(decimal.Zero))
	out.AddColumn(schema.ColUsedParts, tabular.String(""))

	matched := 0
	for i := 0; i < out.NumRows(); i++ {
		cost := decimal.Zero
		materials := make(map[string]struct{})

		asset := canonicalID(out.At(i, schema.ColAssetID).Text())
		identity := canonicalID(out.At(i, schema.ColTechnicianID).Text())
		maintDate, hasDate := out.At(i, schema.ColMaintDate).Date()

		if hasDate && (identity != "" || opts.MatchBlankIdentity) {
			for _, entry := range index[partsKey(asset, identity)] {
				if !entry.hasDate {
					continue
				}
				issueDate, _ := entry.date.Date()
				diff := dayDiff(issueDate, maintDate)
				if diff < 0 {
					diff = -diff
				}
				if diff > opts.WindowDays {
					continue
				}
				cost = cost.Add(entry.amount)
				if entry.material != "" {
					materials[entry.material] = struct{}{}
				}
			}
		}

		out.Set(i, schema.ColRepairCost, tabular.Number(cost))
		out.Set(i, schema.ColUsedParts, tabular.String(joinSorted(materials)))
		if cost.IsPositive() {
			matched++
		}
	}

	return out, model.NewMatchReport(out.NumRows(), matched), nil
}

// cellAmount reads an issued amount, coercing anything unusable to zero.
func cellAmount(v tabular.Value) decimal.Decimal {
	if n, ok := v.Number(); ok {
		return n
	}
	if v.IsNull() {
		return decimal.Zero
	}
	if n, ok := tabular.ParseNumber(v.Text()); ok {
		return n
	}
	return decimal.Zero
}

func joinSorted(set map[string]struct{}) string {
	if len(set) == 0 {
		return ""
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
