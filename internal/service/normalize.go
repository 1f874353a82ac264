// Package service implements the reconciliation pipeline: schema
// normalization, reference joins, region extraction, temporal linking, fuzzy
// cost matching, fault-type composition and the affiliation statistics that
// the presentation layer consumes. Every stage is a pure function from
// tables to a new table plus issues; no stage touches shared state.
package service

import (
	"fmt"
	"strings"

	"github.com/minwoo-jeong/asreco/internal/model"
	"github.com/minwoo-jeong/asreco/internal/schema"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

// Stage names used in issues.
const (
	stageNormalizer = "schema_normalizer"
	stageAssetJoin  = "asset_join"
	stageOrgJoin    = "org_join"
	stageRegion     = "region_extractor"
	stageTemporal   = "temporal_linker"
	stageCostMatch  = "cost_matcher"
	stageCategory   = "category_composer"
	stageStats      = "affiliation_stats"
)

var headerCleaner = strings.NewReplacer("\n", "", "\r", "")

// cleanHeader trims whitespace and strips embedded newlines from a column
// name. Uploaded sheets routinely carry both.
func cleanHeader(name string) string {
	return strings.TrimSpace(headerCleaner.Replace(name))
}

// NormalizeSchema cleans column names, remaps the raw classification trio,
// and coerces cell types according to the classifier. A cell that refuses
// coercion becomes null; the row survives. Running it twice is a no-op.
func NormalizeSchema(t *tabular.Table, cls *schema.Classifier) (*tabular.Table, []model.Issue) {
	if t == nil {
		return nil, nil
	}
	out := t.Clone()
	var issues []model.Issue

	for _, col := range out.Columns() {
		cleaned := cleanHeader(col)
		if cleaned == col {
			continue
		}
		if !out.RenameColumn(col, cleaned) {
			issues = append(issues, model.Issue{
				Stage:   stageNormalizer,
				Kind:    model.IssueStageFailure,
				Message: fmt.Sprintf("column %q collides with %q after cleanup; kept original", col, cleaned),
			})
		}
	}

	// 대분류/중분류/소분류 come in from the raw maintenance log and the whole
	// pipeline keys on the renamed trio. Only rename when all three exist.
	if out.HasColumns(schema.ColRawWorkType, schema.ColRawTarget, schema.ColRawAction) {
		out.RenameColumn(schema.ColRawWorkType, schema.ColWorkType)
		out.RenameColumn(schema.ColRawTarget, schema.ColMaintTarget)
		out.RenameColumn(schema.ColRawAction, schema.ColMaintAction)
	}

	for _, col := range out.Columns() {
		switch cls.Classify(col) {
		case schema.ClassIdentifier:
			coerceIdentifier(out, col)
		case schema.ClassNumeric:
			coerceNumeric(out, col)
		case schema.ClassDate:
			coerceDate(out, col)
		case schema.ClassCategorical:
			standardizeMaintType(out, col)
		}
	}
	return out, issues
}

func coerceIdentifier(t *tabular.Table, col string) {
	for i := 0; i < t.NumRows(); i++ {
		v := t.At(i, col)
		if v.IsNull() {
			continue
		}
		t.Set(i, col, tabular.String(canonicalID(v.Text())))
	}
}

// canonicalID strips the spurious ".0" a numerically-typed id picks up on
// the way through a spreadsheet. It deliberately does nothing else, so ids
// with leading zeros survive intact.
func canonicalID(s string) string {
	s = strings.TrimSpace(s)
	dot := strings.IndexByte(s, '.')
	if dot <= 0 {
		return s
	}
	head, tail := s[:dot], s[dot+1:]
	if tail == "" || strings.Trim(tail, "0") != "" {
		return s
	}
	for _, r := range head {
		if r < '0' || r > '9' {
			return s
		}
	}
	return head
}

func coerceNumeric(t *tabular.Table, col string) {
	for i := 0; i < t.NumRows(); i++ {
		v := t.At(i, col)
		if v.IsNull() || v.Kind() == tabular.KindNumber {
			continue
		}
		if d, ok := tabular.ParseNumber(v.Text()); ok {
			t.Set(i, col, tabular.Number(d))
		} else {
			t.Set(i, col, tabular.Null())
		}
	}
}

func coerceDate(t *tabular.Table, col string) {
	for i := 0; i < t.NumRows(); i++ {
		v := t.At(i, col)
		if v.IsNull() || v.Kind() == tabular.KindDate {
			continue
		}
		if d, ok := tabular.ParseDate(v.Text()); ok {
			t.Set(i, col, tabular.Date(d))
		} else {
			t.Set(i, col, tabular.Null())
		}
	}
}

// standardizeMaintType maps the 정비구분 vocabulary onto {내부, 외부}. Values
// naming neither stay as they are; the literal string "nan" is a true null
// that leaked through an earlier string cast.
func standardizeMaintType(t *tabular.Table, col string) {
	for i := 0; i < t.NumRows(); i++ {
		v := t.At(i, col)
		if v.IsNull() {
			continue
		}
		s := cleanHeader(v.Text())
		lowered := strings.ToLower(s)
		switch {
		case lowered == "nan" || s == "":
			t.Set(i, col, tabular.Null())
		case strings.Contains(lowered, schema.MaintTypeInternal):
			t.Set(i, col, tabular.String(schema.MaintTypeInternal))
		case strings.Contains(lowered, schema.MaintTypeExternal):
			t.Set(i, col, tabular.String(schema.MaintTypeExternal))
		default:
			t.Set(i, col, tabular.String(s))
		}
	}
}
