package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minwoo-jeong/asreco/internal/model"
	"github.com/minwoo-jeong/asreco/internal/schema"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

func maintTable(rows ...[]tabular.Value) *tabular.Table {
	t := tabular.New(schema.ColAssetID, schema.ColMaintDate, schema.ColTechnicianID)
	for _, r := range rows {
		t.AppendRow(r...)
	}
	return t
}

func partsTable(rows ...[]tabular.Value) *tabular.Table {
	t := tabular.New(schema.ColAssetID, schema.ColIssueDate, schema.ColIssuerID, schema.ColIssueAmount, schema.ColMaterialName)
	for _, r := range rows {
		t.AppendRow(r...)
	}
	return t
}

func TestMatchRepairCostsWindowBoundary(t *testing.T) {
	maint := maintTable(
		[]tabular.Value{tabular.String("A"), day(2024, 3, 15), tabular.String("T1")},
	)
	parts := partsTable(
		// 30 days before: inside the window.
		[]tabular.Value{tabular.String("A"), day(2024, 2, 14), tabular.String("T1"), tabular.NumberFromInt(100), tabular.String("오일필터")},
		// 30 days after: inside.
		[]tabular.Value{tabular.String("A"), day(2024, 4, 14), tabular.String("T1"), tabular.NumberFromInt(50), tabular.String("벨트")},
		// 31 days before: outside.
		[]tabular.Value{tabular.String("A"), day(2024, 2, 13), tabular.String("T1"), tabular.NumberFromInt(999), tabular.String("배터리")},
	)

	out, report, issues := MatchRepairCosts(maint, parts, DefaultMatchOptions())
	require.Empty(t, issues)

	cost, ok := out.At(0, schema.ColRepairCost).Number()
	require.True(t, ok)
	assert.Equal(t, "150", cost.String())
	assert.Equal(t, "벨트, 오일필터", out.At(0, schema.ColUsedParts).Text())
	assert.Equal(t, 1, report.MatchedRecords)
	assert.Equal(t, 100.0, report.MatchRate)
}

func TestMatchRepairCostsIdentityMustAgree(t *testing.T) {
	maint := maintTable(
		[]tabular.Value{tabular.String("A"), day(2024, 3, 15), tabular.String("T1")},
	)
	parts := partsTable(
		[]tabular.Value{tabular.String("A"), day(2024, 3, 15), tabular.String("T2"), tabular.NumberFromInt(100), tabular.String("배터리")},
	)

	out, report, _ := MatchRepairCosts(maint, parts, DefaultMatchOptions())
	cost, _ := out.At(0, schema.ColRepairCost).Number()
	assert.True(t, cost.IsZero())
	assert.Equal(t, "", out.At(0, schema.ColUsedParts).Text())
	assert.Equal(t, 0, report.MatchedRecords)
	assert.Equal(t, 0.0, report.MatchRate)
}

func TestMatchRepairCostsBlankIdentityPolicy(t *testing.T) {
	maint := maintTable(
		[]tabular.Value{tabular.String("A"), day(2024, 3, 15), tabular.Null()},
	)
	parts := partsTable(
		[]tabular.Value{tabular.String("A"), day(2024, 3, 15), tabular.Null(), tabular.NumberFromInt(80), tabular.String("타이어")},
	)

	// Inherited behavior: two blanks are the same identity.
	out, report, _ := MatchRepairCosts(maint, parts, DefaultMatchOptions())
	cost, _ := out.At(0, schema.ColRepairCost).Number()
	assert.Equal(t, "80", cost.String())
	assert.Equal(t, 1, report.MatchedRecords)

	// With the policy off, blank-identity records never match.
	opts := DefaultMatchOptions()
	opts.MatchBlankIdentity = false
	out, report, _ = MatchRepairCosts(maint, parts, opts)
	cost, _ = out.At(0, schema.ColRepairCost).Number()
	assert.True(t, cost.IsZero())
	assert.Equal(t, 0, report.MatchedRecords)
}

func TestMatchRepairCostsAggregation(t *testing.T) {
	maint := maintTable(
		[]tabular.Value{tabular.String("A"), day(2024, 3, 15), tabular.String("T1")},
	)
	parts := partsTable(
		[]tabular.Value{tabular.String("A"), day(2024, 3, 10), tabular.String("T1"), tabular.NumberFromInt(30), tabular.String("벨트")},
		[]tabular.Value{tabular.String("A"), day(2024, 3, 12), tabular.String("T1"), tabular.NumberFromInt(20), tabular.String("벨트")},
		[]tabular.Value{tabular.String("A"), day(2024, 3, 14), tabular.String("T1"), tabular.Null(), tabular.String("그리스")},
		[]tabular.Value{tabular.String("A"), day(2024, 3, 16), tabular.String("T1"), tabular.NumberFromInt(5), tabular.Null()},
	)

	out, _, _ := MatchRepairCosts(maint, parts, DefaultMatchOptions())
	cost, _ := out.At(0, schema.ColRepairCost).Number()
	assert.Equal(t, "55", cost.String(), "null amounts count as zero, rows still match")
	// Distinct names, sorted; a nameless issuance adds cost but no part.
	assert.Equal(t, "그리스, 벨트", out.At(0, schema.ColUsedParts).Text())
}

func TestMatchRepairCostsUnmatchedGetsZeroNotNull(t *testing.T) {
	maint := maintTable(
		[]tabular.Value{tabular.String("A"), day(2024, 3, 15), tabular.String("T1")},
		[]tabular.Value{tabular.String("B"), tabular.Null(), tabular.String("T2")},
	)
	parts := partsTable()

	out, report, _ := MatchRepairCosts(maint, parts, DefaultMatchOptions())
	for i := 0; i < out.NumRows(); i++ {
		cost, ok := out.At(i, schema.ColRepairCost).Number()
		require.True(t, ok, "cost column is never null once the matcher ran")
		assert.True(t, cost.IsZero())
		_, ok = out.At(i, schema.ColUsedParts).Str()
		assert.True(t, ok, "parts column is never null once the matcher ran")
	}
	assert.Equal(t, 2, report.TotalRecords)
	assert.Equal(t, 0.0, report.MatchRate)
}

func TestMatchRepairCostsNumericIDsJoin(t *testing.T) {
	// A numerically typed id on one side and text on the other still join.
	maint := maintTable(
		[]tabular.Value{tabular.NumberFromInt(101), day(2024, 3, 15), tabular.String("T1")},
	)
	parts := partsTable(
		[]tabular.Value{tabular.String("101.0"), day(2024, 3, 15), tabular.String("T1"), tabular.NumberFromInt(10), tabular.String("벨트")},
	)

	out, _, _ := MatchRepairCosts(maint, parts, DefaultMatchOptions())
	cost, _ := out.At(0, schema.ColRepairCost).Number()
	assert.Equal(t, "10", cost.String())
}

func TestMatchRepairCostsMissingParts(t *testing.T) {
	maint := maintTable(
		[]tabular.Value{tabular.String("A"), day(2024, 3, 15), tabular.String("T1")},
	)

	out, report, issues := MatchRepairCosts(maint, nil, DefaultMatchOptions())
	require.Len(t, issues, 1)
	assert.Equal(t, model.IssueMissingReference, issues[0].Kind)
	assert.False(t, out.HasColumn(schema.ColRepairCost))
	assert.Equal(t, 1, report.TotalRecords)
	assert.Equal(t, 0, report.MatchedRecords)
}

func TestMatchRepairCostsMissingColumns(t *testing.T) {
	maint := tabular.New(schema.ColAssetID)
	maint.AppendRow(tabular.String("A"))
	parts := partsTable()

	_, _, issues := MatchRepairCosts(maint, parts, DefaultMatchOptions())
	require.Len(t, issues, 1)
	assert.Equal(t, model.IssueMissingColumn, issues[0].Kind)
}

func TestMatchReportRounding(t *testing.T) {
	assert.Equal(t, 33.3, model.NewMatchReport(3, 1).MatchRate)
	assert.Equal(t, 66.7, model.NewMatchReport(3, 2).MatchRate)
	assert.Equal(t, 0.0, model.NewMatchReport(0, 0).MatchRate)
}
