package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/minwoo-jeong/asreco/internal/model"
	"github.com/minwoo-jeong/asreco/internal/schema"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

// AffiliationCostStats aggregates repair cost per technician affiliation:
// total, mean, case count, org-chart headcount (1 when unknown) and cost per
// head rounded to whole currency. Rows lacking either the affiliation or the
// cost are left out of the aggregation.
func AffiliationCostStats(enriched, org *tabular.Table) (*tabular.Table, []model.Issue) {
	if enriched == nil {
		return nil, nil
	}
	if !enriched.HasColumns(schema.ColTechAffiliation, schema.ColRepairCost) {
		return nil, []model.Issue{{
			Stage:   stageStats,
			Kind:    model.IssueMissingColumn,
			Message: "enriched table lacks affiliation or cost; statistics skipped",
		}}
	}

	type agg struct {
		total decimal.Decimal
		count int64
	}
	groups := make(map[string]*agg)
	for i := 0; i < enriched.NumRows(); i++ {
		aff := enriched.At(i, schema.ColTechAffiliation)
		cost, ok := enriched.At(i, schema.ColRepairCost).Number()
		if aff.IsNull() || !ok {
			continue
		}
		g := groups[aff.Text()]
		if g == nil {
			g = &agg{total: decimal.Zero}
			groups[aff.Text()] = g
		}
		g.total = g.total.Add(cost)
		g.count++
	}

	headcounts := make(map[string]int64)
	if org != nil && org.HasColumn(schema.ColAffiliation) {
		for i := 0; i < org.NumRows(); i++ {
			if aff := org.At(i, schema.ColAffiliation); !aff.IsNull() {
				headcounts[aff.Text()]++
			}
		}
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := tabular.New(
		schema.ColTechAffiliation,
		schema.ColTotalCost,
		schema.ColMeanCost,
		schema.ColCaseCount,
		schema.ColHeadcount,
		schema.ColCostPerHead,
	)
	for _, name := range names {
		g := groups[name]
		headcount := headcounts[name]
		if headcount == 0 {
			headcount = 1
		}
		mean := g.total.Div(decimal.NewFromInt(g.count)).Round(2)
		perHead := g.total.Div(decimal.NewFromInt(headcount)).Round(0)
		out.AppendRow(
			tabular.String(name),
			tabular.Number(g.total),
			tabular.Number(mean),
			tabular.NumberFromInt(g.count),
			tabular.NumberFromInt(headcount),
			tabular.Number(perHead),
		)
	}
	return out, nil
}
