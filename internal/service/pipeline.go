package service

import (
	"errors"
	"log/slog"

	"github.com/minwoo-jeong/asreco/internal/model"
	"github.com/minwoo-jeong/asreco/internal/schema"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

// Options carries the tunables of one pipeline run.
type Options struct {
	Match           MatchOptions
	ShortRepeatDays int
}

// DefaultOptions mirrors the upstream pipeline's constants.
func DefaultOptions() Options {
	return Options{Match: DefaultMatchOptions(), ShortRepeatDays: 30}
}

// Result is everything one run produces.
type Result struct {
	Enriched         *tabular.Table
	Parts            *tabular.Table
	AffiliationStats *tabular.Table
	Match            model.MatchReport
	Issues           []model.Issue
}

// Pipeline composes the stages into one run. Stages hand tables to each
// other explicitly; there is no ambient state, and re-running with the same
// inputs reproduces the same result.
type Pipeline struct {
	classifier *schema.Classifier
	opts       Options
}

// NewPipeline builds a pipeline. A nil classifier falls back to the default.
func NewPipeline(cls *schema.Classifier, opts Options) *Pipeline {
	if cls == nil {
		cls = schema.DefaultClassifier()
	}
	return &Pipeline{classifier: cls, opts: opts}
}

// Run reconciles one maintenance upload (and optional parts upload) against
// the static references. Only a missing maintenance table is a hard error;
// everything else degrades locally and is reported through issues, because
// the dashboard must always get something to render.
func (p *Pipeline) Run(maint, parts, assets, org *tabular.Table) (*Result, error) {
	if maint == nil {
		return nil, errors.New("maintenance table is required")
	}

	var issues []model.Issue
	collect := func(in []model.Issue) {
		issues = append(issues, in...)
	}

	// Static references get the same header cleanup and typing as uploads.
	assets, iss := NormalizeSchema(assets, p.classifier)
	collect(iss)
	org, iss = NormalizeSchema(org, p.classifier)
	collect(iss)

	enriched, iss := NormalizeSchema(maint, p.classifier)
	collect(iss)
	enriched, iss = JoinAssetRegistry(enriched, assets)
	collect(iss)
	enriched, iss = LinkPreviousMaintenance(enriched)
	collect(iss)
	enriched, iss = ComputeReserviceInterval(enriched, p.opts.ShortRepeatDays)
	collect(iss)
	enriched, iss = ExtractRegions(enriched)
	collect(iss)
	enriched, iss = MapAffiliation(enriched, org)
	collect(iss)

	if parts != nil {
		parts, iss = NormalizeSchema(parts, p.classifier)
		collect(iss)
		parts, iss = MapAffiliation(parts, org)
		collect(iss)
	}

	var report model.MatchReport
	if parts != nil {
		enriched, report, iss = MatchRepairCosts(enriched, parts, p.opts.Match)
		collect(iss)
		slog.Info("cost matching finished",
			"total", report.TotalRecords,
			"matched", report.MatchedRecords,
			"rate_pct", report.MatchRate)
	} else {
		// No parts upload: the cost column exists but stays null so that
		// downstream display code can tell "matcher never ran" apart from
		// "matched nothing".
		enriched.AddColumn(schema.ColRepairCost, tabular.Null())
		report = model.NewMatchReport(enriched.NumRows(), 0)
	}

	enriched, iss = ComposeFaultType(enriched)
	collect(iss)

	stats, iss := AffiliationCostStats(enriched, org)
	collect(iss)

	return &Result{
		Enriched:         enriched,
		Parts:            parts,
		AffiliationStats: stats,
		Match:            report,
		Issues:           issues,
	}, nil
}
