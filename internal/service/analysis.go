package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minwoo-jeong/asreco/internal/ingest"
	"github.com/minwoo-jeong/asreco/internal/model"
	"github.com/minwoo-jeong/asreco/internal/repository"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

// AnalysisService runs the pipeline against the static references and keeps
// the resulting sessions.
type AnalysisService struct {
	pipeline  *Pipeline
	refs      *ingest.StaticReferences
	refIssues []model.Issue
	sessions  repository.SessionRepo
}

// NewAnalysisService wires the pipeline, the pre-loaded static references
// (with whatever issues their loading produced) and the session store.
func NewAnalysisService(pipeline *Pipeline, refs *ingest.StaticReferences, refIssues []model.Issue, sessions repository.SessionRepo) *AnalysisService {
	if refs == nil {
		refs = &ingest.StaticReferences{}
	}
	return &AnalysisService{
		pipeline:  pipeline,
		refs:      refs,
		refIssues: refIssues,
		sessions:  sessions,
	}
}

// Analyze reconciles one maintenance upload (parts optional) and stores the
// session.
func (s *AnalysisService) Analyze(ctx context.Context, maint, parts *tabular.Table) (*model.AnalysisSession, error) {
	result, err := s.pipeline.Run(maint, parts, s.refs.Assets, s.refs.Org)
	if err != nil {
		return nil, fmt.Errorf("pipeline run: %w", err)
	}

	session := &model.AnalysisSession{
		Enriched:         result.Enriched,
		Parts:            result.Parts,
		AffiliationStats: result.AffiliationStats,
		Match:            result.Match,
		Issues:           append(append([]model.Issue(nil), s.refIssues...), result.Issues...),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	slog.Info("analysis session created",
		"session", session.ID,
		"records", session.Enriched.NumRows(),
		"match_rate_pct", session.Match.MatchRate,
		"issues", len(session.Issues))
	return session, nil
}

// Get fetches a stored session.
func (s *AnalysisService) Get(ctx context.Context, id string) (*model.AnalysisSession, error) {
	return s.sessions.Get(ctx, id)
}

// References exposes the raw static tables for supplementary display.
func (s *AnalysisService) References() *ingest.StaticReferences {
	return s.refs
}
