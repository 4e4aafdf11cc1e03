package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/tactical-scout-service/internal/model"
)

// DraftAnalyzer is the slice of the backend client draft analysis needs.
type DraftAnalyzer interface {
	AnalyzeDraft(ctx context.Context, picks []string) (*model.DraftAnalysis, error)
}

type draftService struct {
	analyzer DraftAnalyzer
	log      zerolog.Logger
}

func NewDraftService(analyzer DraftAnalyzer, logger zerolog.Logger) DraftService {
	l := logger.With().Str("module", "service").Str("component", "draft").Logger()
	return &draftService{analyzer: analyzer, log: l}
}

func (s *draftService) AnalyzeDraft(ctx context.Context, text string, picks []string) (*model.DraftAnalysis, error) {
	start := time.Now()
	champions := cleanPicks(picks)
	if len(champions) == 0 {
		champions = SplitDraft(text)
	}

	var ferrs []FieldError
	switch {
	case len(champions) == 0:
		ferrs = append(ferrs, FieldError{Field: "draft", Message: "must name at least one champion"})
	case len(champions) > maxDraftPicks:
		ferrs = append(ferrs, FieldError{Field: "draft", Message: "must name at most 20 champions"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return nil, err
	}

	out, err := s.analyzer.AnalyzeDraft(ctx, champions)
	if err != nil {
		s.log.Error().Err(err).Strs("picks", champions).Msg("draft analysis failed")
		return nil, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int("picks", len(champions)).Msg("draft analyzed")
	return out, nil
}
