package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/tactical-scout-service/internal/latest"
	"github.com/maxviazov/tactical-scout-service/internal/model"
	"github.com/maxviazov/tactical-scout-service/internal/repository"
	"github.com/maxviazov/tactical-scout-service/internal/scouting"
)

// ReportFetcher is the slice of the backend client scouting needs.
type ReportFetcher interface {
	GenerateScoutingReport(ctx context.Context, teamName string, matchLimit int) (*model.BackendPayload, error)
}

type ScoutingOptions struct {
	DefaultMatchLimit int
	HistoryLimit      int
	Mapper            *scouting.Mapper
}

type scoutingService struct {
	fetcher      ReportFetcher
	store        repository.ReportStore
	tracker      *latest.Tracker
	mapper       *scouting.Mapper
	defaultLimit int
	historyLimit int
	log          zerolog.Logger
}

func NewScoutingService(fetcher ReportFetcher, store repository.ReportStore, tracker *latest.Tracker, opts ScoutingOptions, logger zerolog.Logger) ScoutingService {
	l := logger.With().Str("module", "service").Str("component", "scouting").Logger()
	if opts.Mapper == nil {
		opts.Mapper = scouting.NewMapper()
	}
	if opts.DefaultMatchLimit <= 0 {
		opts.DefaultMatchLimit = 5
	}
	return &scoutingService{
		fetcher:      fetcher,
		store:        store,
		tracker:      tracker,
		mapper:       opts.Mapper,
		defaultLimit: opts.DefaultMatchLimit,
		historyLimit: opts.HistoryLimit,
		log:          l,
	}
}

func (s *scoutingService) FetchReport(ctx context.Context, boardID, teamName string, matchLimit int) (ScoutingResult, error) {
	start := time.Now()
	name, ferrs := validateTeamName(teamName)
	limit, lerrs := validateMatchLimit(matchLimit, s.defaultLimit)
	if err := newInvalidInput(append(ferrs, lerrs...)); err != nil {
		s.log.Debug().Str("team_raw", teamName).Int("match_limit", matchLimit).Msg("scouting validation failed")
		return ScoutingResult{}, err
	}
	if boardID = strings.TrimSpace(boardID); boardID == "" {
		boardID = DefaultBoard
	}

	fetchCtx, ticket := s.tracker.Begin(ctx, boardID)
	defer s.tracker.Finish(ticket)

	raw, err := s.fetcher.GenerateScoutingReport(fetchCtx, name, limit)
	if err != nil {
		// cancellation by a newer fetch is not a failure of this request
		if !s.tracker.IsCurrent(ticket) && ctx.Err() == nil {
			s.log.Info().Str("board", boardID).Str("team", name).Msg("scouting fetch superseded")
			return ScoutingResult{}, ErrSuperseded
		}
		s.log.Error().Err(err).Str("board", boardID).Str("team", name).Msg("scouting fetch failed")
		return ScoutingResult{}, err
	}

	report := s.mapper.Map(raw, name)
	res := ScoutingResult{
		Report:     report,
		Confidence: scouting.EstimateConfidence(&report),
		Insight:    scouting.GenerateInsight(&report),
	}
	if !s.tracker.IsCurrent(ticket) {
		s.log.Info().Str("board", boardID).Str("team", name).Msg("scouting result discarded, newer fetch in flight")
		return ScoutingResult{}, ErrSuperseded
	}

	snap := model.ReportSnapshot{TeamName: report.TeamName, Report: report, Confidence: *res.Confidence}
	if _, err := s.store.AppendReport(ctx, snap); err != nil {
		s.log.Warn().Err(err).Str("team", report.TeamName).Msg("report history append failed")
	}

	s.log.Info().
		Dur("took", time.Since(start)).
		Str("board", boardID).
		Str("team", report.TeamName).
		Int("matches", report.MatchesAnalyzed).
		Bool("limited", report.LimitedDataMode).
		Msg("scouting report ready")
	return res, nil
}

func (s *scoutingService) ListReports(ctx context.Context, teamName string, page repository.Page) (repository.PageResult[model.ReportSnapshot], error) {
	name, ferrs := validateTeamName(teamName)
	if page.Limit < 0 || page.Offset < 0 {
		ferrs = append(ferrs, FieldError{Field: "limit", Message: "must not be negative"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return repository.PageResult[model.ReportSnapshot]{}, err
	}
	if page.Limit == 0 && s.historyLimit > 0 {
		page.Limit = s.historyLimit
	}
	res, err := s.store.ListReports(ctx, name, page.Normalize())
	if err != nil {
		s.log.Error().Err(err).Str("team", name).Msg("list reports failed")
		return repository.PageResult[model.ReportSnapshot]{}, err
	}
	return res, nil
}

func (s *scoutingService) Analyze(report *model.ScoutingReport) (*model.Confidence, *model.Insight) {
	return scouting.EstimateConfidence(report), scouting.GenerateInsight(report)
}
