// Package backend is the client for the scouting backend that computes team,
// player and draft analysis. Every call is a single JSON POST with its own
// timeout; nothing is retried.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/maxviazov/tactical-scout-service/internal/config"
	"github.com/maxviazov/tactical-scout-service/internal/middleware"
	"github.com/maxviazov/tactical-scout-service/internal/model"
)

const (
	PathScoutingReport = "/generate-scouting-report"
	PathDraftAnalysis  = "/draft-risk-analysis"
	PathCoachChat      = "/coach-chat"
)

const (
	DefaultReportTimeout = 30 * time.Second
	DefaultDraftTimeout  = 15 * time.Second
	DefaultChatTimeout   = 60 * time.Second
)

var (
	ErrTimeout     = errors.New("backend: request timed out")
	ErrUnavailable = errors.New("backend: unavailable")
	ErrUpstream    = errors.New("backend: upstream error")
)

type Client struct {
	baseURL string
	cfg     config.BackendConfig
	http    *fasthttp.Client
	log     zerolog.Logger
}

func NewClient(cfg config.BackendConfig, logger zerolog.Logger) *Client {
	if cfg.ReportTimeout <= 0 {
		cfg.ReportTimeout = DefaultReportTimeout
	}
	if cfg.DraftTimeout <= 0 {
		cfg.DraftTimeout = DefaultDraftTimeout
	}
	if cfg.ChatTimeout <= 0 {
		cfg.ChatTimeout = DefaultChatTimeout
	}
	maxConns := cfg.MaxConnsPerHost
	if maxConns <= 0 {
		maxConns = 64
	}
	return &Client{
		baseURL: cfg.BaseURL,
		cfg:     cfg,
		http: &fasthttp.Client{
			Name:                "tactical-scout-service",
			MaxConnsPerHost:     maxConns,
			MaxIdleConnDuration: time.Minute,
		},
		log: logger.With().Str("module", "backend").Str("component", "client").Logger(),
	}
}

type scoutingRequest struct {
	TeamName   string `json:"team_name"`
	MatchLimit int    `json:"match_limit"`
}

type draftRequest struct {
	Draft []string `json:"draft"`
}

type chatRequest struct {
	Question       string `json:"question"`
	ScoutingReport any    `json:"scouting_report"`
}

// GenerateScoutingReport fetches raw analysis for teamName over its last matchLimit matches.
func (c *Client) GenerateScoutingReport(ctx context.Context, teamName string, matchLimit int) (*model.BackendPayload, error) {
	body := scoutingRequest{TeamName: teamName, MatchLimit: matchLimit}
	return doRequest[model.BackendPayload](ctx, c, PathScoutingReport, c.cfg.ReportTimeout, body)
}

func (c *Client) AnalyzeDraft(ctx context.Context, picks []string) (*model.DraftAnalysis, error) {
	return doRequest[model.DraftAnalysis](ctx, c, PathDraftAnalysis, c.cfg.DraftTimeout, draftRequest{Draft: picks})
}

// CoachChat asks the backend's chat engine. A nil report is sent as an empty object.
func (c *Client) CoachChat(ctx context.Context, question string, report *model.ScoutingReport) (*model.ChatReply, error) {
	body := chatRequest{Question: question, ScoutingReport: struct{}{}}
	if report != nil {
		body.ScoutingReport = report
	}
	return doRequest[model.ChatReply](ctx, c, PathCoachChat, c.cfg.ChatTimeout, body)
}

type result struct {
	status int
	body   []byte
	err    error
}

func doRequest[T any](ctx context.Context, c *Client, path string, timeout time.Duration, payload any) (*T, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	if id := middleware.GetRequestID(ctx); id != "" {
		req.Header.Set(middleware.HeaderRequestID, id)
	}
	req.SetBody(raw)

	// fasthttp has no context support; the goroutine owns req/resp until DoDeadline returns.
	done := make(chan result, 1)
	start := time.Now()
	go func() {
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)
		err := c.http.DoDeadline(req, resp, deadline)
		done <- result{status: resp.StatusCode(), body: append([]byte(nil), resp.Body()...), err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		c.log.Warn().Err(ctx.Err()).Str("path", path).Msg("backend call abandoned")
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, path)
		}
		return nil, ctx.Err()
	case res = <-done:
	}

	took := time.Since(start)
	if res.err != nil {
		c.log.Error().Err(res.err).Str("path", path).Dur("took", took).Msg("backend call failed")
		if errors.Is(res.err, fasthttp.ErrTimeout) || errors.Is(res.err, fasthttp.ErrDialTimeout) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, res.err)
	}

	c.log.Debug().Str("path", path).Int("status", res.status).Dur("took", took).Msg("backend call")
	if res.status < 200 || res.status > 299 {
		return nil, &StatusError{Path: path, Status: res.status}
	}

	// mistyped fields read as absent; only a body that is not JSON is rejected
	var out T
	if err := model.DecodeBackend(res.body, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: malformed body: %v", ErrUpstream, path, err)
	}
	return &out, nil
}

// StatusError reports a non-2xx answer. The body is not kept so it never reaches clients.
type StatusError struct {
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: %s returned status %d", e.Path, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrUpstream }
