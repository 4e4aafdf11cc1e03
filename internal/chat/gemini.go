package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	genai "google.golang.org/genai"

	"github.com/maxviazov/tactical-scout-service/internal/config"
	"github.com/maxviazov/tactical-scout-service/internal/model"
)

const systemPrompt = "You are a coach assistant for esports. Use ONLY the provided scouting report JSON to answer. " +
	"Be concise and specific. If the report does not contain relevant data, say so."

var errEmptyCompletion = errors.New("model returned no candidates")

// Generator completes a single system+user prompt.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// GenaiGenerator is a thin wrapper around the official genai client.
type GenaiGenerator struct {
	cli       *genai.Client
	model     string
	temp      float32
	maxTokens int32
}

func NewGenaiGenerator(ctx context.Context, cfg config.GeminiConfig) (*GenaiGenerator, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenaiGenerator{cli: cli, model: cfg.Model, temp: cfg.Temperature, maxTokens: cfg.MaxOutputTokens}, nil
}

func (g *GenaiGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: user}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
			Temperature:       genai.Ptr(g.temp),
			MaxOutputTokens:   g.maxTokens,
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errEmptyCompletion
	}
	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}

// GeminiResponder asks an LLM directly, grounding it on the report JSON.
type GeminiResponder struct {
	gen     Generator
	timeout time.Duration
	log     zerolog.Logger
}

// NewGeminiResponder bounds every completion by timeout; zero leaves only the caller's deadline.
func NewGeminiResponder(gen Generator, timeout time.Duration, logger zerolog.Logger) *GeminiResponder {
	return &GeminiResponder{
		gen:     gen,
		timeout: timeout,
		log:     logger.With().Str("module", "chat").Str("component", "gemini").Logger(),
	}
}

func (g *GeminiResponder) Respond(ctx context.Context, question string, report *model.ScoutingReport) (Answer, error) {
	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := g.gen.Generate(callCtx, systemPrompt, UserPrompt(question, report))
	if err != nil {
		if ctx.Err() != nil {
			return Answer{}, ctx.Err()
		}
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			g.log.Warn().Dur("timeout", g.timeout).Msg("gemini completion timed out")
			return Answer{Provider: ProviderGemini, Error: timeoutMessage}, nil
		}
		g.log.Warn().Err(err).Msg("gemini completion failed")
		return Answer{Provider: ProviderGemini, Error: "API request failed: " + err.Error()}, nil
	}
	return Answer{Text: text, Provider: ProviderGemini}, nil
}

// UserPrompt embeds the report (or {} when absent) ahead of the question.
func UserPrompt(question string, report *model.ScoutingReport) string {
	var payload any = struct{}{}
	if report != nil {
		payload = report
	}
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		raw = []byte("{}")
	}
	return fmt.Sprintf("Scouting report:\n%s\n\nQuestion: %s", raw, question)
}
