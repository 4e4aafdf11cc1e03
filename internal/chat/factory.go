package chat

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/tactical-scout-service/internal/config"
)

// NewResponder builds the engine selected by cfg.Mode. client backs the remote and hybrid modes.
func NewResponder(ctx context.Context, cfg config.ChatConfig, client CoachClient, logger zerolog.Logger) (Responder, error) {
	switch cfg.Mode {
	case config.ChatModeLocal:
		return LocalResponder{}, nil
	case config.ChatModeRemote:
		return NewRemoteResponder(client, logger), nil
	case config.ChatModeGemini:
		gen, err := NewGenaiGenerator(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return NewGeminiResponder(gen, cfg.Gemini.Timeout, logger), nil
	case config.ChatModeHybrid, "":
		return NewHybridResponder(NewRemoteResponder(client, logger)), nil
	default:
		return nil, fmt.Errorf("unknown chat mode %q", cfg.Mode)
	}
}
