package ai

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadforge/prospector-cli/internal/config"
	"github.com/leadforge/prospector-cli/pkg/claude"
	"github.com/leadforge/prospector-cli/pkg/gemini"
)

// New builds the configured Generator, rate-limited per config.
func New(ctx context.Context, cfg config.AIConfig) (Generator, error) {
	var inner Generator

	switch cfg.Provider {
	case "", "gemini":
		if cfg.GeminiKey == "" {
			return nil, eris.New("ai: ai.gemini_api_key is required for the gemini provider")
		}
		client, err := gemini.NewClient(ctx, cfg.GeminiKey)
		if err != nil {
			return nil, err
		}
		inner = NewGeminiGenerator(client, cfg.GeminiModel, cfg.AnalysisModel)
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, eris.New("ai: ai.anthropic_api_key is required for the anthropic provider")
		}
		inner = NewClaudeGenerator(claude.NewClient(cfg.AnthropicKey), cfg.AnthropicModel)
	default:
		return nil, eris.Errorf("ai: unknown provider %q", cfg.Provider)
	}

	zap.L().Debug("ai: provider initialized",
		zap.String("provider", cfg.Provider),
		zap.Float64("rate_per_sec", cfg.RatePerSec),
	)
	return WithRateLimit(inner, cfg.RatePerSec, cfg.RateBurst), nil
}
