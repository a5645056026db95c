package providers

import (
	"github.com/samber/do/v2"

	"github.com/distillapp/distill-server/internal/config"
	"github.com/distillapp/distill-server/internal/generation"
	"github.com/distillapp/distill-server/internal/logger"
)

// ProvideGenerator provides the infographic generation backend.
func ProvideGenerator(i do.Injector) (generation.Generator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Generation.APIKey == "" {
		log.Warn("No generation API key configured - paper submissions will fail until OPENAI_API_KEY is set")
	} else {
		log.Info("Generation backend configured",
			"base_url", cfg.Generation.BaseURL,
			"model", cfg.Generation.Model,
		)
	}

	return generation.NewOpenAIClient(cfg.Generation, log.Logger), nil
}
