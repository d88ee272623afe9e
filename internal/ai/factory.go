package ai

import (
	"fmt"

	"github.com/mwhitfield/lendintake/internal/ai/ollama"
	"github.com/mwhitfield/lendintake/internal/ai/openai"
	"github.com/mwhitfield/lendintake/internal/config"
	"github.com/mwhitfield/lendintake/pkg/models"
)

// NewProvider constructs the appropriate text provider based on config.
// Called once at server startup.
func NewProvider(cfg config.AIConfig) (models.TextProvider, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewProvider(cfg.OpenAI), nil
	case "ollama":
		return ollama.NewProvider(cfg.Ollama), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of openai, ollama", cfg.Provider)
	}
}
