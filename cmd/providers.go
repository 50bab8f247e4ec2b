package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/candidate"
	"github.com/spigell/recruiter/internal/llm"
	"github.com/spigell/recruiter/internal/llm/gemini"
	"github.com/spigell/recruiter/internal/llm/ollama"
	"github.com/spigell/recruiter/internal/logger"
	"github.com/spigell/recruiter/internal/secrets"
)

func newSource(ctx context.Context, cfg *AIConfig, log *zap.Logger) (llm.Source, error) {
	if cfg == nil {
		return nil, fmt.Errorf("ai configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", "ollama":
		if cfg.Ollama == nil {
			cfg.Ollama = &OllamaConfig{}
		}

		resolver := ollama.NewResolver(ollama.ResolverConfig{
			Override: cfg.Ollama.Host,
			Timeout:  cfg.Ollama.Timeout,
		}, logger.WithModel(log, "ollama", cfg.Ollama.Model, ""))

		return ollama.NewSource(resolver, cfg.Ollama.Model), nil
	case "gemini":
		if cfg.Gemini == nil {
			return nil, fmt.Errorf("gemini configuration is required when provider is gemini")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
		}

		gen, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, logger.WithModel(log, "gemini", cfg.Gemini.Model, ""))
		if err != nil {
			return nil, err
		}

		return llm.Static(gen), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func newWorkflow(ctx context.Context, config *Config, log *zap.Logger) (*candidate.Workflow, error) {
	source, err := newSource(ctx, config.AI, log)
	if err != nil {
		return nil, err
	}

	opts := candidate.Options{MaxLogLength: config.AI.MaxLogLength}
	if config.Evaluation != nil {
		opts.Role = config.Evaluation.Role
	}

	return candidate.NewWorkflow(source, opts, log), nil
}

// setup builds the logger and loads the configuration shared by commands.
func setup(json, debug bool) (*zap.Logger, *Config, error) {
	log, err := logger.New(json, debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return log, nil, fmt.Errorf("getting a config: %w", err)
	}

	if config == nil || config.AI == nil {
		return log, nil, fmt.Errorf("ai configuration is required")
	}

	if config.Evaluation == nil {
		config.Evaluation = &EvaluationConfig{}
	}

	return log, config, nil
}
