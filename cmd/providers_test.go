package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/llm/ollama"
)

func TestNewSourceProviders(t *testing.T) {
	ctx := context.Background()

	source, err := newSource(ctx, &AIConfig{Provider: " Ollama "}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := source.(*ollama.Source); !ok {
		t.Fatalf("expected ollama source, got %T", source)
	}

	if _, err := newSource(ctx, &AIConfig{Provider: "gemini"}, zap.NewNop()); err == nil {
		t.Fatal("expected error without gemini configuration")
	}

	_, err = newSource(ctx, &AIConfig{Provider: "gemini", Gemini: &GeminiConfig{}}, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "gemini api key is not configured") {
		t.Fatalf("expected missing api key error, got %v", err)
	}

	if _, err := newSource(ctx, &AIConfig{Provider: "openai"}, zap.NewNop()); err == nil {
		t.Fatal("expected unsupported provider error")
	}

	if _, err := newSource(ctx, nil, zap.NewNop()); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNewWorkflowUsesEvaluationConfig(t *testing.T) {
	cfg := &Config{
		AI:         &AIConfig{Provider: "ollama", Ollama: &OllamaConfig{Host: "http://ollama:11434"}},
		Evaluation: &EvaluationConfig{Role: "Data Engineer"},
	}

	if _, err := newWorkflow(context.Background(), cfg, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadDetailsPrefersFlag(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("details", "", "")
	cmd.Flags().String("file", "", "")

	if err := cmd.Flags().Set("details", "  5 years ML experience "); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := cmd.Flags().Set("file", "/does/not/exist.pdf"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	got, err := readDetails(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "5 years ML experience" {
		t.Fatalf("unexpected details: %q", got)
	}
}
