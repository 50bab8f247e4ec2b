// Package ollama talks to an Ollama model server and discovers a reachable one.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/utils"
)

const (
	// DefaultModel is the model used by the evaluation steps.
	DefaultModel = "gemma3:12b"

	generatePath   = "/api/generate"
	probePrompt    = "test"
	defaultTimeout = 2 * time.Minute
	maxErrorLength = 200
)

// Client is a Generator bound to a single Ollama server and model.
type Client struct {
	http    *resty.Client
	baseURL string
	model   string
	logger  *zap.Logger
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model         string `mapstructure:"model"`
	Response      string `mapstructure:"response"`
	Done          bool   `mapstructure:"done"`
	DoneReason    string `mapstructure:"done_reason"`
	EvalCount     int    `mapstructure:"eval_count"`
	TotalDuration int64  `mapstructure:"total_duration"`
}

// NewClient creates a client for baseURL. A zero timeout falls back to two minutes.
func NewClient(baseURL, model string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")

	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		baseURL: baseURL,
		model:   model,
		logger:  logger,
	}
}

// Generate sends a non-streaming completion request and returns the raw response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.http == nil {
		return "", errors.New("ollama client is not initialized")
	}

	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(generateRequest{Model: c.model, Prompt: prompt, Stream: false}).
		Post(generatePath)
	if err != nil {
		return "", fmt.Errorf("ollama request to %s: %w", c.baseURL, err)
	}

	body := resp.Body()
	if resp.IsError() {
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = utils.TruncateForLog(string(body), maxErrorLength)
		}
		return "", fmt.Errorf("ollama at %s: bad status %s: %s", c.baseURL, resp.Status(), msg)
	}

	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("ollama at %s returned invalid json: %s", c.baseURL, utils.TruncateForLog(string(body), maxErrorLength))
	}

	var out generateResponse
	if err := mapstructure.Decode(gjson.ParseBytes(body).Value(), &out); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}

	if strings.TrimSpace(out.Response) == "" {
		return "", fmt.Errorf("ollama at %s returned empty response", c.baseURL)
	}

	c.logger.Debug("ollama generate completed",
		zap.String("model", out.Model),
		zap.Bool("done", out.Done),
		zap.String("done_reason", out.DoneReason),
		zap.Int("eval_count", out.EvalCount),
		zap.Duration("total_duration", time.Duration(out.TotalDuration)),
	)

	return out.Response, nil
}

// Probe issues a trivial completion to check that the server answers for the model.
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.Generate(ctx, probePrompt)
	return err
}

// Model returns the model name used for completions.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// BaseURL returns the server address the client is bound to.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}
