// Package server exposes candidate evaluation over HTTP.
package server

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/candidate"
	"github.com/spigell/recruiter/internal/llm"
)

// Evaluator runs one candidate evaluation.
type Evaluator interface {
	Run(ctx context.Context, details string) (candidate.State, error)
}

type evaluateRequest struct {
	CandidateDetails string `json:"candidate_details"`
}

type errorResponse struct {
	Error string           `json:"error"`
	State *candidate.State `json:"state,omitempty"`
}

// New builds the fiber app serving POST /evaluate and GET /graph.
func New(evaluator Evaluator, logger *zap.Logger) *fiber.App {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName: "recruiter",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			return c.Status(code).JSON(errorResponse{Error: err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(healthcheck.New())

	h := &handler{evaluator: evaluator, logger: logger}
	app.Post("/evaluate", h.evaluate)
	app.Get("/graph", h.graph)

	return app
}

type handler struct {
	evaluator Evaluator
	logger    *zap.Logger
}

func (h *handler) evaluate(c *fiber.Ctx) error {
	var req evaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}

	if strings.TrimSpace(req.CandidateDetails) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "candidate_details is required")
	}

	state, err := h.evaluator.Run(c.UserContext(), req.CandidateDetails)
	if err != nil {
		h.logger.Warn("evaluation failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(errorResponse{Error: err.Error(), State: &state})
	}

	return c.JSON(state)
}

func (h *handler) graph(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(candidate.Mermaid())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, llm.ErrServiceUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, llm.ErrModelInvocation):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
