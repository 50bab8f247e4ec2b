// Package llm defines the contract between workflow steps and language model backends.
package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrServiceUnavailable is returned when no model endpoint accepts a probe.
	ErrServiceUnavailable = errors.New("model service unavailable")
	// ErrModelInvocation matches every InvocationError.
	ErrModelInvocation = errors.New("model invocation failed")
)

// Generator sends a prompt to a model and returns its text completion.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Source hands out a Generator for each model call.
// Implementations may reconnect between calls.
type Source interface {
	Acquire(ctx context.Context) (Generator, error)
}

// Static returns a Source that always yields gen.
func Static(gen Generator) Source {
	return staticSource{gen: gen}
}

type staticSource struct {
	gen Generator
}

func (s staticSource) Acquire(context.Context) (Generator, error) {
	if s.gen == nil {
		return nil, fmt.Errorf("%w: generator is not configured", ErrServiceUnavailable)
	}
	return s.gen, nil
}

// InvocationError reports a failed model call for a workflow step.
type InvocationError struct {
	Step  string
	Model string
	Err   error
}

func (e *InvocationError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("%s: invoke model: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("%s: invoke model %s: %v", e.Step, e.Model, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrModelInvocation) hold for any InvocationError.
func (e *InvocationError) Is(target error) bool {
	return target == ErrModelInvocation
}
