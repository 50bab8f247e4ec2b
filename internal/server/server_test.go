package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spigell/recruiter/internal/candidate"
	"github.com/spigell/recruiter/internal/llm"
)

type stubEvaluator struct {
	state   candidate.State
	err     error
	details string
}

func (s *stubEvaluator) Run(_ context.Context, details string) (candidate.State, error) {
	s.details = details
	s.state.CandidateDetails = details
	return s.state, s.err
}

func post(t *testing.T, evaluator Evaluator, body string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := New(evaluator, nil).Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	return resp, data
}

func TestEvaluate(t *testing.T) {
	stub := &stubEvaluator{state: candidate.State{LevelExperience: "Senior", Match: "yes", Outcome: candidate.OutcomeInterview}}

	resp, data := post(t, stub, `{"candidate_details":"5 years ML experience"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, data)
	}

	var got candidate.State
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if got.Outcome != candidate.OutcomeInterview || got.CandidateDetails != "5 years ML experience" {
		t.Fatalf("unexpected state: %+v", got)
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "missing details", body: `{"candidate_details":"  "}`, status: http.StatusBadRequest},
		{name: "invalid body", body: `{`, status: http.StatusBadRequest},
		{name: "service unavailable", body: `{"candidate_details":"d"}`, err: llm.ErrServiceUnavailable, status: http.StatusServiceUnavailable},
		{name: "model failure", body: `{"candidate_details":"d"}`, err: &llm.InvocationError{Step: "evaluate_skills", Err: io.ErrUnexpectedEOF}, status: http.StatusBadGateway},
		{name: "other failure", body: `{"candidate_details":"d"}`, err: candidate.ErrFieldAlreadySet, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := post(t, &stubEvaluator{err: tt.err}, tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, resp.StatusCode, data)
			}

			var body errorResponse
			if err := json.Unmarshal(data, &body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Error == "" {
				t.Fatalf("expected error message in body")
			}
		})
	}
}

func TestGraph(t *testing.T) {
	resp, err := New(&stubEvaluator{}, nil).Test(httptest.NewRequest(http.MethodGet, "/graph", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(data), "flowchart TD") {
		t.Fatalf("unexpected graph body: %s", data)
	}
}
