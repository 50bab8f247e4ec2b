package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newOllamaServer(t *testing.T, handler func(w http.ResponseWriter, req generateRequestBody)) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != generatePath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var body generateRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		handler(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

type generateRequestBody struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

func TestClientGenerate(t *testing.T) {
	var got generateRequestBody
	srv := newOllamaServer(t, func(w http.ResponseWriter, req generateRequestBody) {
		got = req
		_, _ = w.Write([]byte(`{"model":"gemma3:12b","response":"Senior\n","done":true,"done_reason":"stop","eval_count":3,"total_duration":1500000000,"context":[1,2,3]}`))
	})

	client := NewClient(srv.URL+"/", "", time.Second, zap.NewNop())

	out, err := client.Generate(context.Background(), "categorize")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "Senior\n" {
		t.Fatalf("expected raw response text, got %q", out)
	}

	if got.Model != DefaultModel || got.Prompt != "categorize" || got.Stream {
		t.Fatalf("unexpected request payload: %+v", got)
	}

	if client.BaseURL() != srv.URL {
		t.Fatalf("expected trailing slash to be trimmed, got %q", client.BaseURL())
	}
}

func TestClientGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "error field", status: http.StatusNotFound, body: `{"error":"model \"gemma3:12b\" not found"}`, wantErr: `model "gemma3:12b" not found`},
		{name: "plain error body", status: http.StatusInternalServerError, body: `boom`, wantErr: "boom"},
		{name: "empty response", status: http.StatusOK, body: `{"response":"  ","done":true}`, wantErr: "empty response"},
		{name: "invalid json", status: http.StatusOK, body: `not json`, wantErr: "invalid json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newOllamaServer(t, func(w http.ResponseWriter, _ generateRequestBody) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := NewClient(srv.URL, "gemma3:12b", time.Second, nil).Generate(context.Background(), "prompt")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClientRejectsEmptyPrompt(t *testing.T) {
	if _, err := NewClient("http://localhost:1", "", time.Second, nil).Generate(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestClientProbeSendsTestPrompt(t *testing.T) {
	var prompt string
	srv := newOllamaServer(t, func(w http.ResponseWriter, req generateRequestBody) {
		prompt = req.Prompt
		_, _ = w.Write([]byte(`{"response":"ok","done":true}`))
	})

	if err := NewClient(srv.URL, "", time.Second, nil).Probe(context.Background()); err != nil {
		t.Fatalf("unexpected probe error: %v", err)
	}

	if prompt != probePrompt {
		t.Fatalf("expected probe prompt %q, got %q", probePrompt, prompt)
	}
}
