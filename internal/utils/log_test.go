package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "Senior",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "yes",
			limit:  10,
			expect: "yes",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "5 years ML experience",
			limit:  7,
			expect: "5 years...",
		},
		{
			name:   "counts runes not bytes",
			input:  "Опыт работы",
			limit:  4,
			expect: "Опыт...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	t.Parallel()

	if got := FirstNonEmpty("", "  ", " http://ollama:11434 ", "other"); got != "http://ollama:11434" {
		t.Fatalf("unexpected value: %q", got)
	}

	if got := FirstNonEmpty(); got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}
}
