package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"doc-intelligence-be/pkg/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// stubLLM shrinks its input to a fixed ratio, or fails.
type stubLLM struct {
	ratio float64
	err   error
	calls int
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", errors.New("empty history")
	}
	return s.Generate(ctx, history[len(history)-1].Content, options...)
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	n := int(float64(utf8.RuneCountInString(prompt)) * s.ratio)
	if n < 1 {
		n = 1
	}
	return strings.Repeat("s", n), nil
}

func TestSummarizeDirectCall(t *testing.T) {
	provider := &stubLLM{ratio: 0.1}
	s := NewSummarizer([]Client{{ID: "stub", Provider: provider}}, 100, 10, 3, nopLogger{})

	out, err := s.Summarize(context.Background(), strings.Repeat("a", 80))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == "" {
		t.Fatal("empty summary")
	}
	if provider.calls != 1 {
		t.Errorf("calls = %d, want 1 for text within the limit", provider.calls)
	}
}

func TestSummarizeChunksLongInput(t *testing.T) {
	provider := &stubLLM{ratio: 0.05}
	s := NewSummarizer([]Client{{ID: "stub", Provider: provider}}, 100, 10, 5, nopLogger{})

	out, err := s.Summarize(context.Background(), strings.Repeat("a", 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if utf8.RuneCountInString(out) > 100 {
		t.Errorf("summary length = %d, want bounded by 100", utf8.RuneCountInString(out))
	}
	if provider.calls < 2 {
		t.Errorf("calls = %d, want one call per chunk at least", provider.calls)
	}
}

func TestSummarizeTerminatesOnNonShrinkingProvider(t *testing.T) {
	// A provider that barely shrinks would recurse forever without the
	// depth ceiling; the ceiling must force termination with bounded
	// output.
	provider := &stubLLM{ratio: 0.95}
	s := NewSummarizer([]Client{{ID: "stub", Provider: provider}}, 100, 10, 3, nopLogger{})

	out, err := s.Summarize(context.Background(), strings.Repeat("a", 5000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Truncate appends an ellipsis past the bound.
	if utf8.RuneCountInString(out) > 101 {
		t.Errorf("summary length = %d, want bounded near 100", utf8.RuneCountInString(out))
	}
}

func TestSummarizeAllChunksFail(t *testing.T) {
	provider := &stubLLM{err: errors.New("provider down")}
	s := NewSummarizer([]Client{{ID: "stub", Provider: provider}}, 100, 10, 3, nopLogger{})

	_, err := s.Summarize(context.Background(), strings.Repeat("a", 500))
	if err == nil {
		t.Fatal("expected error when every chunk fails")
	}
}

func TestSummarizeNoClients(t *testing.T) {
	s := NewSummarizer(nil, 100, 10, 3, nopLogger{})
	_, err := s.Summarize(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error with no providers configured")
	}
}

func TestSummarizeCascadeFallback(t *testing.T) {
	down := &stubLLM{err: errors.New("503")}
	up := &stubLLM{ratio: 0.1}
	s := NewSummarizer([]Client{
		{ID: "down", Provider: down},
		{ID: "up", Provider: up},
	}, 100, 10, 3, nopLogger{})

	out, err := s.Summarize(context.Background(), strings.Repeat("a", 50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out == "" {
		t.Fatal("empty summary")
	}
	if down.calls != 1 || up.calls != 1 {
		t.Errorf("calls = %d/%d, want failed primary then fallback", down.calls, up.calls)
	}
}

func TestHeuristic(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fields   map[string]any
		contains []string
	}{
		{
			name: "first substantial sentences",
			text: "Short. This is the first substantial sentence of the document. And here is another one with enough length. A third one that also passes the bar easily. A fourth that must not appear in any case.",
			contains: []string{
				"This is the first substantial sentence of the document.",
				"A third one that also passes the bar easily.",
			},
		},
		{
			name: "field clauses appended",
			text: "This document describes an outstanding invoice balance.",
			fields: map[string]any{
				"issuer":       "ACME Corp",
				"invoice_date": "2024-01-02",
				"amount_due": map[string]any{
					"value":    42.5,
					"currency": "USD",
				},
			},
			contains: []string{"Issued by ACME Corp.", "Amount: 42.5 USD.", "Dated 2024-01-02."},
		},
		{
			name:     "no sentences falls back to snippet",
			text:     "short words only",
			contains: []string{"short words only"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Heuristic(tt.text, tt.fields)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Heuristic() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestHeuristicUnboundedTextIsTruncated(t *testing.T) {
	long := strings.Repeat("x", 1000) // no sentence breaks
	got := Heuristic(long, nil)
	if utf8.RuneCountInString(got) > fallbackSnippet+1 {
		t.Errorf("fallback snippet length = %d, want bounded to %d", utf8.RuneCountInString(got), fallbackSnippet)
	}
}
