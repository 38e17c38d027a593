package summarize

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"doc-intelligence-be/internal/pkg/logger"
	"doc-intelligence-be/pkg/docai"
	"doc-intelligence-be/pkg/docai/cascade"
	"doc-intelligence-be/pkg/docai/chunk"
	"doc-intelligence-be/pkg/docai/sanitize"
	"doc-intelligence-be/pkg/llm"
)

// Client pairs a provider id with an LLM backend for the summarization
// cascade.
type Client struct {
	ID       string
	Provider llm.LLMProvider
}

const (
	// DefaultMaxChars is the per-call provider input limit.
	DefaultMaxChars = 8000
	// DefaultOverlap is the chunk overlap used above the limit.
	DefaultOverlap = 500
	// DefaultMaxDepth bounds the recursive merge against a summarizer
	// that fails to shrink its input.
	DefaultMaxDepth = 5
)

const (
	fullPrompt  = "Summarize the following document in a concise executive summary of a few sentences. Respond with the summary only.\n\n"
	shortPrompt = "Summarize the following text in at most two short sentences. Respond with the summary only.\n\n"
)

// Summarizer produces a bounded-length executive summary for
// arbitrarily long input via chunked, recursive summarization over an
// ordered provider cascade.
type Summarizer struct {
	clients  []Client
	maxChars int
	overlap  int
	maxDepth int
	log      logger.ILogger
}

func NewSummarizer(clients []Client, maxChars, overlap, maxDepth int, log logger.ILogger) *Summarizer {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if overlap < 0 || overlap >= maxChars {
		overlap = DefaultOverlap
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Summarizer{
		clients:  clients,
		maxChars: maxChars,
		overlap:  overlap,
		maxDepth: maxDepth,
		log:      log,
	}
}

// Summarize returns a summary of text, or an error when every provider
// failed for every chunk. Callers fall back to Heuristic on error.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if len(s.clients) == 0 {
		return "", docai.Errorf(docai.KindProviderUnavailable, "no summarization providers configured")
	}
	return s.summarize(ctx, text, 0)
}

func (s *Summarizer) summarize(ctx context.Context, text string, depth int) (string, error) {
	if depth >= s.maxDepth {
		// Pathological summarizer that fails to shrink its input:
		// give up on recursion and bound the text directly.
		s.log.Warn("Summarizer", "recursion depth ceiling reached, truncating", map[string]interface{}{
			"depth": depth,
		})
		return sanitize.Truncate(text, s.maxChars), nil
	}

	if utf8.RuneCountInString(text) <= s.maxChars {
		return s.callCascade(ctx, text, false)
	}

	chunks := chunk.Split(text, s.maxChars, s.overlap)
	parts := make([]string, 0, len(chunks))
	for i, c := range chunks {
		// Short mode keeps the merged text from growing back past the
		// provider limit too quickly.
		part, err := s.callCascade(ctx, c.Text, true)
		if err != nil {
			// A failed chunk is skipped, not retried.
			s.log.Warn("Summarizer", "chunk summarization failed, skipping", map[string]interface{}{
				"chunk": i, "error": err.Error(),
			})
			continue
		}
		parts = append(parts, part)
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("summarization failed for all %d chunks", len(chunks))
	}

	merged := strings.Join(parts, "\n\n")
	if utf8.RuneCountInString(merged) > s.maxChars {
		return s.summarize(ctx, merged, depth+1)
	}
	return merged, nil
}

// callCascade runs one summarization request through the ordered
// provider list, first success wins.
func (s *Summarizer) callCascade(ctx context.Context, text string, short bool) (string, error) {
	prompt := fullPrompt
	if short {
		prompt = shortPrompt
	}

	steps := make([]cascade.Step[string], 0, len(s.clients))
	for _, client := range s.clients {
		provider := client.Provider
		steps = append(steps, cascade.Step[string]{
			ProviderID: client.ID,
			Run: func(ctx context.Context) (string, error) {
				out, err := provider.Generate(ctx, prompt+text)
				if err != nil {
					return "", docai.WrapKind(docai.KindProviderCallFailed, err)
				}
				out = strings.TrimSpace(out)
				if out == "" {
					return "", docai.Errorf(docai.KindEmptyExtraction, "empty summary")
				}
				return out, nil
			},
		})
	}

	out, _, attempts, err := cascade.First(ctx, steps)
	for _, attempt := range attempts {
		if !attempt.OK {
			s.log.Warn("Summarizer", "summarization provider failed", map[string]interface{}{
				"provider": attempt.ProviderID, "kind": string(attempt.ErrKind),
			})
		}
	}
	if err != nil {
		return "", fmt.Errorf("summarization cascade: %w", err)
	}
	return out, nil
}
