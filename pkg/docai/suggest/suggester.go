package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"doc-intelligence-be/internal/pkg/logger"
	"doc-intelligence-be/pkg/docai"
	"doc-intelligence-be/pkg/docai/cascade"
	"doc-intelligence-be/pkg/docai/jsonx"
	"doc-intelligence-be/pkg/docai/summarize"
	"doc-intelligence-be/pkg/llm"

	"golang.org/x/sync/errgroup"
)

// Client pairs a provider id with a general-purpose LLM backend.
type Client struct {
	ID       string
	Provider llm.LLMProvider
}

const defaultCallTimeout = 60 * time.Second

// Substrings that mark a provider error as a quota/plan problem rather
// than a transient call failure.
var quotaMarkers = []string{"quota", "plan", "rate limit", "billing"}

// Suggester turns an ExtractionResult plus raw text into a
// SuggestionBundle. Each sub-task degrades independently; the bundle
// shape is always structurally complete.
type Suggester struct {
	clients     []Client // ordered, first success wins
	callTimeout time.Duration
	log         logger.ILogger
}

func NewSuggester(clients []Client, log logger.ILogger) *Suggester {
	return &Suggester{
		clients:     clients,
		callTimeout: defaultCallTimeout,
		log:         log,
	}
}

// Suggest runs step 1 (summary) and then the three independent step-2
// calls (autofill, email, tasks) concurrently. It never returns an
// error: total provider unavailability yields a degraded bundle built
// around the heuristic summary.
func (s *Suggester) Suggest(ctx context.Context, extraction *docai.ExtractionResult, rawText string) *docai.SuggestionBundle {
	fieldsJSON := marshalFields(extraction)

	summaryText, summarySource := s.buildSummary(ctx, rawText, fieldsJSON, extraction)
	summaryObj := map[string]any{
		"text":   summaryText,
		"source": summarySource,
	}

	if len(s.clients) == 0 {
		return docai.EmptyBundle(summaryObj)
	}

	bundle := docai.EmptyBundle(summaryObj)

	// The three step-2 calls share only the summary text as input, so
	// they run concurrently. Each degrades to its empty value on
	// failure instead of failing the bundle.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bundle.Autofill = s.Autofill(gctx, summaryText, fieldsJSON)
		return nil
	})
	g.Go(func() error {
		bundle.Email = s.Email(gctx, summaryText, fieldsJSON)
		return nil
	})
	g.Go(func() error {
		bundle.Tasks = s.Tasks(gctx, summaryText, fieldsJSON)
		return nil
	})
	_ = g.Wait()

	return bundle
}

// buildSummary is step 1: composite prompt of raw text + fields JSON
// through the provider cascade, ending in the local heuristic.
func (s *Suggester) buildSummary(ctx context.Context, rawText, fieldsJSON string, extraction *docai.ExtractionResult) (string, string) {
	text := rawText
	if text == "" {
		text = extraction.Text()
	}

	out, providerID, err := s.callCascade(ctx, fmt.Sprintf(summaryPrompt, text, fieldsJSON))
	if err == nil && strings.TrimSpace(out) != "" {
		return strings.TrimSpace(out), providerID
	}

	return summarize.Heuristic(text, extraction.Fields), "heuristic"
}

// Autofill maps extracted values onto the fixed target form schema.
// Also used standalone by the autofill re-run endpoint.
func (s *Suggester) Autofill(ctx context.Context, summaryText, fieldsJSON string) docai.AutofillSuggestion {
	empty := docai.AutofillSuggestion{
		FormMapping:   map[string]*string{},
		MissingFields: []string{},
	}

	out, _, err := s.callCascade(ctx, fmt.Sprintf(autofillPrompt, summaryText, fieldsJSON))
	if err != nil {
		return empty
	}

	var parsed docai.AutofillSuggestion
	if err := jsonx.DecodeInto(out, &parsed); err != nil {
		s.log.Warn("Suggester", "autofill response parse failed", map[string]interface{}{
			"error": err.Error(),
		})
		return empty
	}
	if parsed.FormMapping == nil {
		parsed.FormMapping = map[string]*string{}
	}
	if parsed.MissingFields == nil {
		parsed.MissingFields = []string{}
	}
	return parsed
}

// Email drafts a response/forward email for the document.
func (s *Suggester) Email(ctx context.Context, summaryText, fieldsJSON string) docai.EmailDraft {
	out, _, err := s.callCascade(ctx, fmt.Sprintf(emailPrompt, summaryText, fieldsJSON))
	if err != nil {
		return docai.EmailDraft{}
	}

	var parsed docai.EmailDraft
	if err := jsonx.DecodeInto(out, &parsed); err != nil {
		s.log.Warn("Suggester", "email response parse failed", map[string]interface{}{
			"error": err.Error(),
		})
		return docai.EmailDraft{}
	}
	return parsed
}

// Tasks derives a follow-up task list from the document.
func (s *Suggester) Tasks(ctx context.Context, summaryText, fieldsJSON string) docai.TaskList {
	empty := docai.TaskList{Tasks: []docai.TaskDraft{}}

	out, _, err := s.callCascade(ctx, fmt.Sprintf(tasksPrompt, summaryText, fieldsJSON))
	if err != nil {
		return empty
	}

	var parsed docai.TaskList
	if err := jsonx.DecodeInto(out, &parsed); err != nil {
		s.log.Warn("Suggester", "tasks response parse failed", map[string]interface{}{
			"error": err.Error(),
		})
		return empty
	}
	if parsed.Tasks == nil {
		parsed.Tasks = []docai.TaskDraft{}
	}
	return parsed
}

func (s *Suggester) callCascade(ctx context.Context, prompt string) (string, string, error) {
	if len(s.clients) == 0 {
		return "", "", docai.Errorf(docai.KindProviderUnavailable, "no suggestion providers configured")
	}

	steps := make([]cascade.Step[string], 0, len(s.clients))
	for _, client := range s.clients {
		provider := client.Provider
		steps = append(steps, cascade.Step[string]{
			ProviderID: client.ID,
			Run: func(ctx context.Context) (string, error) {
				callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
				defer cancel()
				out, err := provider.Generate(callCtx, prompt)
				if err != nil {
					return "", docai.WrapKind(classifyProviderError(err), err)
				}
				return out, nil
			},
		})
	}

	out, providerID, attempts, err := cascade.First(ctx, steps)
	for _, attempt := range attempts {
		if !attempt.OK {
			s.log.Warn("Suggester", "suggestion provider failed", map[string]interface{}{
				"provider": attempt.ProviderID, "kind": string(attempt.ErrKind),
			})
		}
	}
	if err != nil {
		return "", "", err
	}
	return out, providerID, nil
}

// classifyProviderError detects quota/plan errors by substring match on
// the provider's error message.
func classifyProviderError(err error) docai.ErrorKind {
	msg := strings.ToLower(err.Error())
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return docai.KindProviderUnavailable
		}
	}
	return docai.KindProviderCallFailed
}

func marshalFields(extraction *docai.ExtractionResult) string {
	if extraction == nil || len(extraction.Fields) == 0 {
		return "{}"
	}
	raw, err := json.Marshal(extraction.Fields)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
