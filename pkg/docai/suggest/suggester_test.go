package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"doc-intelligence-be/pkg/docai"
	"doc-intelligence-be/pkg/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// scriptedLLM answers each prompt by keyword match so one stub serves
// all four suggestion prompts.
type scriptedLLM struct {
	err     error
	answers map[string]string // keyword in prompt -> response
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", errors.New("empty history")
	}
	return s.Generate(ctx, history[len(history)-1].Content, options...)
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	for keyword, answer := range s.answers {
		if strings.Contains(prompt, keyword) {
			return answer, nil
		}
	}
	return "a generic summary of the document", nil
}

func extraction() *docai.ExtractionResult {
	return &docai.ExtractionResult{
		DocType: "invoice",
		Fields: map[string]any{
			"issuer": "ACME Corp",
		},
		RawText:    "Invoice from ACME Corp for services rendered, due at the end of the month.",
		Confidence: 0.95,
	}
}

func TestSuggestHappyPath(t *testing.T) {
	provider := &scriptedLLM{answers: map[string]string{
		"formMapping": `{"formMapping": {"company": "ACME Corp"}, "confidence": 0.8, "missingFields": ["phone"]}`,
		"subject":     `{"subject": "Invoice from ACME", "body": "Please find the invoice attached."}`,
		"tasks":       `{"tasks": [{"title": "Pay ACME invoice", "priority": "high"}]}`,
	}}
	s := NewSuggester([]Client{{ID: "stub", Provider: provider}}, nopLogger{})

	bundle := s.Suggest(context.Background(), extraction(), extraction().RawText)

	if bundle == nil {
		t.Fatal("bundle must never be nil")
	}
	if bundle.Summary["text"] == "" {
		t.Errorf("summary text missing")
	}
	if got := bundle.Autofill.FormMapping["company"]; got == nil || *got != "ACME Corp" {
		t.Errorf("autofill company = %v, want ACME Corp", got)
	}
	if len(bundle.Autofill.MissingFields) != 1 || bundle.Autofill.MissingFields[0] != "phone" {
		t.Errorf("missingFields = %v, want [phone]", bundle.Autofill.MissingFields)
	}
	if bundle.Email.Subject != "Invoice from ACME" {
		t.Errorf("email subject = %q", bundle.Email.Subject)
	}
	if len(bundle.Tasks.Tasks) != 1 || bundle.Tasks.Tasks[0].Title != "Pay ACME invoice" {
		t.Errorf("tasks = %+v, want one task", bundle.Tasks.Tasks)
	}
}

func TestSuggestDegradesWithoutProviders(t *testing.T) {
	s := NewSuggester(nil, nopLogger{})

	bundle := s.Suggest(context.Background(), extraction(), extraction().RawText)

	if bundle == nil {
		t.Fatal("bundle must never be nil")
	}
	if bundle.Summary["source"] != "heuristic" {
		t.Errorf("summary source = %v, want heuristic", bundle.Summary["source"])
	}
	if bundle.Summary["text"] == "" {
		t.Errorf("heuristic summary must not be empty")
	}
	if bundle.Autofill.FormMapping == nil || bundle.Autofill.MissingFields == nil {
		t.Errorf("autofill slots must be typed empty values, got %+v", bundle.Autofill)
	}
	if bundle.Tasks.Tasks == nil {
		t.Errorf("tasks slot must be a typed empty list")
	}
}

func TestSuggestDegradesOnProviderFailure(t *testing.T) {
	provider := &scriptedLLM{err: errors.New("you exceeded your current quota")}
	s := NewSuggester([]Client{{ID: "stub", Provider: provider}}, nopLogger{})

	bundle := s.Suggest(context.Background(), extraction(), extraction().RawText)

	if bundle.Summary["source"] != "heuristic" {
		t.Errorf("summary source = %v, want heuristic fallback", bundle.Summary["source"])
	}
	if len(bundle.Autofill.FormMapping) != 0 {
		t.Errorf("autofill must degrade to empty mapping, got %v", bundle.Autofill.FormMapping)
	}
	if bundle.Email.Subject != "" || bundle.Email.Body != "" {
		t.Errorf("email must degrade to empty draft, got %+v", bundle.Email)
	}
	if len(bundle.Tasks.Tasks) != 0 {
		t.Errorf("tasks must degrade to empty list, got %+v", bundle.Tasks.Tasks)
	}
}

func TestAutofillParseFailureDegrades(t *testing.T) {
	provider := &scriptedLLM{answers: map[string]string{
		"formMapping": "I am not JSON, sorry about that.",
	}}
	s := NewSuggester([]Client{{ID: "stub", Provider: provider}}, nopLogger{})

	got := s.Autofill(context.Background(), "summary", "{}")
	if got.FormMapping == nil || len(got.FormMapping) != 0 {
		t.Errorf("FormMapping = %v, want typed empty map", got.FormMapping)
	}
	if got.MissingFields == nil {
		t.Errorf("MissingFields must be a typed empty slice")
	}
	if got.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", got.Confidence)
	}
}

func TestEmailHandlesFencedJSON(t *testing.T) {
	provider := &scriptedLLM{answers: map[string]string{
		"subject": "```json\n{\"subject\": \"Re: contract\", \"body\": \"Thanks.\"}\n```",
	}}
	s := NewSuggester([]Client{{ID: "stub", Provider: provider}}, nopLogger{})

	got := s.Email(context.Background(), "summary", "{}")
	if got.Subject != "Re: contract" || got.Body != "Thanks." {
		t.Errorf("Email = %+v, want fenced JSON parsed", got)
	}
}

func TestClassifyProviderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want docai.ErrorKind
	}{
		{name: "quota", err: errors.New("You exceeded your current QUOTA"), want: docai.KindProviderUnavailable},
		{name: "rate limit", err: errors.New("429 rate limit reached"), want: docai.KindProviderUnavailable},
		{name: "billing", err: errors.New("billing account disabled"), want: docai.KindProviderUnavailable},
		{name: "plan", err: errors.New("upgrade your plan"), want: docai.KindProviderUnavailable},
		{name: "transient", err: errors.New("connection reset by peer"), want: docai.KindProviderCallFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyProviderError(tt.err); got != tt.want {
				t.Errorf("classifyProviderError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
