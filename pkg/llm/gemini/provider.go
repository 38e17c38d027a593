package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"doc-intelligence-be/pkg/llm"

	"golang.org/x/time/rate"
)

type GeminiProvider struct {
	apiKey  string
	model   string
	client  *http.Client
	limiter *rate.Limiter
}

// Ensure GeminiProvider implements both contracts
var _ llm.LLMProvider = &GeminiProvider{}
var _ llm.VisionProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiProvider{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		// Free-tier friendly: burst of 4, ~2 requests/second sustained.
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}
}

// --- Request/Response structs (Internal to this package) ---

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type geminiContent struct {
	Parts []*geminiPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []*geminiContent        `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

// --- Interface Implementation ---

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{Model: p.model}
	for _, opt := range opts {
		opt(options)
	}

	contents := make([]*geminiContent, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		// Gemini uses "model" where OpenAI-style APIs use "assistant"
		if role == "assistant" {
			role = "model"
		}
		contents = append(contents, &geminiContent{
			Parts: []*geminiPart{{Text: msg.Content}},
			Role:  role,
		})
	}

	return p.call(ctx, options, contents)
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (p *GeminiProvider) GenerateWithFile(ctx context.Context, prompt string, data []byte, mimeType string, opts ...llm.Option) (string, error) {
	options := &llm.Options{Model: p.model}
	for _, opt := range opts {
		opt(options)
	}

	contents := []*geminiContent{
		{
			Parts: []*geminiPart{
				{InlineData: &geminiInlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(data),
				}},
				{Text: prompt},
			},
			Role: "user",
		},
	}

	return p.call(ctx, options, contents)
}

func (p *GeminiProvider) call(ctx context.Context, options *llm.Options, contents []*geminiContent) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("gemini api key not configured")
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	payload := geminiRequest{Contents: contents}
	if options.Temperature > 0 || options.MaxTokens > 0 {
		payload.GenerationConfig = &geminiGenerationConfig{
			Temperature:     options.Temperature,
			MaxOutputTokens: options.MaxTokens,
		}
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	model := p.model
	if options.Model != "" {
		model = options.Model
	}
	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent",
		model,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"gemini error: status %d, body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates from gemini")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}
