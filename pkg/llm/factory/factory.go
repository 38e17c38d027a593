package factory

import (
	"fmt"

	"doc-intelligence-be/pkg/llm"
	"doc-intelligence-be/pkg/llm/gemini"
	"doc-intelligence-be/pkg/llm/huggingface"
	"doc-intelligence-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "gemini":
		return gemini.NewGeminiProvider(apiKey, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
