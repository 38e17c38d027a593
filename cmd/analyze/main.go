package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"doc-intelligence-be/internal/config"
	"doc-intelligence-be/internal/pkg/logger"
	"doc-intelligence-be/pkg/docai"
	"doc-intelligence-be/pkg/docai/extract"
	"doc-intelligence-be/pkg/docai/suggest"
	"doc-intelligence-be/pkg/docai/summarize"
	"doc-intelligence-be/pkg/llm/factory"
	"doc-intelligence-be/pkg/llm/gemini"
	"doc-intelligence-be/pkg/llm/huggingface"

	"github.com/fatih/color"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func main() {
	if len(os.Args) < 2 {
		color.Red("Usage: analyze <file>")
		os.Exit(1)
	}
	path := os.Args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		color.Red("Failed to read %s: %v", path, err)
		os.Exit(1)
	}

	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)

	var visionClients []extract.VisionClient
	if cfg.Keys.GoogleGemini != "" {
		visionClients = append(visionClients, extract.VisionClient{
			ID:         "gemini:" + cfg.Ai.VisionPrimaryModel,
			Provider:   gemini.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.VisionPrimaryModel),
			Confidence: 0.95,
		})
	}
	if cfg.Keys.HuggingFace != "" {
		visionClients = append(visionClients, extract.VisionClient{
			ID:         "huggingface:" + cfg.Ai.VisionSecondaryModel,
			Provider:   huggingface.NewHuggingFaceProvider(cfg.Keys.HuggingFace, "", cfg.Ai.VisionSecondaryModel),
			Confidence: 0.85,
		})
	}

	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.OllamaBaseURL, cfg.Keys.GoogleGemini)
	if err != nil {
		color.Red("Failed to initialize LLM provider: %v", err)
		os.Exit(1)
	}

	textClients := []summarize.Client{
		{ID: cfg.Ai.LLMProvider + ":" + cfg.Ai.LLMModel, Provider: llmProvider},
	}
	suggestClients := []suggest.Client{
		{ID: cfg.Ai.LLMProvider + ":" + cfg.Ai.LLMModel, Provider: llmProvider},
	}

	extractor := extract.NewExtractor(visionClients, sysLogger)
	summarizer := summarize.NewSummarizer(textClients, cfg.Ai.SummaryMaxChars, cfg.Ai.ChunkOverlap, cfg.Ai.SummaryMaxDepth, sysLogger)
	suggester := suggest.NewSuggester(suggestClients, sysLogger)

	ctx := context.Background()
	doc := docai.Document{
		Data:     data,
		Filename: filepath.Base(path),
	}

	color.Cyan("🚀 Analyzing %s (%d bytes)\n", doc.Filename, len(data))

	color.Yellow("\n[1] Extraction")
	extraction, attempts, err := extractor.Extract(ctx, doc)
	if err != nil {
		color.Red("Extraction failed: %v", err)
		os.Exit(1)
	}
	for _, a := range attempts {
		status := "failed"
		if a.OK {
			status = "ok"
		}
		fmt.Printf("  attempt %-40s %s (%s)\n", a.ProviderID, status, a.Latency)
	}
	color.Green("docType=%s confidence=%.2f fields=%d", extraction.DocType, extraction.Confidence, len(extraction.Fields))
	prettyPrint(extraction.Fields)

	color.Yellow("\n[2] Summary")
	summary, err := summarizer.Summarize(ctx, extraction.Text())
	if err != nil {
		color.Red("Summarizer failed (%v), using heuristic", err)
		summary = summarize.Heuristic(extraction.Text(), extraction.Fields)
	}
	fmt.Println(summary)

	color.Yellow("\n[3] Suggestions")
	bundle := suggester.Suggest(ctx, extraction, extraction.Text())
	prettyPrint(bundle)

	color.Cyan("\n✅ Done")
}
