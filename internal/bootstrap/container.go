package bootstrap

import (
	"log"
	"strings"

	"doc-intelligence-be/internal/config"
	"doc-intelligence-be/internal/controller"
	"doc-intelligence-be/internal/pkg/logger"
	"doc-intelligence-be/internal/pkg/mailer"
	"doc-intelligence-be/internal/repository/implementation"
	"doc-intelligence-be/internal/service"
	"doc-intelligence-be/pkg/docai/catalog"
	"doc-intelligence-be/pkg/docai/extract"
	"doc-intelligence-be/pkg/docai/suggest"
	"doc-intelligence-be/pkg/docai/summarize"
	"doc-intelligence-be/pkg/embedding"
	"doc-intelligence-be/pkg/llm/factory"
	"doc-intelligence-be/pkg/llm/gemini"
	"doc-intelligence-be/pkg/llm/huggingface"
	"doc-intelligence-be/pkg/llm/ollama"

	pktNats "doc-intelligence-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

// Extraction confidence policy per provider tier.
const (
	visionPrimaryConfidence   = 0.95
	visionSecondaryConfidence = 0.85
)

type Container struct {
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (optional; the pipeline works without it)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		llmAPIKey(cfg),
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Vision cascade: Gemini first, HuggingFace as fallback. Tiers are
	// only registered when their API key is configured.
	var visionClients []extract.VisionClient
	if cfg.Keys.GoogleGemini != "" {
		visionClients = append(visionClients, extract.VisionClient{
			ID:         "gemini:" + cfg.Ai.VisionPrimaryModel,
			Provider:   gemini.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.VisionPrimaryModel),
			Confidence: visionPrimaryConfidence,
		})
	}
	if cfg.Keys.HuggingFace != "" {
		visionClients = append(visionClients, extract.VisionClient{
			ID:         "huggingface:" + cfg.Ai.VisionSecondaryModel,
			Provider:   huggingface.NewHuggingFaceProvider(cfg.Keys.HuggingFace, "", cfg.Ai.VisionSecondaryModel),
			Confidence: visionSecondaryConfidence,
		})
	}

	// Text LLM cascade shared by summarization and suggestions: the
	// configured provider first, local Ollama as fallback.
	textClients := []summarize.Client{
		{ID: cfg.Ai.LLMProvider + ":" + cfg.Ai.LLMModel, Provider: llmProvider},
	}
	if cfg.Ai.LLMProvider != "ollama" && cfg.Ai.OllamaBaseURL != "" {
		textClients = append(textClients, summarize.Client{
			ID:       "ollama:" + cfg.Ai.OllamaLLMModel,
			Provider: ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaLLMModel),
		})
	}

	suggestClients := make([]suggest.Client, len(textClients))
	for i, c := range textClients {
		suggestClients[i] = suggest.Client{ID: c.ID, Provider: c.Provider}
	}

	// 4. Pipeline stages
	extractor := extract.NewExtractor(visionClients, sysLogger)
	summarizer := summarize.NewSummarizer(
		textClients,
		cfg.Ai.SummaryMaxChars,
		cfg.Ai.ChunkOverlap,
		cfg.Ai.SummaryMaxDepth,
		sysLogger,
	)
	suggester := suggest.NewSuggester(suggestClients, sysLogger)

	providerCatalog := catalog.New(func() []catalog.ProviderInfo {
		return buildProviderInfos(cfg, visionClients, textClients)
	})

	// 5. Repositories
	assetRepo := implementation.NewAssetRepository(db)
	actionLogRepo := implementation.NewDocumentActionLogRepository(db)
	embeddingRepo := implementation.NewDocumentEmbeddingRepository(db)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedDocumentTop, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedDocumentTop,
		assetRepo,
		embeddingRepo,
		embeddingProvider,
	)

	documentService := service.NewDocumentService(
		assetRepo,
		actionLogRepo,
		embeddingRepo,
		extractor,
		summarizer,
		suggester,
		embeddingProvider,
		publisherService,
		natsPub,
		emailService,
		cfg.Ai.MaxSnippetLen,
		sysLogger,
	)

	return &Container{
		DocumentController: controller.NewDocumentController(documentService, providerCatalog),
		ConsumerService:    consumerService,
	}
}

func llmAPIKey(cfg *config.Config) string {
	switch cfg.Ai.LLMProvider {
	case "huggingface":
		return cfg.Keys.HuggingFace
	case "gemini":
		return cfg.Keys.GoogleGemini
	default:
		return ""
	}
}

func buildProviderInfos(cfg *config.Config, visionClients []extract.VisionClient, textClients []summarize.Client) []catalog.ProviderInfo {
	var infos []catalog.ProviderInfo
	for _, vc := range visionClients {
		infos = append(infos, catalog.ProviderInfo{
			ID:      vc.ID,
			Type:    "vision",
			Model:   modelFromID(vc.ID),
			Enabled: true,
		})
	}
	for _, tc := range textClients {
		infos = append(infos, catalog.ProviderInfo{
			ID:      tc.ID,
			Type:    "llm",
			Model:   modelFromID(tc.ID),
			Enabled: true,
		})
	}
	embeddingModel := "text-embedding-004"
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingModel = cfg.Ai.OllamaEmbeddingModel
	}
	infos = append(infos, catalog.ProviderInfo{
		ID:      cfg.Ai.EmbeddingProvider + ":" + embeddingModel,
		Type:    "embedding",
		Model:   embeddingModel,
		Enabled: true,
	})
	return infos
}

func modelFromID(id string) string {
	if i := strings.Index(id, ":"); i >= 0 {
		return id[i+1:]
	}
	return id
}
