package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	GoogleGemini     string
	HuggingFace      string
	EmbedDocumentTop string // Embedding topic name
}

type AIConfig struct {
	// Extraction cascade (vision-capable providers, attempted in order)
	VisionPrimaryModel   string
	VisionSecondaryModel string

	// General LLM used by summarization and suggestions
	LLMProvider string // "gemini", "huggingface", "ollama"
	LLMModel    string

	// Embeddings
	EmbeddingProvider    string // "gemini" or "ollama"
	OllamaBaseURL        string
	OllamaEmbeddingModel string
	OllamaLLMModel       string

	// Pipeline limits
	SummaryMaxChars int
	ChunkOverlap    int
	SummaryMaxDepth int
	MaxSnippetLen   int
	MinSummaryLen   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "DocIntel"),
		},
		Keys: APIKeys{
			GoogleGemini:     getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:      getEnv("HUGGINGFACE_API_KEY", ""),
			EmbedDocumentTop: getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_DOCUMENT_CONTENT"),
		},
		Ai: AIConfig{
			VisionPrimaryModel:   getEnv("VISION_PRIMARY_MODEL", "gemini-1.5-flash"),
			VisionSecondaryModel: getEnv("VISION_SECONDARY_MODEL", "Qwen/Qwen2-VL-7B-Instruct"),
			LLMProvider:          getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:             getEnv("LLM_MODEL", "gemini-1.5-flash"),
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			OllamaLLMModel:       getEnv("OLLAMA_LLM_MODEL", "llama3"),
			SummaryMaxChars:      getEnvAsInt("SUMMARY_MAX_CHARS", 8000),
			ChunkOverlap:         getEnvAsInt("CHUNK_OVERLAP", 500),
			SummaryMaxDepth:      getEnvAsInt("SUMMARY_MAX_DEPTH", 5),
			MaxSnippetLen:        getEnvAsInt("MAX_SNIPPET_LEN", 4000),
			MinSummaryLen:        getEnvAsInt("MIN_SUMMARY_LEN", 80),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
