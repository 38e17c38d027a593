package embedding

import "context"

// EmbeddingProvider defines the interface for generating text embeddings.
type EmbeddingProvider interface {
	// Generate returns a unit-length embedding vector for text.
	// taskType distinguishes document vs query embeddings for providers
	// that care (Gemini); others ignore it.
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
}

// Task types understood by Gemini's embedding API.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)
