package contract

import (
	"context"

	"doc-intelligence-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredDocumentEmbedding wraps DocumentEmbedding with its similarity score
type ScoredDocumentEmbedding struct {
	Embedding  *entity.DocumentEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	DeleteAllByAssetId(ctx context.Context, assetId uuid.UUID) error
	// SearchSimilar returns the closest chunks by cosine distance,
	// scoped to the user's non-deleted assets.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, userId uuid.UUID) ([]*ScoredDocumentEmbedding, error)
}
