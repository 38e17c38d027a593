package implementation

import (
	"context"

	"doc-intelligence-be/internal/entity"
	"doc-intelligence-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentEmbeddingRepositoryImpl struct {
	db *gorm.DB
}

func NewDocumentEmbeddingRepository(db *gorm.DB) contract.DocumentEmbeddingRepository {
	return &DocumentEmbeddingRepositoryImpl{db: db}
}

func (r *DocumentEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(embeddings).Error
}

func (r *DocumentEmbeddingRepositoryImpl) DeleteAllByAssetId(ctx context.Context, assetId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("asset_id = ?", assetId).
		Delete(&entity.DocumentEmbedding{}).Error
}

func (r *DocumentEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, userId uuid.UUID) ([]*contract.ScoredDocumentEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding_value <=> query_vector) recovers the similarity.
	type result struct {
		entity.DocumentEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("document_embeddings").
		Select("document_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN assets ON assets.id = document_embeddings.asset_id").
		Where("assets.user_id = ?", userId).
		Where("assets.is_deleted = ?", false).
		Where("document_embeddings.deleted_at IS NULL").
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredDocumentEmbedding, len(results))
	for i := range results {
		e := results[i].DocumentEmbedding
		scored[i] = &contract.ScoredDocumentEmbedding{
			Embedding:  &e,
			Similarity: results[i].Similarity,
		}
	}
	return scored, nil
}
