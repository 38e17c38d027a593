package contract

import (
	"context"

	"doc-intelligence-be/internal/entity"

	"github.com/google/uuid"
)

type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Asset, error)
	UpdateMetadata(ctx context.Context, asset *entity.Asset) error
}
