package contract

import (
	"context"

	"doc-intelligence-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentActionLogRepository interface {
	Create(ctx context.Context, log *entity.DocumentActionLog) error
	FindAllByAssetId(ctx context.Context, assetId uuid.UUID) ([]*entity.DocumentActionLog, error)
}
