package implementation

import (
	"context"

	"doc-intelligence-be/internal/entity"
	"doc-intelligence-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentActionLogRepositoryImpl struct {
	db *gorm.DB
}

func NewDocumentActionLogRepository(db *gorm.DB) contract.DocumentActionLogRepository {
	return &DocumentActionLogRepositoryImpl{db: db}
}

func (r *DocumentActionLogRepositoryImpl) Create(ctx context.Context, log *entity.DocumentActionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *DocumentActionLogRepositoryImpl) FindAllByAssetId(ctx context.Context, assetId uuid.UUID) ([]*entity.DocumentActionLog, error) {
	var logs []*entity.DocumentActionLog
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetId).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
