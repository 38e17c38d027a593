package implementation

import (
	"context"
	"errors"

	"doc-intelligence-be/internal/entity"
	"doc-intelligence-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetRepositoryImpl struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) contract.AssetRepository {
	return &AssetRepositoryImpl{db: db}
}

func (r *AssetRepositoryImpl) Create(ctx context.Context, asset *entity.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *AssetRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Asset, error) {
	var asset entity.Asset
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

func (r *AssetRepositoryImpl) UpdateMetadata(ctx context.Context, asset *entity.Asset) error {
	return r.db.WithContext(ctx).
		Model(&entity.Asset{}).
		Where("id = ?", asset.Id).
		Updates(map[string]interface{}{
			"metadata":   asset.Metadata,
			"updated_at": asset.UpdatedAt,
		}).Error
}
