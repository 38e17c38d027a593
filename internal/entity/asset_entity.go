package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Asset types persisted by the pipeline.
const (
	AssetTypeDocument = "document"
)

// Asset is one analyzed upload. Metadata holds the sanitized,
// size-bounded projection of extraction + suggestions.
type Asset struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	Type      string
	Name      string
	Url       string
	Metadata  datatypes.JSON
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
