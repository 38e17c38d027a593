package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Action types accepted by the actions endpoint.
const (
	ActionTypeAutofill = "autofill"
	ActionTypeEmail    = "email"
	ActionTypeTasks    = "tasks"
	ActionTypeSummary  = "summary"
)

// Action log statuses.
const (
	ActionStatusSuccess    = "success"
	ActionStatusFailed     = "failed"
	ActionStatusPending    = "pending"
	ActionStatusNeedsInput = "needs_input"
)

// DocumentActionLog records one downstream action run against a
// persisted document asset.
type DocumentActionLog struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssetId         uuid.UUID `gorm:"type:uuid;index"`
	UserId          uuid.UUID `gorm:"type:uuid;index"`
	ActionType      string
	Status          string
	DataUsed        datatypes.JSON
	Result          datatypes.JSON
	ConfidenceScore *float64
	ErrorMessage    *string
	CreatedAt       time.Time
}
