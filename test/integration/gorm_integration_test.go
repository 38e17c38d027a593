package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"doc-intelligence-be/internal/entity"
	"doc-intelligence-be/internal/repository/implementation"
	"doc-intelligence-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB")

	assetRepo := implementation.NewAssetRepository(gormDB)
	actionLogRepo := implementation.NewDocumentActionLogRepository(gormDB)

	ctx := context.Background()
	userId := uuid.New()

	t.Run("Asset round trip", func(t *testing.T) {
		asset := &entity.Asset{
			Id:        uuid.New(),
			UserId:    userId,
			Type:      entity.AssetTypeDocument,
			Name:      "integration-test.pdf",
			Metadata:  datatypes.JSON(`{"docType":"invoice","summary":"integration test"}`),
			CreatedAt: time.Now(),
		}
		require.NoError(t, assetRepo.Create(ctx, asset))

		found, err := assetRepo.FindById(ctx, asset.Id)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, asset.Name, found.Name)

		// Cleanup
		gormDB.Exec("DELETE FROM assets WHERE id = ?", asset.Id)
	})

	t.Run("Action log round trip", func(t *testing.T) {
		assetId := uuid.New()
		logEntry := &entity.DocumentActionLog{
			Id:         uuid.New(),
			AssetId:    assetId,
			UserId:     userId,
			ActionType: entity.ActionTypeSummary,
			Status:     entity.ActionStatusSuccess,
			Result:     datatypes.JSON(`{"summary":"ok"}`),
			CreatedAt:  time.Now(),
		}
		require.NoError(t, actionLogRepo.Create(ctx, logEntry))

		logs, err := actionLogRepo.FindAllByAssetId(ctx, assetId)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, entity.ActionTypeSummary, logs[0].ActionType)

		gormDB.Exec("DELETE FROM document_action_logs WHERE id = ?", logEntry.Id)
	})
}
