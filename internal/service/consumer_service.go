package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"doc-intelligence-be/internal/dto"
	"doc-intelligence-be/internal/entity"
	"doc-intelligence-be/internal/repository/contract"
	"doc-intelligence-be/pkg/docai/chunk"
	"doc-intelligence-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Chunk sizing for embedding input. 1500 chars is roughly 375 tokens,
// safely inside every provider's context limit.
const (
	embedChunkSize    = 1500
	embedChunkOverlap = 200
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	assetRepo         contract.AssetRepository
	embeddingRepo     contract.DocumentEmbeddingRepository
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	assetRepo contract.AssetRepository,
	embeddingRepo contract.DocumentEmbeddingRepository,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		assetRepo:         assetRepo,
		embeddingRepo:     embeddingRepo,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	assetId, err := uuid.Parse(payload.AssetId)
	if err != nil {
		log.Printf("[ERROR] Invalid asset id in message: %s", payload.AssetId)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Processing document embedding for AssetId: %s", assetId)

	asset, err := cs.assetRepo.FindById(ctx, assetId)
	if err != nil {
		log.Printf("[ERROR] Failed to get asset %s: %v", assetId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if asset == nil {
		log.Printf("[ERROR] Asset not found: %s", assetId)
		msg.Ack() // Asset deleted? Ack.
		return
	}

	content := cs.buildEmbeddingContent(asset)
	if content == "" {
		log.Printf("[WARN] Asset %s has no text to embed, skipping", assetId)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Generating embeddings for asset %s (content length: %d)", assetId, len(content))

	chunks := chunk.Split(content, embedChunkSize, embedChunkOverlap)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	var newEmbeddings []*entity.DocumentEmbedding
	for i, c := range chunks {
		vector, err := cs.embeddingProvider.Generate(ctx, c.Text, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of asset %s: %v", i, assetId, err)
			msg.Nack()
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.DocumentEmbedding{
			Id:             uuid.New(),
			Document:       c.Text,
			EmbeddingValue: pgvector.NewVector(vector),
			AssetId:        asset.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	log.Printf("[INFO] Deleting old embeddings for asset %s", assetId)
	if err := cs.embeddingRepo.DeleteAllByAssetId(ctx, asset.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if err := cs.embeddingRepo.CreateBulk(ctx, newEmbeddings); err != nil {
		log.Printf("[ERROR] Failed to create bulk embeddings: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Document processed: %d chunks for AssetId: %s", len(newEmbeddings), assetId)
	msg.Ack()
}

// buildEmbeddingContent assembles the text to embed from the stored
// analysis: document name, summary and the raw text snippet.
func (cs *consumerService) buildEmbeddingContent(asset *entity.Asset) string {
	var metadata map[string]any
	if len(asset.Metadata) > 0 {
		if err := json.Unmarshal(asset.Metadata, &metadata); err != nil {
			log.Printf("[WARN] Asset %s metadata is not valid JSON: %v", asset.Id, err)
		}
	}

	summary, _ := metadata["summary"].(string)
	snippet, _ := metadata["rawTextSnippet"].(string)
	if summary == "" && snippet == "" {
		return ""
	}

	return fmt.Sprintf("Document: %s\n\n%s\n\n%s", asset.Name, summary, snippet)
}
