package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"doc-intelligence-be/internal/dto"
	"doc-intelligence-be/internal/entity"
	"doc-intelligence-be/internal/pkg/logger"
	"doc-intelligence-be/internal/pkg/mailer"
	"doc-intelligence-be/internal/repository/contract"
	"doc-intelligence-be/pkg/docai"
	"doc-intelligence-be/pkg/docai/cascade"
	"doc-intelligence-be/pkg/docai/sanitize"
	"doc-intelligence-be/pkg/docai/summarize"
	"doc-intelligence-be/pkg/embedding"
	"doc-intelligence-be/pkg/events"
	pktNats "doc-intelligence-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Collaborator contracts kept narrow so the service can be tested with
// stubs instead of live providers.
type DocumentExtractor interface {
	Extract(ctx context.Context, doc docai.Document) (*docai.ExtractionResult, []cascade.Attempt, error)
}

type DocumentSummarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type SuggestionEngine interface {
	Suggest(ctx context.Context, extraction *docai.ExtractionResult, rawText string) *docai.SuggestionBundle
	Autofill(ctx context.Context, summaryText, fieldsJSON string) docai.AutofillSuggestion
	Email(ctx context.Context, summaryText, fieldsJSON string) docai.EmailDraft
	Tasks(ctx context.Context, summaryText, fieldsJSON string) docai.TaskList
}

type IDocumentService interface {
	Analyze(ctx context.Context, userId uuid.UUID, doc docai.Document) (*dto.AnalyzeDocumentResponse, error)
	Autofill(ctx context.Context, userId uuid.UUID, assetId uuid.UUID) (*dto.AutofillResponse, error)
	RunAction(ctx context.Context, userId uuid.UUID, assetId uuid.UUID, req *dto.DocumentActionRequest) (*dto.DocumentActionResponse, error)
	ListActions(ctx context.Context, userId uuid.UUID, assetId uuid.UUID) ([]*dto.DocumentActionLogResponse, error)
	SemanticSearch(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*dto.SemanticSearchResult, error)
}

var ErrAssetNotFound = fmt.Errorf("asset not found")

type documentService struct {
	assetRepo         contract.AssetRepository
	actionLogRepo     contract.DocumentActionLogRepository
	embeddingRepo     contract.DocumentEmbeddingRepository
	extractor         DocumentExtractor
	summarizer        DocumentSummarizer
	suggester         SuggestionEngine
	embeddingProvider embedding.EmbeddingProvider
	publisherService  IPublisherService
	eventPublisher    *pktNats.Publisher
	emailService      mailer.IEmailService
	maxSnippetLen     int
	log               logger.ILogger
}

func NewDocumentService(
	assetRepo contract.AssetRepository,
	actionLogRepo contract.DocumentActionLogRepository,
	embeddingRepo contract.DocumentEmbeddingRepository,
	extractor DocumentExtractor,
	summarizer DocumentSummarizer,
	suggester SuggestionEngine,
	embeddingProvider embedding.EmbeddingProvider,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	maxSnippetLen int,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		assetRepo:         assetRepo,
		actionLogRepo:     actionLogRepo,
		embeddingRepo:     embeddingRepo,
		extractor:         extractor,
		summarizer:        summarizer,
		suggester:         suggester,
		embeddingProvider: embeddingProvider,
		publisherService:  publisherService,
		eventPublisher:    eventPublisher,
		emailService:      emailService,
		maxSnippetLen:     maxSnippetLen,
		log:               log,
	}
}

// Analyze runs the full pipeline: extraction cascade, summarization,
// suggestions, sanitized persist, then async embedding. Storage failure
// degrades to a warning; the analysis result is always returned.
func (s *documentService) Analyze(ctx context.Context, userId uuid.UUID, doc docai.Document) (*dto.AnalyzeDocumentResponse, error) {
	extraction, attempts, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	s.log.Info("DocumentService", "extraction complete", map[string]interface{}{
		"filename":   doc.Filename,
		"docType":    extraction.DocType,
		"confidence": extraction.Confidence,
		"attempts":   len(attempts),
	})

	rawText := extraction.Text()

	summary := ""
	if rawText != "" {
		summary, err = s.summarizer.Summarize(ctx, rawText)
		if err != nil {
			s.log.Warn("DocumentService", "summarization failed, using heuristic", map[string]interface{}{
				"filename": doc.Filename,
				"error":    err.Error(),
			})
			summary = summarize.Heuristic(rawText, extraction.Fields)
		}
	} else {
		summary = summarize.Heuristic("", extraction.Fields)
	}

	suggestions := s.suggester.Suggest(ctx, extraction, rawText)

	response := &dto.AnalyzeDocumentResponse{
		DocType:       extraction.DocType,
		Fields:        flattenFields(extraction.Fields),
		ExtractedData: extraction.Fields,
		Summary:       summary,
		Suggestions:   suggestions,
		OcrText:       sanitize.Truncate(sanitize.Text(extraction.OCRText), s.maxSnippetLen),
		OcrConfidence: extraction.Confidence,
	}
	if len(extraction.Fields) == 0 {
		response.Warning = "no structured fields could be extracted from this document"
	}

	asset, persistErr := s.persistAnalysis(ctx, userId, doc, extraction, summary, suggestions)
	if persistErr != nil {
		// Analysis results must survive a storage outage.
		s.log.Error("DocumentService", "failed to persist analysis", map[string]interface{}{
			"filename": doc.Filename,
			"error":    persistErr.Error(),
		})
		response.Warning = "analysis completed but the result could not be saved"
		response.Message = "document analyzed"
		return response, nil
	}

	response.AssetId = asset.Id.String()
	response.Message = "document analyzed"

	s.dispatchPostPersist(ctx, asset, userId, doc.Filename, len(extraction.Fields))

	return response, nil
}

func (s *documentService) persistAnalysis(
	ctx context.Context,
	userId uuid.UUID,
	doc docai.Document,
	extraction *docai.ExtractionResult,
	summary string,
	suggestions *docai.SuggestionBundle,
) (*entity.Asset, error) {
	metadata := map[string]any{
		"docType":       extraction.DocType,
		"fields":        extraction.Fields,
		"summary":       summary,
		"suggestions":   toPlain(suggestions),
		"ocrConfidence": extraction.Confidence,
	}
	metadata[sanitize.KeyRawTextSnippet] = extraction.RawText
	metadata[sanitize.KeyOCRText] = extraction.OCRText
	cleaned := sanitize.PrepareForStorage(metadata, s.maxSnippetLen)

	metadataJSON, err := json.Marshal(cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	asset := &entity.Asset{
		Id:        uuid.New(),
		UserId:    userId,
		Type:      entity.AssetTypeDocument,
		Name:      sanitize.Text(doc.Filename),
		Metadata:  datatypes.JSON(metadataJSON),
		CreatedAt: time.Now(),
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// dispatchPostPersist triggers the async embedding flow and the NATS
// event. Both are auxiliary; failures are logged, never surfaced.
func (s *documentService) dispatchPostPersist(ctx context.Context, asset *entity.Asset, userId uuid.UUID, filename string, fieldCount int) {
	msgPayload := dto.PublishEmbedDocumentMessage{AssetId: asset.Id.String()}
	msgJson, err := json.Marshal(msgPayload)
	if err == nil {
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			s.log.Warn("DocumentService", "failed to publish embed message", map[string]interface{}{
				"assetId": asset.Id,
				"error":   err.Error(),
			})
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewDocumentAnalyzed(asset.Id.String(), userId.String(), filename, fieldCount)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("DocumentService", "failed to publish DOCUMENT_ANALYZED event", map[string]interface{}{
				"assetId": asset.Id,
				"error":   err.Error(),
			})
		}
	}
}

// Autofill re-runs the autofill suggestion against a stored analysis.
func (s *documentService) Autofill(ctx context.Context, userId uuid.UUID, assetId uuid.UUID) (*dto.AutofillResponse, error) {
	_, summary, fieldsJSON, err := s.loadAnalysis(ctx, userId, assetId)
	if err != nil {
		return nil, err
	}

	suggestion := s.suggester.Autofill(ctx, summary, fieldsJSON)
	return &dto.AutofillResponse{
		AssetId:    assetId.String(),
		Suggestion: &suggestion,
	}, nil
}

// RunAction executes one downstream action and records it in the
// action log. The log row is written for failures too.
func (s *documentService) RunAction(ctx context.Context, userId uuid.UUID, assetId uuid.UUID, req *dto.DocumentActionRequest) (*dto.DocumentActionResponse, error) {
	_, summary, fieldsJSON, err := s.loadAnalysis(ctx, userId, assetId)
	if err != nil {
		return nil, err
	}

	logEntry := &entity.DocumentActionLog{
		Id:         uuid.New(),
		AssetId:    assetId,
		UserId:     userId,
		ActionType: req.ActionType,
		Status:     entity.ActionStatusSuccess,
		CreatedAt:  time.Now(),
	}
	if used, err := json.Marshal(map[string]any{"summary": summary, "fields": json.RawMessage(orEmptyObject(fieldsJSON))}); err == nil {
		logEntry.DataUsed = datatypes.JSON(used)
	}

	var result any
	switch req.ActionType {
	case entity.ActionTypeAutofill:
		suggestion := s.suggester.Autofill(ctx, summary, fieldsJSON)
		conf := suggestion.Confidence
		logEntry.ConfidenceScore = &conf
		if len(suggestion.MissingFields) > 0 {
			logEntry.Status = entity.ActionStatusNeedsInput
		}
		result = suggestion

	case entity.ActionTypeEmail:
		draft := s.suggester.Email(ctx, summary, fieldsJSON)
		result = draft
		if req.SendEmail {
			if req.To == "" {
				logEntry.Status = entity.ActionStatusNeedsInput
				msg := "recipient address required to send the draft"
				logEntry.ErrorMessage = &msg
			} else if err := s.emailService.SendDraft(req.To, draft.Subject, draft.Body); err != nil {
				logEntry.Status = entity.ActionStatusFailed
				msg := err.Error()
				logEntry.ErrorMessage = &msg
			}
		}

	case entity.ActionTypeTasks:
		result = s.suggester.Tasks(ctx, summary, fieldsJSON)

	case entity.ActionTypeSummary:
		result = map[string]any{"summary": summary}

	default:
		return nil, fmt.Errorf("unknown action type: %s", req.ActionType)
	}

	if resultJSON, err := json.Marshal(sanitize.Object(toPlain(result))); err == nil {
		logEntry.Result = datatypes.JSON(resultJSON)
	}

	if err := s.actionLogRepo.Create(ctx, logEntry); err != nil {
		s.log.Error("DocumentService", "failed to write action log", map[string]interface{}{
			"assetId":    assetId,
			"actionType": req.ActionType,
			"error":      err.Error(),
		})
	}

	resp := &dto.DocumentActionResponse{
		LogId:      logEntry.Id.String(),
		AssetId:    assetId.String(),
		ActionType: req.ActionType,
		Status:     logEntry.Status,
		Result:     result,
	}
	if logEntry.ErrorMessage != nil {
		resp.Error = *logEntry.ErrorMessage
	}
	return resp, nil
}

func (s *documentService) ListActions(ctx context.Context, userId uuid.UUID, assetId uuid.UUID) ([]*dto.DocumentActionLogResponse, error) {
	if _, _, _, err := s.loadAnalysis(ctx, userId, assetId); err != nil {
		return nil, err
	}

	logs, err := s.actionLogRepo.FindAllByAssetId(ctx, assetId)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.DocumentActionLogResponse, len(logs))
	for i, l := range logs {
		var result any
		if len(l.Result) > 0 {
			_ = json.Unmarshal(l.Result, &result)
		}
		responses[i] = &dto.DocumentActionLogResponse{
			Id:              l.Id.String(),
			ActionType:      l.ActionType,
			Status:          l.Status,
			Result:          result,
			ConfidenceScore: l.ConfidenceScore,
			ErrorMessage:    l.ErrorMessage,
			CreatedAt:       l.CreatedAt.Format(time.RFC3339),
		}
	}
	return responses, nil
}

func (s *documentService) SemanticSearch(ctx context.Context, userId uuid.UUID, query string, limit int) ([]*dto.SemanticSearchResult, error) {
	vector, err := s.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	scored, err := s.embeddingRepo.SearchSimilar(ctx, vector, limit, userId)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.SemanticSearchResult, 0, len(scored))
	for _, sc := range scored {
		name := ""
		if asset, err := s.assetRepo.FindById(ctx, sc.Embedding.AssetId); err == nil && asset != nil {
			name = asset.Name
		}
		results = append(results, &dto.SemanticSearchResult{
			AssetId:    sc.Embedding.AssetId.String(),
			AssetName:  name,
			Chunk:      sc.Embedding.Document,
			ChunkIndex: sc.Embedding.ChunkIndex,
			Similarity: sc.Similarity,
		})
	}
	return results, nil
}

// loadAnalysis fetches the asset (scoped to the user) and pulls the
// stored summary and fields JSON out of its metadata.
func (s *documentService) loadAnalysis(ctx context.Context, userId uuid.UUID, assetId uuid.UUID) (map[string]any, string, string, error) {
	asset, err := s.assetRepo.FindById(ctx, assetId)
	if err != nil {
		return nil, "", "", err
	}
	if asset == nil || asset.UserId != userId {
		return nil, "", "", ErrAssetNotFound
	}

	var metadata map[string]any
	if len(asset.Metadata) > 0 {
		if err := json.Unmarshal(asset.Metadata, &metadata); err != nil {
			return nil, "", "", fmt.Errorf("stored metadata is not valid JSON: %w", err)
		}
	}
	if metadata == nil {
		metadata = map[string]any{}
	}

	summary, _ := metadata["summary"].(string)

	fieldsJSON := "{}"
	if fields, ok := metadata["fields"]; ok {
		if b, err := json.Marshal(fields); err == nil {
			fieldsJSON = string(b)
		}
	}
	return metadata, summary, fieldsJSON, nil
}

func flattenFields(fields map[string]any) []dto.Field {
	out := make([]dto.Field, 0, len(fields))
	for name, value := range fields {
		out = append(out, dto.Field{Name: name, Value: value})
	}
	return out
}

func orEmptyObject(s string) string {
	if s == "" {
		return "{}"
	}
	return s
}

// toPlain round-trips a typed result into generic maps so sanitize can
// walk it.
func toPlain(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
