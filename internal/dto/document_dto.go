package dto

import (
	"doc-intelligence-be/pkg/docai"
)

// Field is one extracted key/value pair flattened for the response.
type Field struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

type AnalyzeDocumentResponse struct {
	AssetId       string                  `json:"assetId"`
	DocType       string                  `json:"docType"`
	Fields        []Field                 `json:"fields"`
	ExtractedData map[string]interface{}  `json:"extractedData"`
	Summary       string                  `json:"summary"`
	Suggestions   *docai.SuggestionBundle `json:"suggestions"`
	OcrText       string                  `json:"ocrText,omitempty"`
	OcrConfidence float64                 `json:"ocrConfidence"`
	Warning       string                  `json:"warning,omitempty"`
	Message       string                  `json:"message,omitempty"`
}

type AutofillResponse struct {
	AssetId    string                    `json:"assetId"`
	Suggestion *docai.AutofillSuggestion `json:"suggestion"`
}

type DocumentActionRequest struct {
	ActionType string `json:"actionType" validate:"required,oneof=autofill email tasks summary"`
	SendEmail  bool   `json:"sendEmail"`
	To         string `json:"to" validate:"omitempty,email"`
}

type DocumentActionResponse struct {
	LogId      string      `json:"logId"`
	AssetId    string      `json:"assetId"`
	ActionType string      `json:"actionType"`
	Status     string      `json:"status"`
	Result     interface{} `json:"result,omitempty"`
	Error      string      `json:"error,omitempty"`
}

type DocumentActionLogResponse struct {
	Id              string      `json:"id"`
	ActionType      string      `json:"actionType"`
	Status          string      `json:"status"`
	Result          interface{} `json:"result,omitempty"`
	ConfidenceScore *float64    `json:"confidenceScore,omitempty"`
	ErrorMessage    *string     `json:"errorMessage,omitempty"`
	CreatedAt       string      `json:"createdAt"`
}

type SemanticSearchResult struct {
	AssetId    string  `json:"assetId"`
	AssetName  string  `json:"assetName"`
	Chunk      string  `json:"chunk"`
	ChunkIndex int     `json:"chunkIndex"`
	Similarity float64 `json:"similarity"`
}

type ProviderInfoResponse struct {
	Providers interface{} `json:"providers"`
}

// PublishEmbedDocumentMessage is the payload of the async embedding
// event emitted after a successful analyze persist.
type PublishEmbedDocumentMessage struct {
	AssetId string `json:"assetId"`
}
