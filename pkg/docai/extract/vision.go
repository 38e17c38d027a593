package extract

import (
	"context"
	"strings"

	"doc-intelligence-be/pkg/docai"
	"doc-intelligence-be/pkg/docai/jsonx"
	"doc-intelligence-be/pkg/llm"
)

// VisionClient pairs a vision-capable provider with the confidence the
// cascade assigns to its successful extractions. Confidence is policy,
// not statistics.
type VisionClient struct {
	ID         string
	Provider   llm.VisionProvider
	Confidence float64
}

const visionPrompt = `You are a document extraction engine. Read the attached document and respond with a single JSON object, no prose:
{
  "docType": "<invoice|receipt|contract|resume|letter|form|document>",
  "fields": { "<field_name>": "<value>", ... },
  "text": "<the full text content of the document>"
}
Use snake_case field names such as issuer, recipient_email, invoice_date, due_date, amount_due, reference_number. Omit fields you cannot read. Respond with JSON only.`

// Confidence assigned when a provider answers with usable prose instead
// of JSON. The prose is kept as raw text for summarization.
const proseFallbackConfidence = 0.4

// visionStep wraps one provider call into a cascade step producing a
// normalized ExtractionResult.
func visionStep(client VisionClient, doc docai.Document) func(ctx context.Context) (*docai.ExtractionResult, error) {
	return func(ctx context.Context) (*docai.ExtractionResult, error) {
		output, err := client.Provider.GenerateWithFile(ctx, visionPrompt, doc.Data, doc.MimeType)
		if err != nil {
			return nil, docai.WrapKind(docai.KindProviderCallFailed, err)
		}
		return normalizeVisionOutput(output, client.Confidence, doc.Filename)
	}
}

// normalizeVisionOutput maps a raw provider response into the
// normalized variant the cascade operates on. JSON output (fenced or
// bare) is parsed; non-JSON prose is a lenient success carrying the
// prose as low-confidence raw text; an empty response is a soft
// failure.
func normalizeVisionOutput(output string, confidence float64, filename string) (*docai.ExtractionResult, error) {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil, docai.Errorf(docai.KindEmptyExtraction, "provider returned empty output")
	}

	obj, err := jsonx.ExtractObject(trimmed)
	if err != nil {
		// Lenient path: treat prose as successful low-confidence raw text.
		return &docai.ExtractionResult{
			DocType:    guessDocType(trimmed, filename),
			Fields:     map[string]any{},
			RawText:    trimmed,
			OCRText:    trimmed,
			Confidence: proseFallbackConfidence,
		}, nil
	}

	result := &docai.ExtractionResult{
		DocType:    "document",
		Fields:     map[string]any{},
		Confidence: confidence,
	}
	if docType, ok := obj["docType"].(string); ok && docType != "" {
		result.DocType = docType
	}
	if fields, ok := obj["fields"].(map[string]any); ok {
		result.Fields = fields
	}
	if text, ok := obj["text"].(string); ok {
		result.RawText = text
		result.OCRText = text
	}

	if len(result.Fields) == 0 && result.RawText == "" {
		return nil, docai.Errorf(docai.KindEmptyExtraction, "provider returned no usable content")
	}
	return result, nil
}

// placeholderResult is produced when every provider in the cascade is
// exhausted. Downstream stages still run against it.
func placeholderResult(filename string) *docai.ExtractionResult {
	name := filename
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return &docai.ExtractionResult{
		DocType: guessDocType("", filename),
		Fields: map[string]any{
			"source_filename": filename,
			"title":           strings.ReplaceAll(name, "_", " "),
		},
		Confidence: 0,
		ErrKind:    docai.KindUnsupportedExtraction,
	}
}
