package extract

import (
	"context"
	"strings"

	"doc-intelligence-be/internal/pkg/logger"
	"doc-intelligence-be/pkg/docai"
	"doc-intelligence-be/pkg/docai/cascade"

	"github.com/gabriel-vasile/mimetype"
)

const (
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePDF  = "application/pdf"
)

// Confidence policy per extraction path.
const (
	textRegexConfidence = 0.6
	pdfLocalConfidence  = 0.7
)

// Extractor routes an uploaded document to an ordered list of
// extraction strategies until one yields usable output.
type Extractor struct {
	vision []VisionClient // attempted in declared order
	log    logger.ILogger
}

func NewExtractor(vision []VisionClient, log logger.ILogger) *Extractor {
	return &Extractor{
		vision: vision,
		log:    log,
	}
}

// Extract produces a normalized ExtractionResult for doc. The only hard
// error is an unsupported mime type; provider exhaustion yields a
// filename-derived placeholder so downstream stages still run.
func (e *Extractor) Extract(ctx context.Context, doc docai.Document) (*docai.ExtractionResult, []cascade.Attempt, error) {
	mime := resolveMime(doc)
	doc.MimeType = mime

	switch {
	case mime == "text/html":
		text, err := extractHTMLText(doc.Data)
		if err != nil {
			return placeholderResult(doc.Filename), nil, nil
		}
		return textResult(text, doc.Filename, textRegexConfidence), nil, nil

	case strings.HasPrefix(mime, "text/"):
		text := string(doc.Data)
		if strings.TrimSpace(text) == "" {
			return placeholderResult(doc.Filename), nil, nil
		}
		return textResult(text, doc.Filename, textRegexConfidence), nil, nil

	case mime == mimeDocx:
		text, err := extractDocxText(doc.Data)
		if err != nil {
			e.log.Warn("Extractor", "docx extraction failed", map[string]interface{}{
				"filename": doc.Filename, "error": err.Error(),
			})
			return placeholderResult(doc.Filename), nil, nil
		}
		return textResult(text, doc.Filename, textRegexConfidence), nil, nil

	case mime == mimePDF:
		steps := e.visionSteps(doc)
		steps = append(steps, cascade.Step[*docai.ExtractionResult]{
			ProviderID: "local-pdf-text",
			Run: func(ctx context.Context) (*docai.ExtractionResult, error) {
				text, err := extractPDFText(doc.Data)
				if err != nil {
					return nil, docai.WrapKind(docai.KindEmptyExtraction, err)
				}
				return textResult(text, doc.Filename, pdfLocalConfidence), nil
			},
		})
		return e.runCascade(ctx, steps, doc)

	case strings.HasPrefix(mime, "image/"):
		return e.runCascade(ctx, e.visionSteps(doc), doc)

	default:
		return nil, nil, docai.Errorf(docai.KindUnsupportedMimeType, "unsupported mime type %q", mime)
	}
}

func (e *Extractor) visionSteps(doc docai.Document) []cascade.Step[*docai.ExtractionResult] {
	steps := make([]cascade.Step[*docai.ExtractionResult], 0, len(e.vision))
	for _, client := range e.vision {
		steps = append(steps, cascade.Step[*docai.ExtractionResult]{
			ProviderID: client.ID,
			Run:        visionStep(client, doc),
		})
	}
	return steps
}

func (e *Extractor) runCascade(ctx context.Context, steps []cascade.Step[*docai.ExtractionResult], doc docai.Document) (*docai.ExtractionResult, []cascade.Attempt, error) {
	result, winner, attempts, err := cascade.First(ctx, steps)
	for _, attempt := range attempts {
		if attempt.OK {
			continue
		}
		e.log.Warn("Extractor", "provider attempt failed", map[string]interface{}{
			"provider": attempt.ProviderID,
			"kind":     string(attempt.ErrKind),
			"filename": doc.Filename,
		})
	}
	if err != nil {
		// Exhaustion is not a hard error: downstream stages must still
		// run against partial data.
		e.log.Warn("Extractor", "all extraction providers exhausted", map[string]interface{}{
			"filename": doc.Filename, "mime": doc.MimeType,
		})
		return placeholderResult(doc.Filename), attempts, nil
	}
	e.log.Info("Extractor", "extraction succeeded", map[string]interface{}{
		"provider": winner, "filename": doc.Filename,
	})
	return result, attempts, nil
}

// textResult builds an ExtractionResult from locally decoded text via
// the regex field pass.
func textResult(text, filename string, confidence float64) *docai.ExtractionResult {
	return &docai.ExtractionResult{
		DocType:    guessDocType(text, filename),
		Fields:     extractTextFields(text),
		RawText:    text,
		Confidence: confidence,
	}
}

// resolveMime prefers the declared content type but falls back to
// sniffing when the client sent nothing useful.
func resolveMime(doc docai.Document) string {
	declared := strings.TrimSpace(strings.ToLower(doc.MimeType))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	sniffed := mimetype.Detect(doc.Data).String()
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = strings.TrimSpace(sniffed[:i])
	}
	return sniffed
}
