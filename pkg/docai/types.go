package docai

// Shared result types for the document intelligence pipeline.
// Extraction, summarization and suggestion all operate on these
// normalized shapes so that provider-specific payloads never leak
// past their adapters.

// Document is one uploaded file. Immutable for the duration of a request.
type Document struct {
	Data     []byte
	Filename string
	MimeType string // declared by the client; may be empty or generic
}

// ExtractionResult is the normalized output of the extraction cascade.
// Never mutated after creation; sanitization works on copies.
type ExtractionResult struct {
	DocType    string         `json:"docType"`
	Fields     map[string]any `json:"fields"`
	RawText    string         `json:"rawText"`
	OCRText    string         `json:"ocrText"`
	Confidence float64        `json:"confidence"`
	ErrKind    ErrorKind      `json:"error,omitempty"`
}

// Text returns the best available text for downstream stages.
func (r *ExtractionResult) Text() string {
	if r.RawText != "" {
		return r.RawText
	}
	return r.OCRText
}

type SummaryResult struct {
	Summary string    `json:"summary"`
	ErrKind ErrorKind `json:"error,omitempty"`
}

// AutofillSuggestion maps target form field names to extracted values.
// A nil value means the field could not be filled.
type AutofillSuggestion struct {
	FormMapping   map[string]*string `json:"formMapping"`
	Confidence    float64            `json:"confidence"`
	MissingFields []string           `json:"missingFields"`
}

type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

type TaskList struct {
	Tasks []TaskDraft `json:"tasks"`
}

// SuggestionBundle is always structurally complete: when a sub-task
// degrades, its slot holds an empty-but-typed value, never nil maps
// handed to callers.
type SuggestionBundle struct {
	Summary  map[string]any     `json:"summary"`
	Autofill AutofillSuggestion `json:"autofill"`
	Email    EmailDraft         `json:"email"`
	Tasks    TaskList           `json:"tasks"`
}

// EmptyBundle returns a degraded but well-typed bundle.
func EmptyBundle(summary map[string]any) *SuggestionBundle {
	if summary == nil {
		summary = map[string]any{}
	}
	return &SuggestionBundle{
		Summary: summary,
		Autofill: AutofillSuggestion{
			FormMapping:   map[string]*string{},
			Confidence:    0,
			MissingFields: []string{},
		},
		Email: EmailDraft{},
		Tasks: TaskList{Tasks: []TaskDraft{}},
	}
}
