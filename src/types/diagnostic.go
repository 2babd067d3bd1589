package types

// DiagnosticType is the machine-readable kind of a diagnostic.
type DiagnosticType string

// Errors block the import.
const (
	MissingRoot      DiagnosticType = "MISSING_ROOT"
	MissingField     DiagnosticType = "MISSING_FIELD"
	InvalidType      DiagnosticType = "INVALID_TYPE"
	InvalidValue     DiagnosticType = "INVALID_VALUE"
	DuplicateRef     DiagnosticType = "DUPLICATE_REF"
	DuplicateName    DiagnosticType = "DUPLICATE_NAME"
	InvalidReference DiagnosticType = "INVALID_REFERENCE"
)

// Warnings let the import proceed with degraded quality.
const (
	InvalidRefFormat         DiagnosticType = "INVALID_REF_FORMAT"
	MissingImage             DiagnosticType = "MISSING_IMAGE"
	MissingOptionImage       DiagnosticType = "MISSING_OPTION_IMAGE"
	InvalidImageURL          DiagnosticType = "INVALID_IMAGE_URL"
	DuplicateImageURL        DiagnosticType = "DUPLICATE_IMAGE_URL"
	EmptyCategory            DiagnosticType = "EMPTY_CATEGORY"
	EmptyOptionList          DiagnosticType = "EMPTY_OPTION_LIST"
	UnderpopulatedOptionList DiagnosticType = "UNDERPOPULATED_OPTION_LIST"
	HighPrice                DiagnosticType = "HIGH_PRICE"
	PercentageOutOfRange     DiagnosticType = "PERCENTAGE_OUT_OF_RANGE"
)

// Diagnostic is a single validation finding.
// Note: keep fields in this order, the JSON report relies on it.
type Diagnostic struct {
	Type       DiagnosticType `json:"type"`
	Path       string         `json:"path,omitempty"`
	Message    string         `json:"message"`
	Suggestion string         `json:"suggestion,omitempty"`
}

// ImageGroup is a set of products whose image URLs share a base URL.
type ImageGroup struct {
	BaseURL  string   `json:"base-url"`
	Products []string `json:"products"`
}

// Result is the output of one validation pass.
// Catalog is nil when the structural gate rejected the document.
type Result struct {
	Catalog     *Catalog
	Errors      []Diagnostic
	Warnings    []Diagnostic
	ImageGroups []ImageGroup
}

// Valid reports whether the catalog can be imported.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}
