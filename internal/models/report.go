package models

// Section classifies a document page by the primary statement it carries.
type Section string

const (
	SectionIncome        Section = "income"
	SectionBalance       Section = "balance"
	SectionComprehensive Section = "comprehensive"
	SectionCashFlow      Section = "cashflow"
	SectionNone          Section = ""
)

// Method identifies the extraction strategy that produced a value.
type Method string

const (
	MethodTable Method = "table"
	MethodLine  Method = "line"
	MethodNote  Method = "note"
	MethodExcel Method = "excel"
)

// Page is one document page as seen by the extraction engine: raw text
// plus any structured tables detected on it. Pages are built during the
// read pass and discarded after candidate generation.
type Page struct {
	Number  int          // 1-indexed page number
	Text    string       // extracted text, newline-separated lines
	Tables  [][][]string // structured cell grids, rows x cells
	Section Section      // assigned during classification
	Columns int          // detected year-column count (0 = indeterminate)
}

// Candidate is a provisional (metric, value) reading prior to conflict
// resolution. Many may exist per metric; exactly one survives.
type Candidate struct {
	Metric  string
	Value   float64
	Page    int
	Snippet string
	Method  Method
	Score   int
}

// AuditEntry records how a resolved metric was extracted.
type AuditEntry struct {
	Metric     string  `json:"metric"`
	Value      float64 `json:"value"`
	Method     Method  `json:"method"`
	Page       int     `json:"page,omitempty"`
	Snippet    string  `json:"snippet,omitempty"`
	Confidence string  `json:"confidence,omitempty"`
}

// NoteBreakdown maps sub-metric names to values for one disclosure note.
// A missing key means the document did not disclose that sub-metric —
// never to be read as zero.
type NoteBreakdown map[string]float64

// Report is the extraction result for one document. Metric values are
// in thousands of the reporting currency.
type Report struct {
	Metrics      map[string]float64       `json:"metrics"`
	Audit        []AuditEntry             `json:"audit"`
	Notes        map[string]NoteBreakdown `json:"notes"`
	Warnings     []string                 `json:"warnings"`
	Items        []string                 `json:"items"`
	PeriodMonths int                      `json:"periodMonths"`
}

// NewReport returns an empty report with all containers initialised so
// JSON output never contains null collections.
func NewReport() *Report {
	return &Report{
		Metrics:  make(map[string]float64),
		Audit:    []AuditEntry{},
		Notes:    make(map[string]NoteBreakdown),
		Warnings: []string{},
		Items:    []string{},
	}
}
