package extractor

import (
	"fmt"

	"github.com/insightdelivered/financial-statement-extractor/internal/models"
)

// ReadDocument reads a financial statement PDF and returns one Page per
// document page, carrying the page text and any structured tables
// detected on it.
//
// Text comes from the multi-method extractor in pdf.go; table grids come
// from tabula's geometric detector (tables.go). Table detection is
// best-effort: a document with no detectable grids still parses, the
// engine just relies on the line-based strategy alone.
//
// A document that cannot be opened, or that yields no readable pages,
// is a hard error — the only fatal failure mode in the pipeline.
func ReadDocument(filePath string) ([]models.Page, error) {
	texts, err := ExtractText(filePath)
	if err != nil {
		return nil, fmt.Errorf("document read failed: %w", err)
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("document %q yielded no pages", filePath)
	}

	tables, tblErr := ExtractTables(filePath)
	if tblErr != nil {
		// Tables are an optional surface; text-only pages are still usable.
		tables = nil
	}

	pages := make([]models.Page, len(texts))
	for i, text := range texts {
		pages[i] = models.Page{
			Number: i + 1,
			Text:   text,
			Tables: tables[i+1],
		}
	}
	return pages, nil
}
