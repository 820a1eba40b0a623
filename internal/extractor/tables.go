package extractor

import (
	"strings"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/tables"
)

// ExtractTables runs tabula's layout analysis and geometric table
// detection over the document and returns the detected cell grids,
// keyed by 1-indexed page number.
//
// Statement pages are typically borderless, whitespace-aligned tables,
// so the detector is tuned for whitespace clustering with a low row
// minimum. Detection failures on individual pages are skipped; a page
// without grids just gets no table candidates.
func ExtractTables(filePath string) (map[int][][][]string, error) {
	doc, err := tabula.AnalyzeDocument(filePath)
	if err != nil {
		return nil, err
	}

	detector := tables.NewGeometricDetector()
	if err := detector.Configure(tables.Config{
		MinRows:            3,
		MinCols:            2,
		MinConfidence:      0.5,
		UseLines:           true,
		UseWhitespace:      true,
		MaxCellGap:         12.0,
		AlignmentTolerance: 3.0,
		DetectMergedCells:  false,
	}); err != nil {
		return nil, err
	}

	out := make(map[int][][][]string)
	for _, page := range doc.Pages {
		detected, err := detector.Detect(page)
		if err != nil {
			continue
		}
		for _, tbl := range detected {
			grid := make([][]string, 0, len(tbl.Rows))
			for _, row := range tbl.Rows {
				cells := make([]string, len(row))
				for i, cell := range row {
					cells[i] = strings.TrimSpace(cell.Text)
				}
				grid = append(grid, cells)
			}
			if len(grid) >= 2 {
				out[page.Number] = append(out[page.Number], grid)
			}
		}
	}
	return out, nil
}
