// Package bulletin reads a daily trading-bulletin workbook and pulls
// out a single derived figure: the market-wide traded value. It is
// deliberately minimal — one header keyword, one total-row keyword,
// one cell at their intersection.
package bulletin

import (
	"fmt"
	"strings"

	"github.com/tsawler/tabula/xlsx"

	"github.com/insightdelivered/financial-statement-extractor/internal/models"
	"github.com/insightdelivered/financial-statement-extractor/internal/parser"
)

// headerScanRows bounds the header search: bulletin sheets put column
// headers in the first few rows, and deeper matches are data echoes.
const headerScanRows = 10

// valueColumnKeywords identify the traded-value column header.
var valueColumnKeywords = []string{"trade value", "tradevalue"}

// totalRowKeywords identify the market-total row, tried in priority
// order across every sheet.
var totalRowKeywords = []string{"market grand total", "grand total", "total market"}

// ParseFile reads a trading-bulletin XLSX and returns a report with the
// total_traded_value metric (in thousands, matching the statement
// reports) or an empty metrics map when the workbook does not contain
// the expected sheet shape. Only a workbook that cannot be opened is an
// error.
func ParseFile(filePath string) (*models.Report, error) {
	r, err := xlsx.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("bulletin read failed: %w", err)
	}
	defer r.Close()

	return FromTables(r.Tables()), nil
}

// FromTables runs the lookup over already-extracted sheet grids.
func FromTables(tables []xlsx.ParsedTable) *models.Report {
	report := models.NewReport()

	for _, table := range tables {
		grid := tableGrid(table)
		if len(grid) == 0 {
			continue
		}

		colIdx, headerRow := findValueColumn(grid)
		if colIdx < 0 {
			continue
		}
		rowIdx := findTotalRow(grid)
		if rowIdx < 0 || colIdx >= len(grid[rowIdx]) {
			continue
		}

		value, ok := parser.ParseNumber(grid[rowIdx][colIdx])
		if !ok || value <= 0 {
			continue
		}

		// Bulletin values are in whole currency units; statement
		// metrics are in thousands.
		scaled := value / 1000
		report.Metrics["total_traded_value"] = scaled
		report.Items = append(report.Items, fmt.Sprintf("Traded Value: %.0f", value))
		report.Audit = append(report.Audit, models.AuditEntry{
			Metric:     "total_traded_value",
			Value:      scaled,
			Method:     models.MethodExcel,
			Snippet:    fmt.Sprintf("sheet=%s, row=%d, col=%d", table.Name, rowIdx, colIdx),
			Confidence: fmt.Sprintf("header_row=%d", headerRow),
		})
		break
	}

	return report
}

// tableGrid flattens a ParsedTable back into raw rows; the header row
// is data here, since bulletin sheets bury their real headers below
// title rows.
func tableGrid(table xlsx.ParsedTable) [][]string {
	grid := make([][]string, 0, len(table.Rows)+1)
	if len(table.Headers) > 0 {
		grid = append(grid, table.Headers)
	}
	grid = append(grid, table.Rows...)
	return grid
}

// findValueColumn locates the traded-value column by scanning the
// leading rows for a header cell, falling back to a whole-sheet scan.
// Returns the column index and the row the header was found on.
func findValueColumn(grid [][]string) (int, int) {
	limit := len(grid)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for rowIdx := 0; rowIdx < limit; rowIdx++ {
		for colIdx, cell := range grid[rowIdx] {
			if containsAny(cell, valueColumnKeywords) {
				return colIdx, rowIdx
			}
		}
	}
	for rowIdx := limit; rowIdx < len(grid); rowIdx++ {
		for colIdx, cell := range grid[rowIdx] {
			if containsAny(cell, valueColumnKeywords) {
				return colIdx, rowIdx
			}
		}
	}
	return -1, -1
}

// findTotalRow locates the market-total row, trying keyword variants in
// priority order.
func findTotalRow(grid [][]string) int {
	for _, keyword := range totalRowKeywords {
		for rowIdx, row := range grid {
			for _, cell := range row {
				if containsAny(cell, []string{keyword}) {
					return rowIdx
				}
			}
		}
	}
	return -1
}

func containsAny(cell string, keywords []string) bool {
	lowered := strings.ToLower(strings.TrimSpace(cell))
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
