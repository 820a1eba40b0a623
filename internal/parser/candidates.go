package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/financial-statement-extractor/internal/models"
)

const (
	// noteRefCeiling: a leading value below this magnitude, followed by
	// a larger one, is a footnote reference, not a financial figure.
	noteRefCeiling = 100

	snippetLimit = 200

	lineBaseScore    = 1
	tableBaseScore   = 2
	sectionScoreBump = 2
)

var tableYearRe = regexp.MustCompile(`20(\d{2})`)

// extractLineNumbers pulls the numeric values from a line after the
// matched label, filtering out small note-reference numbers that sit
// between the label and the real figures.
func extractLineNumbers(line string, labelEnd int) []float64 {
	if labelEnd > len(line) {
		labelEnd = len(line)
	}
	values := findNumbers(line[labelEnd:])
	if len(values) < 2 {
		return values
	}

	if abs(values[0]) < noteRefCeiling {
		for _, v := range values[1:] {
			if abs(v) >= noteRefCeiling {
				return values[1:]
			}
		}
	}
	return values
}

// pickCurrentPeriod selects the value representing the current
// cumulative period from the ordered numeric tokens following a label.
//
//	4-column interim income statement: Q-current, Q-prior, YTD-current,
//	YTD-prior — the third token is the YTD current figure.
//	Everything else (annual, balance sheet, indeterminate): the first
//	token is the current period.
func pickCurrentPeriod(values []float64, colCount int, section models.Section) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	if colCount == 4 && section == models.SectionIncome {
		if len(values) >= 3 {
			return values[2], true
		}
		return values[0], true
	}
	return values[0], true
}

// sectionLabels returns the metric vocabulary credible on a page of the
// given section. Comprehensive-income, cash-flow, and untagged pages
// get none; their figures are reachable only through the note pass.
func (e *Engine) sectionLabels(section models.Section) map[string][]string {
	switch section {
	case models.SectionIncome:
		return e.cfg.IncomeLabels
	case models.SectionBalance:
		return e.cfg.BalanceLabels
	default:
		return nil
	}
}

// scoreFor computes a candidate's score: the strategy's base score,
// plus a bump when the metric's category agrees with the page section.
// The bump suppresses cross-statement false positives, like a balance
// label quoted inside a cash-flow reconciliation.
func (e *Engine) scoreFor(base int, metric string, section models.Section) int {
	score := base
	if e.cfg.metricCategory(metric) == section {
		score += sectionScoreBump
	}
	return score
}

// lineCandidates walks the raw text lines of a classified page and
// emits a candidate for every section-scoped label match.
func (e *Engine) lineCandidates(page models.Page) []models.Candidate {
	labels := e.sectionLabels(page.Section)
	if labels == nil {
		return nil
	}

	var candidates []models.Candidate
	lines := strings.Split(page.Text, "\n")

	for _, metric := range sortedKeys(labels) {
		keywords := labels[metric]
		for _, line := range lines {
			matched, ok := matchPrefix(line, keywords)
			if !ok {
				continue
			}

			// Locate where the keyword ends in the original line so
			// number extraction starts after the label.
			labelEnd := 0
			if pos := strings.Index(strings.ToLower(line), matched); pos >= 0 {
				labelEnd = pos + len(matched)
			} else {
				// The raw line spells the keyword with irregular
				// whitespace; retry with a flexible pattern.
				parts := make([]string, 0, 8)
				for _, w := range strings.Fields(matched) {
					parts = append(parts, regexp.QuoteMeta(w))
				}
				re, err := regexp.Compile(`(?i)` + strings.Join(parts, `\s+`))
				if err != nil {
					continue
				}
				loc := re.FindStringIndex(line)
				if loc == nil {
					continue
				}
				labelEnd = loc[1]
			}

			values := extractLineNumbers(line, labelEnd)
			value, ok := pickCurrentPeriod(values, page.Columns, page.Section)
			if !ok {
				continue
			}

			candidates = append(candidates, models.Candidate{
				Metric:  metric,
				Value:   value,
				Page:    page.Number,
				Snippet: truncate(strings.TrimSpace(line), snippetLimit),
				Method:  models.MethodLine,
				Score:   e.scoreFor(lineBaseScore, metric, page.Section),
			})
		}
	}
	return candidates
}

// tableCandidates walks a structured cell grid on a classified page.
// The header row identifies the current-year column (highest year wins
// when several are present); data rows are matched by their label cell.
func (e *Engine) tableCandidates(table [][]string, page models.Page) []models.Candidate {
	labels := e.sectionLabels(page.Section)
	if labels == nil || len(table) < 2 {
		return nil
	}

	yearCol := -1
	bestYear := 0
	for idx, cell := range table[0] {
		m := tableYearRe.FindStringSubmatch(cell)
		if m == nil {
			continue
		}
		year := 2000 + int(m[1][0]-'0')*10 + int(m[1][1]-'0')
		if year > bestYear {
			bestYear = year
			yearCol = idx
		}
	}

	var candidates []models.Candidate
	for _, row := range table[1:] {
		labelCell := ""
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				labelCell = strings.TrimSpace(cell)
				break
			}
		}
		if labelCell == "" {
			continue
		}

		for _, metric := range sortedKeys(labels) {
			if !matchContains(labelCell, labels[metric]) {
				continue
			}

			value := 0.0
			found := false
			if yearCol >= 0 && yearCol < len(row) {
				value, found = ParseNumber(row[yearCol])
			}
			if !found {
				// No usable year column: take the first cell holding a
				// plausible financial magnitude.
				for _, cell := range row[1:] {
					if v, ok := ParseNumber(cell); ok && abs(v) >= noteRefCeiling {
						value, found = v, true
						break
					}
				}
			}
			if !found {
				continue
			}

			candidates = append(candidates, models.Candidate{
				Metric:  metric,
				Value:   value,
				Page:    page.Number,
				Snippet: truncate(rowSnippet(row), snippetLimit),
				Method:  models.MethodTable,
				Score:   e.scoreFor(tableBaseScore, metric, page.Section),
			})
		}
	}
	return candidates
}

// pageCandidates runs both extraction strategies over one classified
// page.
func (e *Engine) pageCandidates(page models.Page) []models.Candidate {
	if page.Section != models.SectionIncome && page.Section != models.SectionBalance {
		return nil
	}
	candidates := e.lineCandidates(page)
	for _, table := range page.Tables {
		candidates = append(candidates, e.tableCandidates(table, page)...)
	}
	return candidates
}

func rowSnippet(row []string) string {
	parts := make([]string, 0, len(row))
	for _, cell := range row {
		if trimmed := strings.TrimSpace(cell); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " | ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
