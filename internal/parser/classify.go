package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/financial-statement-extractor/internal/models"
)

// Primary statement headings sit at the top of their page, so
// classification only looks at a fixed prefix of the page text. That
// keeps later-page content (note references back to "the consolidated
// statement of...") from misclassifying a notes page.
const headingWindow = 1500

// Column detection scans the first lines of a page for 4-digit year
// tokens in the column headers.
const headerLineWindow = 15

var yearTokenRe = regexp.MustCompile(`\b(20\d{2})\b`)

// classifyPage tags a page with the statement section its heading
// announces, or SectionNone for notes and other pages.
func (e *Engine) classifyPage(text string) models.Section {
	window := text
	if len(window) > headingWindow {
		window = window[:headingWindow]
	}
	lowered := strings.ToLower(window)

	for _, section := range []models.Section{
		models.SectionIncome,
		models.SectionBalance,
		models.SectionComprehensive,
		models.SectionCashFlow,
	} {
		for _, phrase := range e.cfg.Sections[section] {
			if strings.Contains(lowered, phrase) {
				return section
			}
		}
	}
	return models.SectionNone
}

// detectColumnCount detects the number of reporting-period columns on a
// statement page by counting year tokens on its header lines.
//
// Annual statements carry 2 columns (current, prior). Interim income
// statements carry 4 (quarter-current, quarter-prior, YTD-current,
// YTD-prior). Returns 0 when no line gives a clear signal, in which
// case downstream selection defaults to the first numeric token.
func detectColumnCount(pageText string) int {
	lines := strings.Split(pageText, "\n")
	if len(lines) > headerLineWindow {
		lines = lines[:headerLineWindow]
	}
	for _, line := range lines {
		years := yearTokenRe.FindAllString(line, -1)
		if len(years) >= 4 {
			return 4
		}
		if len(years) == 2 {
			return 2
		}
	}
	return 0
}

// detectPeriodMonths infers the cumulative reporting period from the
// document text. Defaults to a full year when no interim wording is
// found.
func detectPeriodMonths(fullText string) int {
	lowered := strings.ToLower(fullText)
	switch {
	case strings.Contains(lowered, "nine-month") || strings.Contains(lowered, "nine- month"):
		return 9
	case strings.Contains(lowered, "six-month") || strings.Contains(lowered, "six- month"):
		return 6
	case strings.Contains(lowered, "three-month") || strings.Contains(lowered, "three- month"):
		return 3
	case strings.Contains(lowered, "year ended"):
		return 12
	}
	return 12
}
