package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/financial-statement-extractor/internal/models"
)

// noteSpanCap bounds a note block when no end heading matches; notes
// that run to the end of a filing are rare but possible.
const noteSpanCap = 3000

var (
	noteHeadingRe = regexp.MustCompile(`^\d+\.\s`)
	yearHeaderRe  = regexp.MustCompile(`^\s*20\d{2}(\s+20\d{2})*\s*$`)
	numbersOnlyRe = regexp.MustCompile(`^[\d,.\s()-]+$`)
)

// findNoteBlock isolates the text span between the first match of the
// note's start pattern and the first subsequent match of its end
// pattern, capped at noteSpanCap characters when no end heading is
// found.
func findNoteBlock(fullText string, spec NoteSpec) (string, bool) {
	startRe, err := regexp.Compile(`(?i)` + spec.Start)
	if err != nil {
		return "", false
	}
	loc := startRe.FindStringIndex(fullText)
	if loc == nil {
		return "", false
	}

	rest := fullText[loc[1]:]
	end := len(fullText)
	if endRe, err := regexp.Compile(`(?i)` + spec.End); err == nil {
		if endLoc := endRe.FindStringIndex(rest); endLoc != nil {
			end = loc[1] + endLoc[0]
		} else if loc[0]+noteSpanCap < end {
			end = loc[0] + noteSpanCap
		}
	} else if loc[0]+noteSpanCap < end {
		end = loc[0] + noteSpanCap
	}

	return fullText[loc[0]:end], true
}

// mergeWrappedLines reconstructs line-wrapped disclosure labels: a line
// with no numeric content is joined onto the following line, so
//
//	"Investment income from other financial assets measured at"
//	"FVTOCI 14,133 11,644"
//
// becomes one line. Sub-heading markers ("8. ...") and unit-declaration
// lines ("AED'000") are never merge targets.
func mergeWrappedLines(block string) []string {
	var merged []string
	for _, line := range strings.Split(block, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if len(merged) > 0 {
			prev := merged[len(merged)-1]
			prevStripped := strings.TrimSpace(prev)
			if !numberRe.MatchString(prev) &&
				!noteHeadingRe.MatchString(prevStripped) &&
				!strings.HasPrefix(strings.ToUpper(prevStripped), "AED") {
				merged[len(merged)-1] = strings.TrimRight(prev, " ") + " " + stripped
				continue
			}
		}
		merged = append(merged, stripped)
	}
	return merged
}

// noteLineValues extracts the financial figures from a reconstructed
// note line: tokens under the note-reference ceiling and tokens that
// look like year values are excluded; what remains are the period
// columns, first (current period) wins.
func noteLineValues(line string) []float64 {
	var values []float64
	for _, v := range findNumbers(line) {
		if abs(v) < noteRefCeiling || isYearValue(v) {
			continue
		}
		values = append(values, v)
	}
	return values
}

// extractNote extracts one disclosure note's sub-metric breakdown and
// its stated total from the full document text. Absent sub-metrics are
// simply missing keys — the note may not disclose them in every
// document variant.
func extractNote(fullText string, spec NoteSpec) models.NoteBreakdown {
	breakdown := make(models.NoteBreakdown)

	block, ok := findNoteBlock(fullText, spec)
	if !ok {
		return breakdown
	}
	lines := mergeWrappedLines(block)

	// Sub-metrics: explicit left-to-right fold with a first-match-wins
	// guard per field, so a restated figure in narrative prose never
	// overrides the tabular disclosure above it.
	for _, line := range lines {
		lowered := strings.ToLower(line)
		values := noteLineValues(line)
		if len(values) == 0 {
			continue
		}
		for _, field := range spec.Fields {
			if _, done := breakdown[field.Metric]; done {
				continue
			}
			for _, kw := range field.Keywords {
				if strings.Contains(lowered, kw) {
					breakdown[field.Metric] = values[0]
					break
				}
			}
		}
	}

	// The note's own stated total: a standalone numbers-only line at or
	// above the note's magnitude floor, skipping year headers and unit
	// declarations.
	if spec.TotalMetric != "" {
		for _, line := range lines {
			if yearHeaderRe.MatchString(line) {
				continue
			}
			if strings.Contains(strings.ToLower(line), "aed") {
				continue
			}
			if !numbersOnlyRe.MatchString(line) {
				continue
			}
			found := false
			for _, v := range findNumbers(line) {
				if abs(v) >= spec.TotalFloor {
					breakdown[spec.TotalMetric] = v
					found = true
					break
				}
			}
			if found {
				break
			}
		}
	}

	return breakdown
}
