package parser

import (
	"fmt"

	"github.com/insightdelivered/financial-statement-extractor/internal/models"
)

const (
	// Reconciliation tolerance: half a percent of the headline
	// magnitude, with an absolute floor for small headline figures
	// (rounding in AED'000 statements).
	toleranceRatio = 0.005
	toleranceFloor = 2
)

func tolerance(headline float64) float64 {
	tol := abs(headline) * toleranceRatio
	if tol < toleranceFloor {
		return toleranceFloor
	}
	return tol
}

// reconcileNote cross-checks a note's figures against the resolved
// headline metric and returns one warning per failing comparison:
// (a) the note's own stated total vs the headline, and (b) the sum of
// disclosed sub-metrics vs the headline. Absent sub-metrics are
// excluded from the sum, never treated as zero, and a note with no
// disclosed sub-metrics produces no warnings at all — nothing to check
// is not a mismatch.
func reconcileNote(headline float64, breakdown models.NoteBreakdown, spec NoteSpec) []string {
	var warnings []string
	if headline == 0 {
		return warnings
	}
	tol := tolerance(headline)

	if noteTotal, ok := breakdown[spec.TotalMetric]; ok && noteTotal != 0 {
		if diff := abs(headline - noteTotal); diff > tol {
			warnings = append(warnings, fmt.Sprintf(
				"%s note total (%.0f) does not match headline %s (%.0f); delta = %.0f",
				spec.Name, noteTotal, spec.Headline, headline, diff))
		}
	}

	sum := 0.0
	disclosed := 0
	for _, field := range spec.Fields {
		if v, ok := breakdown[field.Metric]; ok {
			sum += v
			disclosed++
		}
	}
	if disclosed > 0 && sum != 0 {
		if diff := abs(headline - sum); diff > tol {
			warnings = append(warnings, fmt.Sprintf(
				"%s breakdown sum (%.0f) does not match headline %s (%.0f); delta = %.0f",
				spec.Name, sum, spec.Headline, headline, diff))
		}
	}

	return warnings
}
