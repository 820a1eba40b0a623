package parser

import (
	"sort"

	"github.com/insightdelivered/financial-statement-extractor/internal/models"
)

// methodRank orders extraction strategies for tie-breaking: structured
// table cells are more trustworthy than note text, which beats raw
// pattern-matched lines.
func methodRank(m models.Method) int {
	switch m {
	case models.MethodTable:
		return 2
	case models.MethodNote:
		return 1
	default:
		return 0
	}
}

// beats reports whether challenger should replace incumbent for the
// same metric. The comparison is lexicographic over (score, method
// rank, magnitude); the magnitude tie-break applies only to
// balance-type metrics, where larger plausible readings are preferred
// over truncated ones. When nothing separates the two, the incumbent
// (earlier in document order) stands, keeping resolution deterministic
// regardless of how candidates were produced.
func (e *Engine) beats(challenger, incumbent models.Candidate) bool {
	if challenger.Score != incumbent.Score {
		return challenger.Score > incumbent.Score
	}
	cRank, iRank := methodRank(challenger.Method), methodRank(incumbent.Method)
	if cRank != iRank {
		return cRank > iRank
	}
	if e.cfg.metricCategory(challenger.Metric) == models.SectionBalance {
		return abs(challenger.Value) > abs(incumbent.Value)
	}
	return false
}

// resolve selects the single winning candidate per metric. Candidates
// must arrive in document order (page, then position) so that the
// stable tie-break is reproducible.
func (e *Engine) resolve(candidates []models.Candidate) map[string]models.Candidate {
	best := make(map[string]models.Candidate)
	for _, c := range candidates {
		existing, ok := best[c.Metric]
		if !ok || e.beats(c, existing) {
			best[c.Metric] = c
		}
	}
	return best
}

// auditFor converts a winning candidate into its audit record.
func auditFor(c models.Candidate) models.AuditEntry {
	return models.AuditEntry{
		Metric:     c.Metric,
		Value:      c.Value,
		Method:     c.Method,
		Page:       c.Page,
		Snippet:    c.Snippet,
		Confidence: confidenceTag(c.Score),
	}
}

func confidenceTag(score int) string {
	if score >= tableBaseScore+sectionScoreBump {
		return "high"
	}
	if score > lineBaseScore {
		return "medium"
	}
	return "low"
}

// sortedKeys returns map keys in lexical order, for deterministic
// iteration over metric vocabularies.
func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
