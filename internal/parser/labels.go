package parser

import (
	"regexp"
	"strings"
)

var (
	spaceRe    = regexp.MustCompile(`\s+`)
	noteRefRe  = regexp.MustCompile(`\bnote\s*\d+[a-z]*(?:\([a-z]\))?`)
	subRefRe   = regexp.MustCompile(`\b\d+\s*\([a-z]\)`)
	parenRe    = regexp.MustCompile(`\([^)]*\)`)
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// normalizeSpace lowercases and collapses whitespace. This is the light
// normalization used when anchoring keywords at the start of a raw
// statement line, where punctuation is part of the signal.
func normalizeSpace(text string) string {
	return spaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
}

// NormalizeLabel aggressively normalizes a table label cell: lowercase,
// note-reference markers removed ("note 12", "8(a)"), parenthetical
// asides dropped, punctuation collapsed to single spaces. Used by the
// coarser table-cell matcher where footnote decoration is noise.
func NormalizeLabel(label string) string {
	text := strings.ToLower(label)
	text = noteRefRe.ReplaceAllString(text, "")
	text = subRefRe.ReplaceAllString(text, "")
	text = parenRe.ReplaceAllString(text, " ")
	text = nonAlnumRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// matchPrefix tests whether the normalized line starts with any of the
// keyword variants, in order. The first variant that matches wins and
// is returned in normalized form. Prefix anchoring avoids accidental
// mid-sentence hits in narrative text.
func matchPrefix(line string, keywords []string) (string, bool) {
	norm := normalizeSpace(line)
	for _, kw := range keywords {
		kwNorm := normalizeSpace(kw)
		if kwNorm != "" && strings.HasPrefix(norm, kwNorm) {
			return kwNorm, true
		}
	}
	return "", false
}

// matchContains tests whether any keyword variant is contained in the
// aggressively normalized label. Containment is acceptable for table
// cells, which hold a single label rather than a full sentence.
func matchContains(label string, keywords []string) bool {
	normalized := NormalizeLabel(label)
	for _, kw := range keywords {
		kwNorm := NormalizeLabel(kw)
		if kwNorm != "" && strings.Contains(normalized, kwNorm) {
			return true
		}
	}
	return false
}
