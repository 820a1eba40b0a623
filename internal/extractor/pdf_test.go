package extractor

import (
	"strings"
	"testing"
)

func TestTextQuality(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  float64
		max  float64
	}{
		{"clean statement text", "Consolidated statement of financial position as at 31 December 2024", 0.99, 1.0},
		{"numbers and punctuation", "Investment deposits 4,134,622 3,820,000 (AED'000)", 0.99, 1.0},
		{"identity-encoded garbage", "�����", 0.0, 0.1},
		{"empty", "", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := textQuality([]string{tt.text})
			if q < tt.min || q > tt.max {
				t.Errorf("textQuality: got %f, want within [%f, %f]", q, tt.min, tt.max)
			}
		})
	}
}

func TestContainsCommonWords(t *testing.T) {
	tests := []struct {
		name     string
		pages    []string
		expected bool
	}{
		{"statement heading", []string{"Consolidated statement of profit or loss"}, true},
		{"balance page", []string{"Total assets and liabilities"}, true},
		{"garbage", []string{"xqzt wvpk jrnm"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := containsCommonWords(tt.pages); got != tt.expected {
				t.Errorf("containsCommonWords: got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsReadableText(t *testing.T) {
	statementPage := "Condensed interim consolidated statement of financial position as at 30 September 2025. " +
		"Investment deposits 4,134,622. Cash and cash equivalents 520,310."

	tests := []struct {
		name     string
		pages    []string
		expected bool
	}{
		{"real statement page", []string{statementPage}, true},
		{"too short", []string{"total"}, false},
		{"readable but unrecognizable", []string{strings.Repeat("lorem ipsum dolor sit amet ", 10)}, false},
		{"long garbage", []string{strings.Repeat("�", 200)}, false},
		{"no pages", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isReadableText(tt.pages); got != tt.expected {
				t.Errorf("isReadableText: got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	if _, err := ExtractText("/nonexistent/statements.pdf"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
