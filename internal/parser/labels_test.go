package parser

import "testing"

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Trading Commission Fees", "trading commission fees"},
		{"note reference", "Investment deposits note 7", "investment deposits"},
		{"note with letter", "Investment income note 8a", "investment income"},
		{"sub reference", "Financial assets 8(a)", "financial assets"},
		{"parenthetical", "Cash and cash equivalents (restated)", "cash and cash equivalents"},
		{"punctuation", "Investments - at amortised cost", "investments at amortised cost"},
		{"whitespace", "  dividend   income  ", "dividend income"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLabel(tt.input); got != tt.expected {
				t.Errorf("NormalizeLabel(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMatchPrefix(t *testing.T) {
	keywords := []string{"trading commission fees", "trading commission"}

	tests := []struct {
		name    string
		line    string
		matched string
		ok      bool
	}{
		{"exact", "Trading commission fees 113,272 45,827", "trading commission fees", true},
		{"mid sentence", "Income from trading commission fees rose", "", false},
		{"irregular spacing", "TRADING  COMMISSION  FEES 1,000", "trading commission fees", true},
		{"no match", "Dividend income 55,000", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, ok := matchPrefix(tt.line, keywords)
			if ok != tt.ok {
				t.Fatalf("matchPrefix(%q): ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if tt.ok && matched != tt.matched {
				t.Errorf("matchPrefix(%q): got %q, want %q", tt.line, matched, tt.matched)
			}
		})
	}
}

func TestMatchPrefixVariantOrder(t *testing.T) {
	// The short variant still matches lines the long one does not.
	keywords := []string{"trading commission fees", "trading commission"}
	matched, ok := matchPrefix("Trading commission 99,000 88,000", keywords)
	if !ok || matched != "trading commission" {
		t.Errorf("got %q/%v, want \"trading commission\"/true", matched, ok)
	}
}

func TestMatchContains(t *testing.T) {
	keywords := []string{"investment deposits"}

	tests := []struct {
		name     string
		label    string
		expected bool
	}{
		{"plain", "Investment deposits", true},
		{"with footnote", "Investment deposits note 7", true},
		{"embedded", "Short-term investment deposits", true},
		{"unrelated", "Investments at amortised cost", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchContains(tt.label, keywords); got != tt.expected {
				t.Errorf("matchContains(%q): got %v, want %v", tt.label, got, tt.expected)
			}
		})
	}
}
