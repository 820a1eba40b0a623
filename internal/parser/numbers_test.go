package parser

import (
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"113,272", 113272, true},
		{"4,134,622", 4134622, true},
		{"1,234.56", 1234.56, true},
		{"(1,234)", -1234, true},
		{"(25.5)", -25.5, true},
		{"-310,195", -310195, true},
		{" 192,248 ", 192248, true},
		{"0", 0, true},
		{"", 0, false},
		{"-", 0, false},
		{"–", 0, false},
		{"—", 0, false},
		{"n/a", 0, false},
		{"NA", 0, false},
		{"()", 0, false},
		{"notes", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseNumber(%q): ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("ParseNumber(%q): got %f, want %f", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseNumberEmbedded(t *testing.T) {
	// The first embedded decimal wins when a token carries extra
	// decoration.
	got, ok := ParseNumber("AED1,500")
	if !ok || got != 1500 {
		t.Errorf("got %f/%v, want 1500/true", got, ok)
	}
}

func TestFindNumbers(t *testing.T) {
	line := "Trading commission fees 113,272 45,827 310,195 138,179"
	values := findNumbers(line)
	want := []float64{113272, 45827, 310195, 138179}
	if len(values) != len(want) {
		t.Fatalf("got %d values, want %d: %v", len(values), len(want), values)
	}
	for i, v := range values {
		if v != want[i] {
			t.Errorf("values[%d]: got %f, want %f", i, v, want[i])
		}
	}
}

func TestIsYearValue(t *testing.T) {
	tests := []struct {
		value    float64
		expected bool
	}{
		{2025, true},
		{2000, true},
		{2099, true},
		{1999, false},
		{2100, false},
		{192248, false},
	}
	for _, tt := range tests {
		if got := isYearValue(tt.value); got != tt.expected {
			t.Errorf("isYearValue(%f): got %v, want %v", tt.value, got, tt.expected)
		}
	}
}
