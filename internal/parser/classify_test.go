package parser

import (
	"strings"
	"testing"

	"github.com/insightdelivered/financial-statement-extractor/internal/models"
)

func TestClassifyPage(t *testing.T) {
	e := NewEngine(nil)

	tests := []struct {
		name     string
		text     string
		expected models.Section
	}{
		{
			"income heading",
			"Condensed interim consolidated statement of profit or loss\nfor the period ended 30 September 2025",
			models.SectionIncome,
		},
		{
			"annual income heading",
			"Consolidated statement of income\nfor the year ended 31 December 2024",
			models.SectionIncome,
		},
		{
			"balance heading",
			"Consolidated statement of financial position\nas at 31 December 2024",
			models.SectionBalance,
		},
		{
			"comprehensive heading",
			"Consolidated statement of comprehensive income\nfor the year ended 31 December 2024",
			models.SectionComprehensive,
		},
		{
			"cash flow heading",
			"Consolidated statement of cash flows\nfor the year ended 31 December 2024",
			models.SectionCashFlow,
		},
		{
			"notes page",
			"Notes to the consolidated financial statements\n18. Investment income",
			models.SectionNone,
		},
		{
			"heading beyond window",
			strings.Repeat("narrative filler text ", 100) + "consolidated statement of financial position",
			models.SectionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.classifyPage(tt.text); got != tt.expected {
				t.Errorf("classifyPage: got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestClassifyPageIncomeBeforeComprehensive(t *testing.T) {
	// A profit-or-loss page often mentions comprehensive income in a
	// later line; the profit-or-loss heading must win.
	e := NewEngine(nil)
	text := "Consolidated statement of profit or loss\n" +
		"(see also the consolidated statement of comprehensive income)"
	if got := e.classifyPage(text); got != models.SectionIncome {
		t.Errorf("got %q, want %q", got, models.SectionIncome)
	}
}

func TestDetectColumnCount(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{
			"interim four columns",
			"Three-month period ended Nine-month period ended\n2025 2024 2025 2024\nAED'000 AED'000 AED'000 AED'000",
			4,
		},
		{
			"annual two columns",
			"As at 31 December\n2024 2023\nAED'000 AED'000",
			2,
		},
		{
			"no year header",
			"Notes to the consolidated financial statements\ncontinued",
			0,
		},
		{
			"single year ignored",
			"for the year ended 31 December 2024\nRevenue 1,000",
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectColumnCount(tt.text); got != tt.expected {
				t.Errorf("detectColumnCount: got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestDetectColumnCountHeaderWindow(t *testing.T) {
	// Year pairs deep in the page body are data, not column headers.
	body := strings.Repeat("line without years\n", headerLineWindow) + "2025 2024\n"
	if got := detectColumnCount(body); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestDetectPeriodMonths(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"nine months", "for the nine-month period ended 30 September 2025", 9},
		{"six months", "for the six-month period ended 30 June 2025", 6},
		{"three months", "for the three-month period ended 31 March 2025", 3},
		{"full year", "for the year ended 31 December 2024", 12},
		{"hyphen break", "for the nine- month period ended 30 September 2025", 9},
		{"no wording", "consolidated financial statements", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectPeriodMonths(tt.text); got != tt.expected {
				t.Errorf("detectPeriodMonths: got %d, want %d", got, tt.expected)
			}
		})
	}
}
