package parser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/insightdelivered/financial-statement-extractor/internal/models"
)

// NoteField is one sub-metric disclosed inside a note block.
type NoteField struct {
	Metric   string   `yaml:"metric"`
	Keywords []string `yaml:"keywords"`
}

// NoteSpec describes one disclosure note to extract: its heading
// boundaries, the sub-metrics to look for, and how to find the note's
// own stated total.
type NoteSpec struct {
	Name string `yaml:"name"`
	// Start and End are case-insensitive regular expressions bounding
	// the note span inside the full document text.
	Start  string      `yaml:"start"`
	End    string      `yaml:"end"`
	Fields []NoteField `yaml:"fields"`
	// TotalMetric names the note's stated total; TotalFloor is the
	// magnitude below which a numbers-only line cannot be the total.
	TotalMetric string  `yaml:"totalMetric"`
	TotalFloor  float64 `yaml:"totalFloor"`
	// Headline names the primary-statement metric the note reconciles
	// against. Empty means the note is informational only.
	Headline string `yaml:"headline"`
	// FallbackMetric, when set, is filled from the note total if the
	// primary-statement scan missed it or produced an implausibly
	// small reading.
	FallbackMetric string `yaml:"fallbackMetric"`
}

// Config holds the engine's entire keyword vocabulary. It is built once
// at engine startup and treated as immutable; every pipeline stage
// receives it read-only, so page workers share it without locking.
type Config struct {
	// IncomeLabels and BalanceLabels map metric names to ordered lists
	// of acceptable label variants. Income labels are only credible on
	// income-statement pages, balance labels on balance-sheet pages.
	IncomeLabels  map[string][]string
	BalanceLabels map[string][]string
	// Sections maps a section tag to the heading phrases that identify
	// it within the leading text of a page.
	Sections map[models.Section][]string
	// Notes lists the disclosure notes to extract from whole-document
	// text.
	Notes []NoteSpec
}

// DefaultConfig returns the built-in vocabulary for DFM-style
// consolidated financial statements (AED'000 reporting).
func DefaultConfig() *Config {
	return &Config{
		IncomeLabels: map[string][]string{
			"trading_commission": {
				"trading commission fees",
				"trading commission fee",
				"trading commission",
			},
			"investment_income": {
				"investment income",
			},
			"dividend_income": {
				"dividend income",
			},
			"finance_income": {
				"finance income",
			},
		},
		BalanceLabels: map[string][]string{
			"investment_deposits": {
				"investment deposits",
			},
			"investments_amortised_cost": {
				"investments at amortised cost",
				"financial assets at amortised cost",
			},
			"fvtoci": {
				"financial assets measured at fair value through other comprehensive income",
			},
			"cash_and_equivalents": {
				"cash and cash equivalents",
			},
		},
		Sections: map[models.Section][]string{
			models.SectionIncome: {
				"consolidated statement of profit or loss",
				"consolidated statement of income",
				"condensed interim consolidated statement of income",
				"condensed interim consolidated statement of profit or loss",
			},
			models.SectionBalance: {
				"consolidated statement of financial position",
				"condensed interim consolidated statement of financial position",
			},
			models.SectionComprehensive: {
				"consolidated statement of comprehensive income",
				"condensed interim consolidated statement of comprehensive income",
			},
			models.SectionCashFlow: {
				"consolidated statement of cash flows",
				"condensed interim consolidated statement of cash flows",
			},
		},
		Notes: []NoteSpec{
			{
				Name:  "investment_income",
				Start: `\b\d+\.\s*Investment income\b`,
				End:   `\b\d+\.\s*(?:Dividend income|General and administrative|Other income)\b`,
				Fields: []NoteField{
					{Metric: "investment_income_deposits", Keywords: []string{"from investment deposits", "from deposits"}},
					{Metric: "investment_income_amortised_cost", Keywords: []string{"amortised cost"}},
					{Metric: "investment_income_fvtoci", Keywords: []string{"fvtoci", "fvoci", "fair value through other comprehensive"}},
				},
				TotalMetric: "investment_income_total",
				TotalFloor:  100,
				Headline:    "investment_income",
			},
			{
				Name:  "fvtoci_split",
				Start: `\b\d+\.\s*Financial assets measured at fair value through other comprehensive income`,
				End:   `\b\d+\.\s*Investments at amortised cost\b`,
				Fields: []NoteField{
					{Metric: "fvtoci_equity", Keywords: []string{"equity securities"}},
					{Metric: "fvtoci_funds", Keywords: []string{"managed fund"}},
					{Metric: "fvtoci_sukuk", Keywords: []string{"investment in sukuk"}},
				},
				TotalMetric:    "fvtoci_total",
				TotalFloor:     1_000_000,
				FallbackMetric: "fvtoci",
			},
		},
	}
}

// metricCategory returns the section a metric's labels belong to, or
// SectionNone for note-only sub-metrics.
func (c *Config) metricCategory(metric string) models.Section {
	if _, ok := c.IncomeLabels[metric]; ok {
		return models.SectionIncome
	}
	if _, ok := c.BalanceLabels[metric]; ok {
		return models.SectionBalance
	}
	return models.SectionNone
}

// yamlConfig mirrors Config with plain string keys for YAML decoding.
type yamlConfig struct {
	IncomeLabels  map[string][]string `yaml:"incomeLabels"`
	BalanceLabels map[string][]string `yaml:"balanceLabels"`
	Sections      map[string][]string `yaml:"sections"`
	Notes         []NoteSpec          `yaml:"notes"`
}

// LoadConfig reads a YAML vocabulary file and overlays it on the
// defaults. Only the keys present in the file are replaced, so a file
// can extend a single label list without restating the whole
// vocabulary.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}

	cfg := DefaultConfig()
	for metric, keywords := range raw.IncomeLabels {
		cfg.IncomeLabels[metric] = keywords
	}
	for metric, keywords := range raw.BalanceLabels {
		cfg.BalanceLabels[metric] = keywords
	}
	for section, phrases := range raw.Sections {
		cfg.Sections[models.Section(section)] = phrases
	}
	if len(raw.Notes) > 0 {
		cfg.Notes = raw.Notes
	}
	return cfg, nil
}
