package parser

import "testing"

func TestPortfolio(t *testing.T) {
	tests := []struct {
		name     string
		metrics  map[string]float64
		expected float64
		ok       bool
	}{
		{
			"all components",
			map[string]float64{
				"investment_deposits":        4134622,
				"investments_amortised_cost": 1052000,
				"fvtoci":                     160000,
			},
			5346622, true,
		},
		{
			"partial components",
			map[string]float64{"investment_deposits": 4134622},
			4134622, true,
		},
		{
			"unrelated metrics only",
			map[string]float64{"trading_commission": 310195},
			0, false,
		},
		{
			"empty",
			map[string]float64{},
			0, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Portfolio(tt.metrics)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("got %f, want %f", got, tt.expected)
			}
		})
	}
}

func TestEaRPortfolio(t *testing.T) {
	tests := []struct {
		name     string
		metrics  map[string]float64
		expected float64
		ok       bool
	}{
		{
			"sukuk included",
			map[string]float64{
				"investment_deposits":        4134622,
				"investments_amortised_cost": 1052000,
				"fvtoci":                     160000,
				"fvtoci_sukuk":               60000,
			},
			5246622, true,
		},
		{
			"whole fvtoci excluded",
			map[string]float64{
				"investment_deposits": 4134622,
				"fvtoci":              160000,
			},
			4134622, true,
		},
		{
			"sukuk alone",
			map[string]float64{"fvtoci_sukuk": 60000},
			60000, true,
		},
		{
			"non-positive sukuk ignored",
			map[string]float64{
				"investment_deposits": 4134622,
				"fvtoci_sukuk":        0,
			},
			4134622, true,
		},
		{
			"empty",
			map[string]float64{},
			0, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EaRPortfolio(tt.metrics)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("got %f, want %f", got, tt.expected)
			}
		})
	}
}
