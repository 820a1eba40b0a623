package parser

// Portfolio aggregators: pure derived-value functions over the resolved
// metrics map, called on demand by the dashboard layer. Absent metrics
// are skipped, and an all-absent input yields ok=false rather than a
// misleading zero.

// sumPresent adds the metrics that exist in the map.
func sumPresent(metrics map[string]float64, keys ...string) (float64, bool) {
	total := 0.0
	found := false
	for _, key := range keys {
		if v, ok := metrics[key]; ok {
			total += v
			found = true
		}
	}
	return total, found
}

// Portfolio returns the total investable balance: investment deposits
// plus amortised-cost investments plus FVTOCI financial assets.
func Portfolio(metrics map[string]float64) (float64, bool) {
	return sumPresent(metrics,
		"investment_deposits",
		"investments_amortised_cost",
		"fvtoci",
	)
}

// EaRPortfolio returns the earnings-at-risk balance: the rate-sensitive
// subset only. FVTOCI equities generate dividends, not profit-rate
// income, so only the sukuk (debt) portion of FVTOCI counts.
func EaRPortfolio(metrics map[string]float64) (float64, bool) {
	total, found := sumPresent(metrics,
		"investment_deposits",
		"investments_amortised_cost",
	)
	if sukuk, ok := metrics["fvtoci_sukuk"]; ok && sukuk > 0 {
		total += sukuk
		found = true
	}
	return total, found
}
