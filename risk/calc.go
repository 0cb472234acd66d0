package risk

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// RiskAmount is the cash lost if the stop is hit: capital * pct / 100.
func RiskAmount(capital, riskPct float64) float64 {
	return capital * riskPct / 100
}

// PriceDifference is the distance between entry and stop, in price terms.
func PriceDifference(entry, stop float64) float64 {
	return abs(entry - stop)
}

// Notional is the full position value at entry.
func Notional(size, entry float64) float64 {
	return size * entry
}
