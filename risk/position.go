package risk

// Inputs are the parsed calculator fields. Leverage is a whole multiplier.
type Inputs struct {
	Capital   float64
	RiskPct   float64 // percent, 1 means 1%
	Entry     float64
	StopLoss  float64
	Leverage  int
	Direction Direction
}

type Result struct {
	PositionSize float64
	Margin       float64
}

// Calculate sizes the position so that a stop-loss hit loses exactly the
// risk amount, and the margin needed to open it at the given leverage.
//
// ok is false when entry and stop are equal; Check rejects that case for
// both directions so callers that run Check first never see it.
func Calculate(in Inputs) (res Result, ok bool) {
	riskAmt := RiskAmount(in.Capital, in.RiskPct)
	diff := PriceDifference(in.Entry, in.StopLoss)
	if diff == 0 {
		return Result{}, false
	}

	size := riskAmt / diff
	return Result{
		PositionSize: size,
		Margin:       size * in.Entry / float64(in.Leverage),
	}, true
}
