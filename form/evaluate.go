package form

import (
	"math"

	"github.com/rustyeddy/sizer/risk"
)

// RawInputs hold the calculator fields exactly as typed.
type RawInputs struct {
	Capital     string
	RiskPercent string
	EntryPrice  string
	StopLoss    string
	Leverage    string
	Direction   risk.Direction
}

// DefaultInputs is what a fresh form shows.
func DefaultInputs() RawInputs {
	return RawInputs{
		Capital:     "1000",
		RiskPercent: "1",
		Leverage:    "10",
		Direction:   risk.Long,
	}
}

// Parse converts raw text to numbers. ok is false when any field is
// missing, unreadable or zero; zero counts as missing.
func Parse(raw RawInputs) (in risk.Inputs, ok bool) {
	in = risk.Inputs{
		Capital:   ParseFloat(raw.Capital),
		RiskPct:   ParseFloat(raw.RiskPercent),
		Entry:     ParseFloat(raw.EntryPrice),
		StopLoss:  ParseFloat(raw.StopLoss),
		Direction: raw.Direction,
	}
	lev, levOK := ParseInt(raw.Leverage)
	in.Leverage = lev

	if !levOK || lev == 0 {
		return in, false
	}
	for _, v := range []float64{in.Capital, in.RiskPct, in.Entry, in.StopLoss} {
		if math.IsNaN(v) || v == 0 {
			return in, false
		}
	}
	return in, true
}

// Evaluate runs the full parse, check, calculate sequence on raw input.
func Evaluate(raw RawInputs) Outcome {
	in, ok := Parse(raw)
	if !ok {
		return Incomplete()
	}
	if v := risk.Check(in); v != nil {
		return Invalid(*v)
	}
	res, ok := risk.Calculate(in)
	if !ok {
		return Incomplete()
	}
	return OK(res)
}

// RiskAmount depends on capital and risk only, so it can be shown while
// the rest of the form is still incomplete. It is 0 unless both are
// positive numbers.
func RiskAmount(capital, riskPct string) float64 {
	c := ParseFloat(capital)
	r := ParseFloat(riskPct)
	if math.IsNaN(c) || math.IsNaN(r) || c <= 0 || r <= 0 {
		return 0
	}
	return risk.RiskAmount(c, r)
}
