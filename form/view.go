package form

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/rustyeddy/sizer/risk"
)

// Placeholder is shown in result fields that have no value.
const Placeholder = "—"

// View is the presentable state of the form: echoed inputs, formatted
// outputs and the error banner text.
type View struct {
	Capital     string
	RiskPercent string
	EntryPrice  string
	StopLoss    string
	Leverage    string
	Direction   risk.Direction

	Status       Kind
	Code         string
	Error        string
	RiskAmount   string
	PositionSize string
	Margin       string

	StopLossPlaceholder string
}

func (v View) IsLong() bool  { return v.Direction == risk.Long }
func (v View) IsShort() bool { return v.Direction == risk.Short }

// Render evaluates raw and formats the result for display.
func Render(raw RawInputs) View {
	return NewView(raw, Evaluate(raw))
}

// NewView formats an already computed outcome.
func NewView(raw RawInputs, o Outcome) View {
	v := View{
		Capital:      raw.Capital,
		RiskPercent:  raw.RiskPercent,
		EntryPrice:   raw.EntryPrice,
		StopLoss:     raw.StopLoss,
		Leverage:     raw.Leverage,
		Direction:    raw.Direction,
		Status:       o.Kind(),
		RiskAmount:   Currency(RiskAmount(raw.Capital, raw.RiskPercent)),
		PositionSize: Placeholder,
		Margin:       Placeholder,
	}

	if raw.Direction == risk.Short {
		v.StopLossPlaceholder = "e.g., 50500"
	} else {
		v.StopLossPlaceholder = "e.g., 49500"
	}

	if viol, ok := o.Violation(); ok {
		v.Code = viol.Code
		v.Error = viol.Msg
	}
	if res, ok := o.Result(); ok {
		if res.PositionSize > 0 {
			v.PositionSize = Fixed(res.PositionSize, 4)
		}
		if res.Margin > 0 {
			v.Margin = "$" + Fixed(res.Margin, 2)
		}
	}
	return v
}

// Currency formats a cash amount with two decimals; non-positive amounts
// show as $0.00.
func Currency(x float64) string {
	if !(x > 0) {
		return "$0.00"
	}
	return "$" + Fixed(x, 2)
}

// Fixed formats x with a fixed number of decimals. An exact tie rounds
// away from zero (0.125 is "0.13"), and magnitudes of 1e21 or more use
// exponent form.
func Fixed(x float64, decimals int) string {
	switch {
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case math.IsNaN(x):
		return "NaN"
	case math.Abs(x) >= 1e21:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}

	// n = floor(|x| * 10^decimals + 1/2), computed on the exact binary value.
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r := new(big.Rat).SetFloat64(math.Abs(x))
	r.Mul(r, new(big.Rat).SetInt(scale))
	r.Add(r, big.NewRat(1, 2))
	digits := new(big.Int).Quo(r.Num(), r.Denom()).String()

	if decimals > 0 {
		if len(digits) <= decimals {
			digits = strings.Repeat("0", decimals-len(digits)+1) + digits
		}
		cut := len(digits) - decimals
		digits = digits[:cut] + "." + digits[cut:]
	}
	if x < 0 {
		return "-" + digits
	}
	return digits
}
