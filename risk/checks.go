package risk

const (
	CodeNonPositive       = "NON_POSITIVE"
	CodeStopNotBelowEntry = "STOP_NOT_BELOW_ENTRY"
	CodeStopNotAboveEntry = "STOP_NOT_ABOVE_ENTRY"
)

const (
	MsgNonPositive       = "All values must be positive numbers."
	MsgStopNotBelowEntry = "For a LONG trade, the stop-loss must be below the entry price."
	MsgStopNotAboveEntry = "For a SHORT trade, the stop-loss must be above the entry price."
)

// Violation is a user facing validation failure.
type Violation struct {
	Code string
	Msg  string
}

func (v Violation) Error() string { return v.Msg }

var (
	ErrNonPositive       = Violation{Code: CodeNonPositive, Msg: MsgNonPositive}
	ErrStopNotBelowEntry = Violation{Code: CodeStopNotBelowEntry, Msg: MsgStopNotBelowEntry}
	ErrStopNotAboveEntry = Violation{Code: CodeStopNotAboveEntry, Msg: MsgStopNotAboveEntry}
)

// Check validates parsed inputs in a fixed order: positivity first, then the
// stop-loss side for the direction. Only the first failure is reported.
func Check(in Inputs) *Violation {
	if in.Capital <= 0 || in.RiskPct <= 0 || in.Entry <= 0 || in.StopLoss <= 0 || in.Leverage <= 0 {
		v := ErrNonPositive
		return &v
	}

	switch in.Direction {
	case Long:
		if in.StopLoss >= in.Entry {
			v := ErrStopNotBelowEntry
			return &v
		}
	case Short:
		if in.StopLoss <= in.Entry {
			v := ErrStopNotAboveEntry
			return &v
		}
	}
	return nil
}
