package form

import (
	"fmt"

	"github.com/rustyeddy/sizer/risk"
)

// Kind tags an Outcome.
type Kind int

const (
	KindIncomplete Kind = iota
	KindInvalid
	KindOK
)

func (k Kind) String() string {
	switch k {
	case KindIncomplete:
		return "incomplete"
	case KindInvalid:
		return "invalid"
	case KindOK:
		return "ok"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the result of one evaluation: incomplete input, a validation
// failure, or a sized position. Only the payload matching Kind is set, and
// the zero value is an incomplete outcome.
type Outcome struct {
	kind      Kind
	result    risk.Result
	violation risk.Violation
}

func Incomplete() Outcome { return Outcome{} }

func Invalid(v risk.Violation) Outcome {
	return Outcome{kind: KindInvalid, violation: v}
}

func OK(r risk.Result) Outcome {
	return Outcome{kind: KindOK, result: r}
}

func (o Outcome) Kind() Kind { return o.kind }

func (o Outcome) Result() (risk.Result, bool) {
	return o.result, o.kind == KindOK
}

func (o Outcome) Violation() (risk.Violation, bool) {
	return o.violation, o.kind == KindInvalid
}

// Err returns the violation as an error, or nil.
func (o Outcome) Err() error {
	if o.kind != KindInvalid {
		return nil
	}
	return o.violation
}
