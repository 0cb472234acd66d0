package form

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/sizer/risk"
)

// Field names accepted by Calculator.Set. They match the HTML form names.
const (
	FieldCapital   = "capital"
	FieldRisk      = "risk"
	FieldEntry     = "entry"
	FieldStop      = "stop"
	FieldLeverage  = "leverage"
	FieldDirection = "direction"
)

// Calculator is one live form. Every setter re-evaluates immediately and
// caches the outcome; nothing else is kept between edits.
// A Calculator is not safe for concurrent use.
type Calculator struct {
	raw     RawInputs
	outcome Outcome
}

func NewCalculator(raw RawInputs) *Calculator {
	c := &Calculator{raw: raw}
	c.recompute()
	return c
}

func (c *Calculator) recompute() {
	c.outcome = Evaluate(c.raw)
}

func (c *Calculator) Inputs() RawInputs { return c.raw }
func (c *Calculator) Outcome() Outcome  { return c.outcome }
func (c *Calculator) View() View        { return NewView(c.raw, c.outcome) }

func (c *Calculator) SetCapital(s string)     { c.raw.Capital = s; c.recompute() }
func (c *Calculator) SetRiskPercent(s string) { c.raw.RiskPercent = s; c.recompute() }
func (c *Calculator) SetEntryPrice(s string)  { c.raw.EntryPrice = s; c.recompute() }
func (c *Calculator) SetStopLoss(s string)    { c.raw.StopLoss = s; c.recompute() }
func (c *Calculator) SetLeverage(s string)    { c.raw.Leverage = s; c.recompute() }

func (c *Calculator) SetDirection(d risk.Direction) {
	c.raw.Direction = d
	c.recompute()
}

// SetAll replaces every field at once.
func (c *Calculator) SetAll(raw RawInputs) {
	c.raw = raw
	c.recompute()
}

// Set updates one field by name. Unknown fields and bad directions are
// errors and leave the calculator unchanged.
func (c *Calculator) Set(field, value string) error {
	switch strings.ToLower(field) {
	case FieldCapital:
		c.SetCapital(value)
	case FieldRisk:
		c.SetRiskPercent(value)
	case FieldEntry:
		c.SetEntryPrice(value)
	case FieldStop:
		c.SetStopLoss(value)
	case FieldLeverage:
		c.SetLeverage(value)
	case FieldDirection:
		d, err := risk.ParseDirection(value)
		if err != nil {
			return err
		}
		c.SetDirection(d)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}
