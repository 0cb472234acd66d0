package web

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/rustyeddy/sizer/form"
	"github.com/rustyeddy/sizer/journal"
	"github.com/rustyeddy/sizer/risk"
)

// Text is a form field in JSON. Clients may send either a string or a
// bare number; both end up as the raw text the calculator parses.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("field must be a string or number")
	}
	*t = Text(n.String())
	return nil
}

// CalcRequest carries a full set of form fields. Missing fields are
// empty, which the calculator treats as not filled in yet.
type CalcRequest struct {
	Capital   Text   `json:"capital"`
	Risk      Text   `json:"risk"`
	Entry     Text   `json:"entry"`
	Stop      Text   `json:"stop"`
	Leverage  Text   `json:"leverage"`
	Direction string `json:"direction"`
	Note      string `json:"note,omitempty"`
}

func (r CalcRequest) Inputs() (form.RawInputs, error) {
	dir, err := risk.ParseDirection(r.Direction)
	if err != nil {
		return form.RawInputs{}, err
	}
	return form.RawInputs{
		Capital:     string(r.Capital),
		RiskPercent: string(r.Risk),
		EntryPrice:  string(r.Entry),
		StopLoss:    string(r.Stop),
		Leverage:    string(r.Leverage),
		Direction:   dir,
	}, nil
}

// Display holds the strings the form shows.
type Display struct {
	RiskAmount          string `json:"risk_amount"`
	PositionSize        string `json:"position_size"`
	Margin              string `json:"margin"`
	Error               string `json:"error,omitempty"`
	StopLossPlaceholder string `json:"stop_placeholder"`
}

// CalcResponse is the JSON form of one evaluation. Numbers that are not
// finite are left out because JSON cannot carry them.
type CalcResponse struct {
	Status       string   `json:"status"`
	Code         string   `json:"code,omitempty"`
	Error        string   `json:"error,omitempty"`
	Direction    string   `json:"direction,omitempty"`
	RiskAmount   *float64 `json:"risk_amount,omitempty"`
	PositionSize *float64 `json:"position_size,omitempty"`
	Margin       *float64 `json:"margin,omitempty"`
	Display      *Display `json:"display,omitempty"`
}

const statusError = "error"

// NewCalcResponse builds the JSON view of an evaluation.
func NewCalcResponse(raw form.RawInputs, o form.Outcome) CalcResponse {
	v := form.NewView(raw, o)
	resp := CalcResponse{
		Status:     o.Kind().String(),
		Code:       v.Code,
		Error:      v.Error,
		Direction:  raw.Direction.String(),
		RiskAmount: finite(form.RiskAmount(raw.Capital, raw.RiskPercent)),
		Display: &Display{
			RiskAmount:          v.RiskAmount,
			PositionSize:        v.PositionSize,
			Margin:              v.Margin,
			Error:               v.Error,
			StopLossPlaceholder: v.StopLossPlaceholder,
		},
	}
	if res, ok := o.Result(); ok {
		resp.PositionSize = finite(res.PositionSize)
		resp.Margin = finite(res.Margin)
	}
	return resp
}

func errorResponse(msg string) CalcResponse {
	return CalcResponse{Status: statusError, Error: msg}
}

func finite(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}

// PlanJSON is a journaled plan on the wire.
type PlanJSON struct {
	PlanID       string    `json:"plan_id"`
	CreatedAt    time.Time `json:"created_at"`
	Direction    string    `json:"direction"`
	Capital      float64   `json:"capital"`
	RiskPct      float64   `json:"risk_pct"`
	Entry        float64   `json:"entry"`
	StopLoss     float64   `json:"stop_loss"`
	Leverage     int       `json:"leverage"`
	RiskAmount   float64   `json:"risk_amount"`
	PositionSize float64   `json:"position_size"`
	Margin       float64   `json:"margin"`
	Note         string    `json:"note,omitempty"`
}

func planJSON(p journal.PlanRecord) PlanJSON {
	return PlanJSON{
		PlanID:       p.PlanID,
		CreatedAt:    p.CreatedAt,
		Direction:    p.Direction.String(),
		Capital:      p.Capital,
		RiskPct:      p.RiskPct,
		Entry:        p.Entry,
		StopLoss:     p.StopLoss,
		Leverage:     p.Leverage,
		RiskAmount:   p.RiskAmount,
		PositionSize: p.PositionSize,
		Margin:       p.Margin,
		Note:         p.Note,
	}
}

// overlay applies the fields present in vals on top of base. A field that
// is present but empty clears it.
func overlay(base form.RawInputs, vals url.Values) (form.RawInputs, error) {
	raw := base
	set := func(key string, dst *string) {
		if _, ok := vals[key]; ok {
			*dst = vals.Get(key)
		}
	}
	set(form.FieldCapital, &raw.Capital)
	set(form.FieldRisk, &raw.RiskPercent)
	set(form.FieldEntry, &raw.EntryPrice)
	set(form.FieldStop, &raw.StopLoss)
	set(form.FieldLeverage, &raw.Leverage)

	if _, ok := vals[form.FieldDirection]; ok {
		dir, err := risk.ParseDirection(vals.Get(form.FieldDirection))
		if err != nil {
			return base, err
		}
		raw.Direction = dir
	}
	return raw, nil
}
