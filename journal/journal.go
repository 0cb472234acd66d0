package journal

import (
	"errors"
	"math"
	"time"

	"github.com/rustyeddy/sizer/pkg/id"
	"github.com/rustyeddy/sizer/risk"
)

// ErrNotFound is returned when a plan ID is not in the journal.
var ErrNotFound = errors.New("plan not found")

// ErrNotFinite is returned when a plan holds an infinite or NaN number.
// Such plans cannot be stored or served back as JSON.
var ErrNotFinite = errors.New("plan values are too large to record")

// PlanRecord is one sized trade plan the user chose to keep.
type PlanRecord struct {
	PlanID    string
	CreatedAt time.Time
	Direction risk.Direction

	Capital  float64
	RiskPct  float64
	Entry    float64
	StopLoss float64
	Leverage int

	RiskAmount   float64
	PositionSize float64
	Margin       float64

	Note string
}

// NewPlanRecord stamps a computed plan with a fresh ID.
func NewPlanRecord(in risk.Inputs, res risk.Result, now time.Time) PlanRecord {
	return PlanRecord{
		PlanID:       id.At(now),
		CreatedAt:    now.UTC(),
		Direction:    in.Direction,
		Capital:      in.Capital,
		RiskPct:      in.RiskPct,
		Entry:        in.Entry,
		StopLoss:     in.StopLoss,
		Leverage:     in.Leverage,
		RiskAmount:   risk.RiskAmount(in.Capital, in.RiskPct),
		PositionSize: res.PositionSize,
		Margin:       res.Margin,
	}
}

// Finite reports whether every number in the plan is finite.
func (p PlanRecord) Finite() bool {
	for _, v := range []float64{p.Capital, p.RiskPct, p.Entry, p.StopLoss, p.RiskAmount, p.PositionSize, p.Margin} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Notional is the position value at entry.
func (p PlanRecord) Notional() float64 {
	return risk.Notional(p.PositionSize, p.Entry)
}

type Journal interface {
	RecordPlan(PlanRecord) error
	Close() error
}

// Store is a journal that can also be queried.
type Store interface {
	Journal
	GetPlan(planID string) (PlanRecord, error)
	ListPlansBetween(start, end time.Time) ([]PlanRecord, error)
}
