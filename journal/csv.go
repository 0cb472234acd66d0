package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{
	"plan_id", "created_at", "direction", "capital", "risk_pct", "entry_price", "stop_loss",
	"leverage", "risk_amount", "position_size", "margin", "note",
}

// CSV appends plans to a file. It is write-only.
type CSV struct {
	w *csv.Writer
	f *os.File
}

// NewCSV opens path for appending and writes the header when the file is
// new or empty.
func NewCSV(path string) (*CSV, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			_ = f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return &CSV{w: w, f: f}, nil
}

func (j *CSV) RecordPlan(p PlanRecord) error {
	if !p.Finite() {
		return ErrNotFinite
	}
	err := j.w.Write([]string{
		p.PlanID,
		p.CreatedAt.UTC().Format(time.RFC3339Nano),
		p.Direction.String(),
		f(p.Capital),
		f(p.RiskPct),
		f(p.Entry),
		f(p.StopLoss),
		strconv.Itoa(p.Leverage),
		f(p.RiskAmount),
		f(p.PositionSize),
		f(p.Margin),
		p.Note,
	})
	if err != nil {
		return fmt.Errorf("write plan %s: %w", p.PlanID, err)
	}

	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		_ = j.f.Close()
		return err
	}
	return j.f.Close()
}

// f keeps full precision so rows can be re-read exactly.
func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
