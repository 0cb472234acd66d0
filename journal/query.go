package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/sizer/risk"
)

const planColumns = `plan_id, created_at, direction, capital, risk_pct, entry_price, stop_loss,
	leverage, risk_amount, position_size, margin, note`

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(s scanner) (PlanRecord, error) {
	var (
		rec PlanRecord
		dir string
	)
	err := s.Scan(
		&rec.PlanID,
		&rec.CreatedAt,
		&dir,
		&rec.Capital,
		&rec.RiskPct,
		&rec.Entry,
		&rec.StopLoss,
		&rec.Leverage,
		&rec.RiskAmount,
		&rec.PositionSize,
		&rec.Margin,
		&rec.Note,
	)
	if err != nil {
		return PlanRecord{}, err
	}
	if rec.Direction, err = risk.ParseDirection(dir); err != nil {
		return PlanRecord{}, fmt.Errorf("plan %s: %w", rec.PlanID, err)
	}
	return rec, nil
}

// GetPlan returns a single plan record by ID.
func (j *SQLite) GetPlan(planID string) (PlanRecord, error) {
	row := j.db.QueryRow(`SELECT `+planColumns+` FROM plans WHERE plan_id = ?`, planID)

	rec, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PlanRecord{}, fmt.Errorf("plan %q: %w", planID, ErrNotFound)
		}
		return PlanRecord{}, err
	}
	return rec, nil
}

// ListPlansBetween returns plans whose created_at is within [start, end).
func (j *SQLite) ListPlansBetween(start, end time.Time) ([]PlanRecord, error) {
	rows, err := j.db.Query(`
		SELECT `+planColumns+`
		FROM plans
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at ASC, plan_id ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PlanRecord
	for rows.Next() {
		rec, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DayBounds returns [start of day, start of next day) for a YYYY-MM-DD
// date in loc.
func DayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
