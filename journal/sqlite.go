package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mattn/go-sqlite3"
)

// DefaultBusyTimeout bounds how long a write keeps retrying while another
// process holds the database lock.
const DefaultBusyTimeout = 2 * time.Second

type SQLite struct {
	db          *sql.DB
	busyTimeout time.Duration
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db, busyTimeout: DefaultBusyTimeout}, nil
}

func (j *SQLite) RecordPlan(p PlanRecord) error {
	if !p.Finite() {
		return ErrNotFinite
	}
	insert := func() error {
		_, err := j.db.Exec(`
			INSERT INTO plans
			(plan_id, created_at, direction, capital, risk_pct, entry_price, stop_loss, leverage,
			 risk_amount, position_size, margin, note)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.PlanID, p.CreatedAt.UTC(), p.Direction.String(), p.Capital, p.RiskPct, p.Entry, p.StopLoss,
			p.Leverage, p.RiskAmount, p.PositionSize, p.Margin, p.Note,
		)
		if err != nil && !isBusy(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxElapsedTime = j.busyTimeout

	if err := backoff.Retry(insert, b); err != nil {
		return fmt.Errorf("insert plan %s: %w", p.PlanID, err)
	}
	return nil
}

func isBusy(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
	}
	return false
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
