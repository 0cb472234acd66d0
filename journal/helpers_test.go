package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rustyeddy/sizer/risk"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	return j, path
}

func samplePlan(planID string, created time.Time) PlanRecord {
	return PlanRecord{
		PlanID:       planID,
		CreatedAt:    created,
		Direction:    risk.Long,
		Capital:      1000,
		RiskPct:      1,
		Entry:        50000,
		StopLoss:     49500,
		Leverage:     10,
		RiskAmount:   10,
		PositionSize: 0.02,
		Margin:       100,
		Note:         "breakout",
	}
}
