package journal

import (
	"bytes"
	"testing"
	"time"

	"github.com/rustyeddy/sizer/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	a := samplePlan("A", day.Add(time.Hour))
	b := samplePlan("B", day.Add(2*time.Hour))
	b.Direction = risk.Short
	b.Leverage = 25
	b.Margin = 40

	s := Summarize("2024-06-01", day, day.AddDate(0, 0, 1), []PlanRecord{a, b})

	assert.Equal(t, 2, s.Plans)
	assert.Equal(t, 1, s.Longs)
	assert.Equal(t, 1, s.Shorts)
	assert.InDelta(t, 20.0, s.TotalRisk, 1e-9)
	assert.InDelta(t, 140.0, s.TotalMargin, 1e-9)
	assert.InDelta(t, 2000.0, s.TotalNotional, 1e-9)
	assert.Equal(t, 25, s.MaxLeverage)
}

func TestSummaryWriteOrg(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s := Summarize("June 1", day, day.AddDate(0, 0, 1), []PlanRecord{samplePlan("01HV00000000000000PLAN0001", day)})

	var buf bytes.Buffer
	require.NoError(t, s.WriteOrg(&buf))
	out := buf.String()

	assert.Contains(t, out, "* PLANS: June 1")
	assert.Contains(t, out, ":START:       2024-06-01 00:00")
	assert.Contains(t, out, ":PLANS:       1")
	assert.Contains(t, out, ":TOTAL_RISK:  10.00")
	assert.Contains(t, out, "| PLAN0001 | LONG | 50000 | 49500 | 10 | 10.00 | 0.0200 | 100.00 |")
}

func TestSummaryWriteOrgEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Summarize("", time.Time{}, time.Time{}, nil).WriteOrg(&buf))
	assert.Contains(t, buf.String(), "* PLANS: (untitled)")
	assert.Contains(t, buf.String(), "# no plans recorded")
}
