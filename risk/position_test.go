package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		capital float64
		pct     float64
		want    float64
	}{
		{"one percent", 1000, 1, 10},
		{"half percent", 20000, 0.5, 100},
		{"whole account", 500, 100, 500},
		{"zero capital", 0, 2, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, RiskAmount(tt.capital, tt.pct), 1e-12)
		})
	}
}

func TestCalculate_Long(t *testing.T) {
	t.Parallel()

	got, ok := Calculate(Inputs{
		Capital:   1000,
		RiskPct:   1,
		Entry:     50000,
		StopLoss:  49500,
		Leverage:  10,
		Direction: Long,
	})

	require.True(t, ok)
	assert.InDelta(t, 0.02, got.PositionSize, 1e-12)
	assert.InDelta(t, 100.0, got.Margin, 1e-9)
}

func TestCalculate_ShortIsSymmetric(t *testing.T) {
	t.Parallel()

	long, ok := Calculate(Inputs{Capital: 1000, RiskPct: 1, Entry: 50000, StopLoss: 49500, Leverage: 10, Direction: Long})
	require.True(t, ok)
	short, ok := Calculate(Inputs{Capital: 1000, RiskPct: 1, Entry: 50000, StopLoss: 50500, Leverage: 10, Direction: Short})
	require.True(t, ok)

	assert.Equal(t, long, short)
}

func TestCalculate_ZeroDistance(t *testing.T) {
	t.Parallel()

	got, ok := Calculate(Inputs{Capital: 1000, RiskPct: 1, Entry: 100, StopLoss: 100, Leverage: 5})
	assert.False(t, ok)
	assert.Equal(t, Result{}, got)
}

func TestCalculate_Formula(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Inputs
	}{
		{"btc long", Inputs{Capital: 2500, RiskPct: 2, Entry: 64000, StopLoss: 63000, Leverage: 20, Direction: Long}},
		{"eth short", Inputs{Capital: 800, RiskPct: 0.75, Entry: 3100.5, StopLoss: 3180.25, Leverage: 3, Direction: Short}},
		{"alt long", Inputs{Capital: 150, RiskPct: 5, Entry: 0.00123, StopLoss: 0.00101, Leverage: 1, Direction: Long}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Calculate(tt.in)
			require.True(t, ok)

			wantSize := (tt.in.Capital * tt.in.RiskPct / 100) / abs(tt.in.Entry-tt.in.StopLoss)
			assert.Equal(t, wantSize, got.PositionSize)
			assert.Equal(t, wantSize*tt.in.Entry/float64(tt.in.Leverage), got.Margin)

			// a stop-loss hit loses exactly the risk amount
			loss := got.PositionSize * PriceDifference(tt.in.Entry, tt.in.StopLoss)
			assert.InDelta(t, RiskAmount(tt.in.Capital, tt.in.RiskPct), loss, 1e-9)
		})
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	t.Parallel()

	in := Inputs{Capital: 1234.56, RiskPct: 1.7, Entry: 27123.4, StopLoss: 26555.1, Leverage: 25}
	a, _ := Calculate(in)
	b, _ := Calculate(in)
	assert.Equal(t, a, b)
}
