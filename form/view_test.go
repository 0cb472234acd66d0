package form

import (
	"testing"

	"github.com/rustyeddy/sizer/risk"
	"github.com/stretchr/testify/assert"
)

func TestRender_LongExample(t *testing.T) {
	t.Parallel()

	v := Render(longExample())

	assert.Equal(t, KindOK, v.Status)
	assert.Equal(t, "$10.00", v.RiskAmount)
	assert.Equal(t, "0.0200", v.PositionSize)
	assert.Equal(t, "$100.00", v.Margin)
	assert.Empty(t, v.Error)
	assert.Equal(t, "e.g., 49500", v.StopLossPlaceholder)
	assert.True(t, v.IsLong())
}

func TestRender_ShortExample(t *testing.T) {
	t.Parallel()

	raw := longExample()
	raw.Direction = risk.Short
	raw.StopLoss = "50500"
	v := Render(raw)

	assert.Equal(t, "$10.00", v.RiskAmount)
	assert.Equal(t, "0.0200", v.PositionSize)
	assert.Equal(t, "$100.00", v.Margin)
	assert.Equal(t, "e.g., 50500", v.StopLossPlaceholder)
	assert.True(t, v.IsShort())
}

func TestRender_Invalid(t *testing.T) {
	t.Parallel()

	raw := longExample()
	raw.StopLoss = "51000"
	v := Render(raw)

	assert.Equal(t, KindInvalid, v.Status)
	assert.Equal(t, risk.CodeStopNotBelowEntry, v.Code)
	assert.Equal(t, risk.MsgStopNotBelowEntry, v.Error)
	assert.Equal(t, Placeholder, v.PositionSize)
	assert.Equal(t, Placeholder, v.Margin)
	// risk amount only needs capital and risk
	assert.Equal(t, "$10.00", v.RiskAmount)
}

func TestRender_Incomplete(t *testing.T) {
	t.Parallel()

	v := Render(RawInputs{EntryPrice: "50000", StopLoss: "49500", Leverage: "10"})
	assert.Equal(t, KindIncomplete, v.Status)
	assert.Equal(t, "$0.00", v.RiskAmount)
	assert.Equal(t, Placeholder, v.PositionSize)
	assert.Equal(t, Placeholder, v.Margin)
	assert.Empty(t, v.Error)

	v = Render(DefaultInputs())
	assert.Equal(t, KindIncomplete, v.Status)
	assert.Equal(t, "$10.00", v.RiskAmount)
}

func TestRender_DoesNotRoundComputation(t *testing.T) {
	t.Parallel()

	raw := RawInputs{
		Capital:     "1000",
		RiskPercent: "1",
		EntryPrice:  "3",
		StopLoss:    "2.99997",
		Leverage:    "3",
	}
	o := Evaluate(raw)
	res, ok := o.Result()
	assert.True(t, ok)

	v := NewView(raw, o)
	assert.Equal(t, Fixed(res.PositionSize, 4), v.PositionSize)
	assert.Equal(t, "$"+Fixed(res.Margin, 2), v.Margin)
	// margin is computed from the unrounded size
	assert.Equal(t, res.PositionSize*3/3, res.Margin)
}

func TestCurrency(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$0.00", Currency(0))
	assert.Equal(t, "$0.00", Currency(-4))
	assert.Equal(t, "$1234.57", Currency(1234.567))
	assert.Equal(t, "$0.01", Currency(0.005000001))
	assert.Equal(t, "Infinity", Fixed(posInf(), 2))

	// exact ties round up
	assert.Equal(t, "$0.13", Currency(0.125))
}

func TestFixed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x        float64
		decimals int
		want     string
	}{
		{0.03125, 4, "0.0313"},
		{0.125, 2, "0.13"},
		{2.5, 0, "3"},
		{0.5, 0, "1"},
		{-0.125, 2, "-0.13"},
		{1.005, 2, "1.00"}, // 1.005 is stored just below the tie
		{0.02, 4, "0.0200"},
		{0, 2, "0.00"},
		{-0.001, 2, "-0.00"},
		{123456.789, 2, "123456.79"},
		{1e21, 2, "1e+21"},
		{-1.5e22, 4, "-1.5e+22"},
		{7, 0, "7"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Fixed(tt.x, tt.decimals), "Fixed(%v, %d)", tt.x, tt.decimals)
	}
}

func TestRender_RoundsTiesUp(t *testing.T) {
	t.Parallel()

	v := Render(RawInputs{Capital: "12.5", RiskPercent: "1"})
	assert.Equal(t, "$0.13", v.RiskAmount)

	v = Render(RawInputs{
		Capital:     "100",
		RiskPercent: "1",
		EntryPrice:  "33",
		StopLoss:    "1",
		Leverage:    "10",
	})
	assert.Equal(t, KindOK, v.Status)
	assert.Equal(t, "$1.00", v.RiskAmount)
	assert.Equal(t, "0.0313", v.PositionSize)
	assert.Equal(t, "$0.10", v.Margin)
}

func posInf() float64 {
	return ParseFloat("Infinity")
}
