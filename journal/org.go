package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatPlanOrg renders a PlanRecord as an Org-mode block. Structured
// facts go in the PROPERTIES drawer; Thesis and Review are left for the
// trader to fill in.
func FormatPlanOrg(p PlanRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Plan: %s @ %s (%s)\n", p.Direction, price(p.Entry), shortID(p.PlanID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":PLAN_ID: %s\n", p.PlanID)
	fmt.Fprintf(&b, ":ID: %s\n", p.PlanID)
	fmt.Fprintf(&b, ":CREATED: %s\n", p.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":DIRECTION: %s\n", p.Direction)
	fmt.Fprintf(&b, ":CAPITAL: %.2f\n", p.Capital)
	fmt.Fprintf(&b, ":RISK_PCT: %g\n", p.RiskPct)
	fmt.Fprintf(&b, ":ENTRY_PRICE: %s\n", price(p.Entry))
	fmt.Fprintf(&b, ":STOP_LOSS: %s\n", price(p.StopLoss))
	fmt.Fprintf(&b, ":LEVERAGE: %dx\n", p.Leverage)
	fmt.Fprintf(&b, ":RISK_AMOUNT: %.2f\n", p.RiskAmount)
	fmt.Fprintf(&b, ":POSITION_SIZE: %.4f\n", p.PositionSize)
	fmt.Fprintf(&b, ":MARGIN: %.2f\n", p.Margin)
	if p.Note != "" {
		fmt.Fprintf(&b, ":NOTE: %s\n", p.Note)
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatPlansOrg renders multiple plans separated by blank lines.
func FormatPlansOrg(plans []PlanRecord) string {
	var b strings.Builder
	for i, p := range plans {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatPlanOrg(p))
	}
	return b.String()
}

func price(x float64) string {
	return fmt.Sprintf("%g", x)
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
