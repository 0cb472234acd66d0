package journal

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/sizer/risk"
)

// Summary aggregates the plans recorded over a period.
type Summary struct {
	Title string
	Start time.Time
	End   time.Time

	Plans  int
	Longs  int
	Shorts int

	TotalRisk     float64
	TotalMargin   float64
	TotalNotional float64
	MaxLeverage   int

	Rows []PlanRecord
}

// Summarize builds a Summary for plans created within [start, end).
func Summarize(title string, start, end time.Time, plans []PlanRecord) Summary {
	s := Summary{Title: title, Start: start, End: end, Rows: plans}
	for _, p := range plans {
		s.Plans++
		if p.Direction == risk.Short {
			s.Shorts++
		} else {
			s.Longs++
		}
		s.TotalRisk += p.RiskAmount
		s.TotalMargin += p.Margin
		s.TotalNotional += p.Notional()
		if p.Leverage > s.MaxLeverage {
			s.MaxLeverage = p.Leverage
		}
	}
	return s
}

var summaryOrgFuncs = template.FuncMap{
	"short": shortID,
	"price": price,
}

var summaryOrg = template.Must(template.New("summary").Funcs(summaryOrgFuncs).Parse(SummaryOrgTemplate))

// WriteOrg renders the summary as an Org-mode section.
func (s Summary) WriteOrg(w io.Writer) error {
	if err := summaryOrg.Execute(w, s); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}

const SummaryOrgTemplate = `* PLANS: {{if .Title}}{{.Title}}{{else}}(untitled){{end}}
:PROPERTIES:
:START:       {{.Start.Format "2006-01-02 15:04"}}
:END_TIME:    {{.End.Format "2006-01-02 15:04"}}
:PLANS:       {{.Plans}}
:LONGS:       {{.Longs}}
:SHORTS:      {{.Shorts}}
:TOTAL_RISK:  {{printf "%.2f" .TotalRisk}}
:TOTAL_MARGIN: {{printf "%.2f" .TotalMargin}}
:NOTIONAL:    {{printf "%.2f" .TotalNotional}}
:MAX_LEV:     {{.MaxLeverage}}
:END:
{{- if .Rows }}

| Plan     | Side  | Entry | Stop | Lev | Risk | Size | Margin |
|----------+-------+-------+------+-----+------+------+--------|
{{- range .Rows }}
| {{short .PlanID}} | {{.Direction}} | {{price .Entry}} | {{price .StopLoss}} | {{.Leverage}} | {{printf "%.2f" .RiskAmount}} | {{printf "%.4f" .PositionSize}} | {{printf "%.2f" .Margin}} |
{{- end }}
{{- else }}

# no plans recorded
{{- end }}
`
