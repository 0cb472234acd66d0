package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/sizer/form"
	"github.com/rustyeddy/sizer/journal"
	"github.com/rustyeddy/sizer/risk"
	"github.com/rustyeddy/sizer/web"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate position size and margin",
	Long: `Calculate the position size that risks a fixed share of capital between the
entry and stop-loss prices, and the margin needed at the given leverage.

Capital, risk and leverage fall back to the configured defaults.

Examples:
  sizer calc --entry 50000 --stop 49500
  sizer calc --capital 2500 --risk 2 --entry 3100 --stop 3180 --direction short --leverage 5
  sizer calc --entry 50000 --stop 49500 --json
  sizer calc --entry 50000 --stop 49500 --record --note "breakout retest"`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runCalc,
}

var (
	calcCapital   string
	calcRisk      string
	calcEntry     string
	calcStop      string
	calcLeverage  string
	calcDirection string
	calcJSON      bool
	calcRecord    bool
	calcNote      string
)

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringVar(&calcCapital, "capital", "", "total account capital")
	calcCmd.Flags().StringVar(&calcRisk, "risk", "", "risk per trade in percent")
	calcCmd.Flags().StringVarP(&calcEntry, "entry", "e", "", "entry price")
	calcCmd.Flags().StringVarP(&calcStop, "stop", "s", "", "stop-loss price")
	calcCmd.Flags().StringVarP(&calcLeverage, "leverage", "l", "", "leverage multiplier")
	calcCmd.Flags().StringVarP(&calcDirection, "direction", "D", "", "trade direction: long or short")
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "print the result as JSON")
	calcCmd.Flags().BoolVar(&calcRecord, "record", false, "save the plan to the configured journal")
	calcCmd.Flags().StringVar(&calcNote, "note", "", "note stored with a recorded plan")
}

// calcInputs starts from the configured defaults and applies the flags
// the user actually set.
func calcInputs(cmd *cobra.Command) (form.RawInputs, error) {
	raw := cfg.Defaults.Inputs()
	flags := cmd.Flags()

	if flags.Changed("capital") {
		raw.Capital = calcCapital
	}
	if flags.Changed("risk") {
		raw.RiskPercent = calcRisk
	}
	if flags.Changed("entry") {
		raw.EntryPrice = calcEntry
	}
	if flags.Changed("stop") {
		raw.StopLoss = calcStop
	}
	if flags.Changed("leverage") {
		raw.Leverage = calcLeverage
	}
	if flags.Changed("direction") {
		dir, err := risk.ParseDirection(calcDirection)
		if err != nil {
			return raw, err
		}
		raw.Direction = dir
	}
	return raw, nil
}

func runCalc(cmd *cobra.Command, args []string) error {
	raw, err := calcInputs(cmd)
	if err != nil {
		return err
	}

	o := form.Evaluate(raw)
	out := cmd.OutOrStdout()

	if calcJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(web.NewCalcResponse(raw, o)); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		printView(out, form.NewView(raw, o))
	}

	if err := o.Err(); err != nil {
		return err
	}

	if calcRecord {
		return recordPlan(cmd, raw, o)
	}
	return nil
}

func printView(w io.Writer, v form.View) {
	fmt.Fprintf(w, "Direction:     %s\n", v.Direction)
	fmt.Fprintf(w, "Risk amount:   %s\n", v.RiskAmount)
	fmt.Fprintf(w, "Position size: %s\n", v.PositionSize)
	fmt.Fprintf(w, "Margin:        %s\n", v.Margin)
}

func recordPlan(cmd *cobra.Command, raw form.RawInputs, o form.Outcome) error {
	res, ok := o.Result()
	if !ok {
		return errors.New("nothing to record: inputs are incomplete")
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return err
	}
	if j == nil {
		return errors.New("no journal configured (set journal.type or SIZER_JOURNAL_DB)")
	}
	defer j.Close()

	in, _ := form.Parse(raw)
	p := journal.NewPlanRecord(in, res, time.Now())
	p.Note = calcNote
	if err := j.RecordPlan(p); err != nil {
		return fmt.Errorf("record plan: %w", err)
	}

	log.Info().Str("plan_id", p.PlanID).Msg("plan recorded")
	if !calcJSON {
		fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Recorded plan %s\n", p.PlanID)
	}
	return nil
}
