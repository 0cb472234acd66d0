package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/sizer/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query recorded plans",
	Long: `Query and display plan records from the SQLite journal.

Subcommands:
  plan     - Show a single plan by ID
  today    - List plans recorded today
  day      - List plans recorded on a specific day
  summary  - Totals for the plans recorded on a day

Examples:
  sizer journal plan <plan-id>
  sizer journal today
  sizer journal day 2026-01-15
  sizer journal summary 2026-01-15`,
}

var journalPlanCmd = &cobra.Command{
	Use:   "plan <plan-id>",
	Short: "Show a single plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalPlan,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List plans recorded today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List plans recorded on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalSummaryCmd = &cobra.Command{
	Use:   "summary [YYYY-MM-DD]",
	Short: "Summarize the plans recorded on a day (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalSummary,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalPlanCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalSummaryCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default from config)")
}

func openJournalDB() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		path = cfg.Journal.DBPath
	}
	if path == "" {
		path = "./sizer.sqlite"
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalPlan(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetPlan(args[0])
	if err != nil {
		return fmt.Errorf("get plan: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatPlanOrg(rec))
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	return listDay(cmd, today())
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listDay(cmd, args[0])
}

func listDay(cmd *cobra.Command, day string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	start, end, err := journal.DayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListPlansBetween(start, end)
	if err != nil {
		return fmt.Errorf("query plans: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatPlansOrg(recs))
	return nil
}

func runJournalSummary(cmd *cobra.Command, args []string) error {
	day := today()
	if len(args) == 1 {
		day = args[0]
	}

	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	start, end, err := journal.DayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	recs, err := j.ListPlansBetween(start, end)
	if err != nil {
		return fmt.Errorf("query plans: %w", err)
	}

	return journal.Summarize(day, start, end, recs).WriteOrg(cmd.OutOrStdout())
}

func today() string {
	return time.Now().In(time.Local).Format("2006-01-02")
}
