package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rustyeddy/sizer/config"
	"github.com/rustyeddy/sizer/journal"
	"github.com/rustyeddy/sizer/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args. Flag values live in package
// variables, so every call resets them first.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv(config.EnvAddr, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvJournalDB, "")

	cfgFile, logLevel = "", "error"
	calcCapital, calcRisk, calcEntry, calcStop, calcLeverage, calcDirection = "", "", "", "", "", ""
	calcJSON, calcRecord, calcNote = false, false, ""
	journalDBPath = ""
	for _, c := range []string{"capital", "risk", "entry", "stop", "leverage", "direction"} {
		calcCmd.Flags().Lookup(c).Changed = false
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCalcUsesDefaults(t *testing.T) {
	out, err := run(t, "calc", "--entry", "50000", "--stop", "49500")
	require.NoError(t, err)

	assert.Contains(t, out, "Direction:     LONG")
	assert.Contains(t, out, "Risk amount:   $10.00")
	assert.Contains(t, out, "Position size: 0.0200")
	assert.Contains(t, out, "Margin:        $100.00")
}

func TestCalcShort(t *testing.T) {
	out, err := run(t, "calc",
		"--capital", "5000", "--risk", "2", "--entry", "100", "--stop", "105",
		"--leverage", "5", "--direction", "short")
	require.NoError(t, err)

	assert.Contains(t, out, "Direction:     SHORT")
	assert.Contains(t, out, "Risk amount:   $100.00")
	assert.Contains(t, out, "Position size: 20.0000")
	assert.Contains(t, out, "Margin:        $400.00")
}

func TestCalcIncomplete(t *testing.T) {
	out, err := run(t, "calc", "--entry", "50000")
	require.NoError(t, err)

	assert.Contains(t, out, "Position size: —")
	assert.Contains(t, out, "Margin:        —")
}

func TestCalcInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "long stop above entry",
			args: []string{"--entry", "100", "--stop", "101"},
			want: "For a LONG trade, the stop-loss must be below the entry price.",
		},
		{
			name: "short stop below entry",
			args: []string{"--entry", "100", "--stop", "99", "--direction", "sell"},
			want: "For a SHORT trade, the stop-loss must be above the entry price.",
		},
		{
			name: "negative capital",
			args: []string{"--capital", "-1", "--entry", "100", "--stop", "99"},
			want: "All values must be positive numbers.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"calc"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestCalcBadDirection(t *testing.T) {
	_, err := run(t, "calc", "--entry", "100", "--stop", "99", "--direction", "sideways")
	require.Error(t, err)
}

func TestCalcJSON(t *testing.T) {
	out, err := run(t, "calc", "--entry", "50000", "--stop", "49500", "--json")
	require.NoError(t, err)

	var resp web.CalcResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.NotNil(t, resp.PositionSize)
	assert.InDelta(t, 0.02, *resp.PositionSize, 1e-12)
	require.NotNil(t, resp.Margin)
	assert.InDelta(t, 100.0, *resp.Margin, 1e-9)
}

func TestCalcRecordWithoutJournal(t *testing.T) {
	_, err := run(t, "calc", "--entry", "50000", "--stop", "49500", "--record")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no journal configured")
}

func TestCalcRecordAndQuery(t *testing.T) {
	db := filepath.Join(t.TempDir(), "plans.sqlite")

	cfgPath := filepath.Join(t.TempDir(), "sizer.yaml")
	c := config.Default()
	c.Journal.Type = "sqlite"
	c.Journal.DBPath = db
	require.NoError(t, c.SaveToFile(cfgPath))

	out, err := run(t, "calc", "--config", cfgPath,
		"--entry", "50000", "--stop", "49500", "--record", "--note", "retest")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded plan")

	j, err := journal.NewSQLite(db)
	require.NoError(t, err)
	defer j.Close()

	start, end, err := journal.DayBounds(time.Local, today())
	require.NoError(t, err)
	plans, err := j.ListPlansBetween(start, end)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "retest", plans[0].Note)

	out, err = run(t, "journal", "plan", plans[0].PlanID, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, plans[0].PlanID[len(plans[0].PlanID)-8:])

	out, err = run(t, "journal", "summary", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, ":PLANS:       1")
}

func TestJournalDayBadDate(t *testing.T) {
	db := filepath.Join(t.TempDir(), "plans.sqlite")
	_, err := run(t, "journal", "day", "15/01/2026", "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sizer.yaml")

	out, err := run(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	out, err = run(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Journal: none")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sizer version "+version)
}
