package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/sizer/config"
	"github.com/rustyeddy/sizer/internal/logx"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sizer",
	Short: "Position size and margin calculator for leveraged trades",
	Long: `Sizer works out how large a leveraged position can be so that hitting the
stop-loss loses exactly the amount you are willing to risk, and how much
margin that position needs.

It provides:
  - A one-shot calculator (sizer calc)
  - A web form that recomputes on every keystroke (sizer serve)
  - An optional journal of the plans you decide to keep`,
	PersistentPreRunE: loadConfig,
}

var (
	cfgFile  string
	logLevel string

	cfg *config.Config
	log zerolog.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}

	log = logx.New(cfg.Server.LogLevel, cmd.ErrOrStderr())
	log.Debug().
		Str("config", cfgFile).
		Str("addr", cfg.Server.Addr).
		Str("journal", cfg.Journal.Type).
		Msg("configuration loaded")
	return nil
}
