package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rustyeddy/sizer/journal"
	"github.com/rustyeddy/sizer/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the calculator web form",
	Long: `Serve the calculator as a web page. Results update on every keystroke over a
websocket; the form still works with plain submits when JavaScript is off.

JSON endpoints:
  POST /api/calc        evaluate a set of inputs
  POST /api/plans       record a plan (journal required)
  GET  /api/plans       list plans for ?day=YYYY-MM-DD (sqlite journal)
  GET  /api/plans/{id}  fetch one plan

Example:
  sizer serve --addr :8080`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	readTimeout, writeTimeout, err := cfg.Server.Timeouts()
	if err != nil {
		return err
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	srv := web.NewServer(web.Options{
		Defaults:     cfg.Defaults.Inputs(),
		Journal:      j,
		Logger:       log,
		RateLimit:    cfg.Server.RateLimit,
		Burst:        cfg.Server.Burst,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, addr)
}

// contextOrBackground keeps Run usable when the command is executed
// without a context.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
