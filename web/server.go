package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/sizer/form"
	"github.com/rustyeddy/sizer/journal"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Options configure a Server. The zero value serves the stock defaults
// with no journal, no rate limit and a silent logger.
type Options struct {
	Defaults form.RawInputs
	Journal  journal.Journal
	Logger   zerolog.Logger

	// RateLimit is requests per second across /api and /ws; 0 disables it.
	RateLimit float64
	Burst     int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	defaults form.RawInputs
	log      zerolog.Logger
	limiter  *rate.Limiter
	opts     Options

	// CSV journals are not safe for concurrent writes.
	jmu     sync.Mutex
	journal journal.Journal

	now func() time.Time
}

func NewServer(opts Options) *Server {
	s := &Server{
		defaults: opts.Defaults,
		log:      opts.Logger.With().Str("component", "web").Logger(),
		journal:  opts.Journal,
		opts:     opts,
		now:      time.Now,
	}
	if opts.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.Burst, 1))
	}
	return s
}

// Handler returns the routed handler with logging and rate limiting.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/calc", s.handleCalc)
	mux.HandleFunc("POST /api/plans", s.handleRecordPlan)
	mux.HandleFunc("GET /api/plans", s.handleListPlans)
	mux.HandleFunc("GET /api/plans/{id}", s.handleGetPlan)
	mux.HandleFunc("GET /ws", s.handleWS)

	return s.logRequests(s.rateLimit(mux))
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Bool("journal", s.journal != nil).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) recordPlan(p journal.PlanRecord) error {
	s.jmu.Lock()
	defer s.jmu.Unlock()
	return s.journal.RecordPlan(p)
}
