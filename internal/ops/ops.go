// Package ops serves the health and metrics endpoints and runs the
// periodic maintenance jobs.
package ops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/roylee0704/gron"

	"github.com/jamshidbekman/rivojbot/core/buildinfo"
	"github.com/jamshidbekman/rivojbot/core/logger"
	"github.com/jamshidbekman/rivojbot/internal/stats"
)

// StatsSource computes the current lead statistics.
type StatsSource interface {
	Snapshot(ctx context.Context) stats.Snapshot
}

// SessionTable is the in-memory session store.
type SessionTable interface {
	Len() int
	Sweep(idle time.Duration) int
}

// Check probes one dependency; nil means healthy.
type Check func(ctx context.Context) error

type Options struct {
	// Listen is the HTTP address; empty runs the jobs without a server.
	Listen         string
	HealthInterval time.Duration
	SweepInterval  time.Duration
	SessionTTL     time.Duration
	Checks         map[string]Check
}

// Server owns the ops HTTP listener and the gron scheduler.
type Server struct {
	stats    StatsSource
	sessions SessionTable
	opts     Options
	started  time.Time

	srv  *http.Server
	cron *gron.Cron
}

func New(src StatsSource, sessions SessionTable, opts Options) *Server {
	if opts.HealthInterval <= 0 {
		opts.HealthInterval = 5 * time.Minute
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = time.Minute
	}
	return &Server{stats: src, sessions: sessions, opts: opts, started: time.Now()}
}

// Handler returns the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.health)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type leadsSection struct {
	Total int `json:"total"`
	Today int `json:"today"`
}

type healthResponse struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	Uptime        string            `json:"uptime"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Leads         leadsSection      `json:"leads"`
	Sessions      int               `json:"sessions"`
	Dependencies  map[string]string `json:"dependencies,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	snap := s.stats.Snapshot(ctx)
	uptime := time.Since(s.started)
	resp := healthResponse{
		Status:        "ok",
		Version:       buildinfo.Version,
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: uptime.Seconds(),
		Leads:         leadsSection{Total: snap.Total, Today: snap.Today},
		Sessions:      s.sessions.Len(),
	}

	code := http.StatusOK
	if len(s.opts.Checks) > 0 {
		resp.Dependencies = make(map[string]string, len(s.opts.Checks))
		for name, check := range s.opts.Checks {
			if err := check(ctx); err != nil {
				resp.Dependencies[name] = "unhealthy: " + err.Error()
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			resp.Dependencies[name] = "healthy"
		}
	}

	body, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// LogHealth writes the periodic health line.
func (s *Server) LogHealth(ctx context.Context) {
	snap := s.stats.Snapshot(ctx)
	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.Int("leads_total", snap.Total),
		slog.Int("leads_today", snap.Today),
		slog.Int("sessions", s.sessions.Len()),
	}
	if len(s.opts.Checks) > 0 {
		names := make([]string, 0, len(s.opts.Checks))
		for name := range s.opts.Checks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			attrs = append(attrs, slog.String("dep_"+name, logger.Status(s.opts.Checks[name](ctx))))
		}
	}
	logger.Info(ctx, logger.CompOps, "health", attrs...)
}

// SweepSessions evicts idle sessions.
func (s *Server) SweepSessions(ctx context.Context) int {
	n := s.sessions.Sweep(s.opts.SessionTTL)
	if n > 0 {
		logger.Debug(ctx, logger.CompOps, "sessions.sweep",
			slog.Int("removed", n),
			slog.Int("remaining", s.sessions.Len()),
		)
	}
	return n
}

// Start launches the scheduler and, when configured, the HTTP listener.
// The listener is bound before Start returns so address errors surface
// at startup.
func (s *Server) Start(ctx context.Context) error {
	bg := context.WithoutCancel(ctx)

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.opts.HealthInterval), func() { s.LogHealth(bg) })
	if s.opts.SessionTTL > 0 {
		s.cron.AddFunc(gron.Every(s.opts.SweepInterval), func() { s.SweepSessions(bg) })
	}
	s.cron.Start()

	if s.opts.Listen == "" {
		return nil
	}
	ln, err := net.Listen("tcp", s.opts.Listen)
	if err != nil {
		s.cron.Stop()
		return fmt.Errorf("ops: listen %s: %w", s.opts.Listen, err)
	}
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(bg, logger.CompOps, "http.serve", slog.String("status", "fail"), logger.Err(err))
		}
	}()
	logger.Info(ctx, logger.CompOps, "http.listen", slog.String("addr", ln.Addr().String()))
	return nil
}

// Stop halts the scheduler and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	if s.cron != nil {
		s.cron.Stop()
	}
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
