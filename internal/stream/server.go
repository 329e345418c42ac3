package stream

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/countdown/internal/config"
	"github.com/mrz1836/countdown/internal/constants"
	"github.com/mrz1836/countdown/internal/countdown"
	"github.com/mrz1836/countdown/internal/errors"
)

// Server exposes one countdown over HTTP:
//
//	GET /ws         WebSocket stream of Message frames
//	GET /remaining  current Message as JSON
//	GET /healthz    liveness and client count
type Server struct {
	cd     *countdown.Countdown
	hub    *Hub
	cfg    config.ServerConfig
	logger zerolog.Logger
	http   *http.Server
}

// NewServer wires a Hub for cd and the HTTP routes around it.
func NewServer(cd *countdown.Countdown, cfg config.ServerConfig, logger zerolog.Logger) *Server {
	hubCfg := DefaultHubConfig()
	hubCfg.WriteTimeout = cfg.WriteTimeout
	hubCfg.PingInterval = cfg.PingInterval
	if hubCfg.ReadTimeout < 2*cfg.PingInterval {
		hubCfg.ReadTimeout = 2 * cfg.PingInterval
	}
	if len(cfg.AllowedOrigins) > 0 {
		hubCfg.AllowedOrigins = cfg.AllowedOrigins
	}

	s := &Server{
		cd:     cd,
		hub:    NewHub(cd, hubCfg, logger),
		cfg:    cfg,
		logger: logger.With().Str("component", "stream_server").Logger(),
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Hub returns the server's hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the CORS-wrapped route handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.hub.ServeWS)
	mux.HandleFunc("GET /remaining", s.handleRemaining)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodOptions,
		},
		AllowedOrigins: s.hub.config.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(mux)
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve activates the countdown, runs the hub, and serves HTTP on ln until
// ctx is done. The countdown is deactivated on every exit path.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.cd.Run(gctx)
	})

	g.Go(func() error {
		return s.hub.Run(gctx)
	})

	g.Go(func() error {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("stream server listening")
		if err := s.http.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "stream server failed")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), constants.ShutdownTimeout)
		defer cancel()

		s.logger.Info().Msg("stream server shutting down")
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

type healthResponse struct {
	Status  string `json:"status"`
	Sampler string `json:"sampler"`
	Clients int    `json:"clients"`
	Expired bool   `json:"expired"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Sampler: s.cd.State().String(),
		Clients: s.hub.ClientCount(),
		Expired: s.cd.Expired(),
	})
}

func (s *Server) handleRemaining(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.hub.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
