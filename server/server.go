package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Ashenafi-pixel/goal-ladder/config"
	"github.com/Ashenafi-pixel/goal-ladder/gamemath"
	"github.com/Ashenafi-pixel/goal-ladder/games"
	"github.com/Ashenafi-pixel/goal-ladder/games/ladder"
	"github.com/Ashenafi-pixel/goal-ladder/platform"
	"github.com/Ashenafi-pixel/goal-ladder/round"
)

type Server struct {
	cfg     *config.Config
	log     *zap.Logger
	client  *platform.Client // nil when PLATFORM_URL is unset
	results *round.ResultsStore
	ladders *gamemath.Store
	catalog *games.Catalog
	game    *ladder.Game
	runner  *ladder.Runner

	walletMu sync.Mutex
	wallets  map[string]wallet // by session ID
}

// Option adjusts the engine options before the game is built.
type Option func(*ladder.Options)

// WithSource replaces the secure random source, for replays and tests.
func WithSource(src ladder.Source) Option {
	return func(o *ladder.Options) { o.Source = src }
}

func New(cfg *config.Config, catalog *games.Catalog, ladders *gamemath.Store, results *round.ResultsStore, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:     cfg,
		log:     logger,
		results: results,
		ladders: ladders,
		catalog: catalog,
		wallets: make(map[string]wallet),
	}
	if cfg.PlatformURL != "" {
		s.client = platform.NewClient(cfg.PlatformURL, cfg.GameName, cfg.GameProvider)
	}
	o := ladder.Options{
		Recorder:       s,
		Logger:         logger.Named("ladder"),
		CelebrationFor: cfg.CelebrationFor,
		JackpotSeed:    cfg.JackpotSeed,
	}
	for _, opt := range opts {
		opt(&o)
	}
	s.game = ladder.NewGame(o)
	s.runner = ladder.NewRunner(s.game, cfg.TickInterval, logger.Named("runner"))
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/health", s.health)
	r.Route("/ladder", func(r chi.Router) {
		r.Get("/competitions", s.competitions)
		r.Get("/matches", s.matches)
		r.Post("/ladders", s.registerLadder)
		r.Get("/ladders/{modelID}", s.getLadder)
		r.Get("/balance", s.balance)

		r.Post("/session", s.startSession)
		r.Get("/session", s.getSession)
		r.Delete("/session", s.resetSession)
		r.Post("/session/boost/select", s.boostSelect)
		r.Post("/session/boost/confirm", s.boostConfirm)
		r.Post("/session/boost/cancel", s.boostCancel)
		r.Post("/session/simulate", s.simulate)
		r.Post("/session/speed", s.speed)
		r.Get("/session/stream", s.stream)
	})
	return r
}

// Run serves until ctx is cancelled, then stops the runner and drains connections.
func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Port
	if port <= 0 {
		port = 8081
	}
	addr := ":" + strconv.Itoa(port)
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("ladder listening", zap.String("addr", addr), zap.String("platform", s.cfg.PlatformURL))
		errCh <- hs.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.runner.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func cors(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// requestLogger logs method, path and status for each request (no body or secrets).
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "goal-ladder"})
}
