// Package server exposes the render pipeline over HTTP.
//
// Routes (all JSON unless noted):
//
//	GET    /health
//	GET    /v1/palettes
//	GET    /v1/backgrounds
//	POST   /v1/snapshots                        store a snapshot
//	GET    /v1/snapshots                        list stored snapshots
//	GET    /v1/snapshots/{id}                   fetch one
//	DELETE /v1/snapshots/{id}
//	GET    /v1/snapshots/{id}/layout            display fit and geometry
//	GET    /v1/snapshots/{id}/render.{format}   svg, png, pdf, json, dot, graph
//	GET    /v1/snapshots/{id}/reveal            websocket reveal stream
//	POST   /v1/mazes                            generate through a maze.Engine
//
// Render parameters come from the query string: width, height, scale,
// topology, cell_size, palette, heatmap, background, gradient, tint,
// solution, line, detailed, png_scale.
package server

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/mazer/pkg/buildinfo"
	"github.com/matzehuels/mazer/pkg/cache"
	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/observability"
	"github.com/matzehuels/mazer/pkg/pipeline"
	"github.com/matzehuels/mazer/pkg/reveal"
	"github.com/matzehuels/mazer/pkg/store"
)

// Server serves the HTTP API.
type Server struct {
	cfg      Config
	store    store.Store
	runner   *pipeline.Runner
	logger   *log.Logger
	engine   maze.Engine
	reveal   []reveal.Option
	upgrader websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithEngine enables POST /v1/mazes.
func WithEngine(e maze.Engine) Option {
	return func(s *Server) { s.engine = e }
}

// WithRevealOptions configures the animators behind reveal streams.
func WithRevealOptions(opts ...reveal.Option) Option {
	return func(s *Server) { s.reveal = append(s.reveal, opts...) }
}

// New creates a server. A nil store uses a MemoryStore, a nil runner a
// runner without cache, a nil logger the default logger.
func New(cfg Config, st store.Store, runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		cfg:    cfg,
		store:  st,
		runner: runner,
		logger: logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open builds a server from cfg, connecting the configured cache and store.
// Backends are chosen in order: MongoDB, a store directory, memory; Redis
// or no cache.
func Open(ctx context.Context, cfg Config, logger *log.Logger, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	var c cache.Cache
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		c = rc
		logger.Info("using redis cache")
	}
	var keyer cache.Keyer
	if sk, ok := cache.NewScopedKeyer(nil, cfg.CachePrefix).(*cache.ScopedKeyer); ok {
		logger.Info("cache keys scoped", "prefix", sk.Prefix())
		keyer = sk
	}
	runner := pipeline.NewRunner(c, keyer, logger)

	var st store.Store
	switch {
	case cfg.MongoURI != "":
		ms, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			_ = runner.Close()
			return nil, err
		}
		st = ms
		logger.Info("using mongodb store", "database", cfg.MongoDB)
	case cfg.StoreDir != "":
		fs, err := store.NewFileStore(cfg.StoreDir)
		if err != nil {
			_ = runner.Close()
			return nil, err
		}
		st = fs
		logger.Info("using file store", "dir", fs.Path())
	default:
		st = store.NewMemoryStore()
		logger.Info("using in-memory store")
	}

	return New(cfg, st, runner, logger, opts...), nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/palettes", s.handlePalettes)
		v1.Get("/backgrounds", s.handleBackgrounds)
		v1.Post("/mazes", s.handleGenerate)
		v1.Route("/snapshots", func(sr chi.Router) {
			sr.Post("/", s.handleCreateSnapshot)
			sr.Get("/", s.handleListSnapshots)
			sr.Route("/{id}", func(one chi.Router) {
				one.Get("/", s.handleGetSnapshot)
				one.Delete("/", s.handleDeleteSnapshot)
				one.Get("/layout", s.handleLayout)
				one.Get("/render.{format}", s.handleRender)
				one.Get("/reveal", s.handleReveal)
			})
		})
	})
	return r
}

// instrument reports every request to the HTTP hooks and the debug log.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(s.cfg.CORSOrigins, "*") {
		return true
	}
	return slices.Contains(s.cfg.CORSOrigins, origin)
}

// Run serves until ctx is cancelled, then shuts down gracefully. Expired
// snapshots are purged every CleanupInterval.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	go s.cleanupLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr, "version", buildinfo.Current().Version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// CleanupInterval is how often Run purges expired snapshots.
const CleanupInterval = 10 * time.Minute

func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("snapshot cleanup failed", "error", err)
			}
		}
	}
}

// Close releases the store and the runner's cache.
func (s *Server) Close() error {
	err := s.store.Close()
	if cerr := s.runner.Close(); err == nil {
		err = cerr
	}
	return err
}
