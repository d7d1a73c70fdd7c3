// Package vizweb serves the run controller over HTTP for the browser
// visualizer: board setup, single steps, pause/resume/speed intents, and a
// websocket stream of frames.
package vizweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/internal/config"
	"github.com/pdrpinto/gridsearch/internal/scenario"
	"github.com/pdrpinto/gridsearch/runner"
)

// Server holds one board at a time. Replacing the board stops any stream
// attached to the previous one.
type Server struct {
	cfg      config.Config
	logger   *slog.Logger
	engine   *gin.Engine
	upgrader websocket.Upgrader

	mu      sync.Mutex
	session *session
}

type session struct {
	grid       *gridsearch.Grid
	algorithm  gridsearch.Algorithm
	heuristic  string
	controller *runner.Controller

	// streaming admits a single /api/stream per board.
	streaming sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// New builds the server with a default random board loaded.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger.With("component", "vizweb"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return cfg.Server.AllowOrigin == "*" || r.Header.Get("Origin") == cfg.Server.AllowOrigin },
		},
	}

	grid, err := scenario.Random(scenario.DefaultRandomOptions())
	if err != nil {
		return nil, err
	}
	initial, err := s.newSession(grid, cfg.Algorithm(), cfg.Search.Heuristic, cfg.Search.StepsPerSecond)
	if err != nil {
		return nil, fmt.Errorf("initial board: %w", err)
	}
	s.session = initial
	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(s.logger), corsMiddleware(s.cfg.Server.AllowOrigin))
	if s.cfg.Server.Compression {
		engine.Use(brotliMiddleware(streamPath))
	}

	engine.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	api := engine.Group("/api")
	api.POST("/grid", s.handleGrid)
	api.POST("/random", s.handleRandom)
	api.PUT("/algorithm", s.handleAlgorithm)
	api.POST("/clear", s.handleClear)
	api.POST("/step", s.handleStep)
	api.POST("/reset", s.handleReset)
	api.POST("/pause", s.handlePause)
	api.POST("/resume", s.handleResume)
	api.PUT("/speed", s.handleSpeed)
	api.GET("/snapshot", s.handleSnapshot)
	api.GET("/path", s.handlePath)
	api.GET("/stream", s.handleStream)
	return engine
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Serve runs until ctx is done, then shuts down within the configured grace.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("serving", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.stopSession()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) newSession(grid *gridsearch.Grid, algorithm gridsearch.Algorithm, heuristicName string, stepsPerSecond float64) (*session, error) {
	heuristic, err := gridsearch.ParseHeuristic(heuristicName)
	if err != nil {
		return nil, err
	}
	stepper, err := gridsearch.NewStepper(grid, algorithm, grid.Start(), grid.End(),
		gridsearch.WithHeuristic(heuristic),
		gridsearch.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &session{
		grid:       grid,
		algorithm:  algorithm,
		heuristic:  heuristicName,
		controller: runner.New(stepper, runner.WithStepsPerSecond(stepsPerSecond), runner.WithLogger(s.logger)),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

func (s *Server) current() *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Server) replace(next *session) {
	s.mu.Lock()
	previous := s.session
	s.session = next
	s.mu.Unlock()
	if previous != nil {
		previous.cancel()
	}
}

func (s *Server) stopSession() {
	if current := s.current(); current != nil {
		current.cancel()
	}
}
