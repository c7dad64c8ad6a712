package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/engine"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/session"
)

// Config holds server settings
type Config struct {
	// IdleTimeout closes connections with no actions for this long. Zero
	// disables reaping.
	IdleTimeout time.Duration
	// MaxHistory bounds each session's remembered rounds
	MaxHistory int
	// Seed makes every session's shuffles reproducible when set
	Seed *int64
}

// DefaultConfig returns the default server configuration
func DefaultConfig() Config {
	return Config{
		IdleTimeout: 5 * time.Minute,
		MaxHistory:  session.DefaultMaxHistory,
	}
}

// Option configures a Server
type Option func(*Server)

// WithConfig replaces the server configuration
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		s.config = cfg
	}
}

// WithClock sets the clock used for sessions and idle reaping
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// Server serves blackjack sessions over WebSocket
type Server struct {
	config      Config
	upgrader    websocket.Upgrader
	router      chi.Router
	connections map[*Connection]bool
	sessions    int
	logger      *log.Logger
	clock       quartz.Clock
	mu          sync.RWMutex
	httpServer  *http.Server
}

// NewServer creates a new WebSocket server
func NewServer(logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		config: DefaultConfig(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		logger:      logger.WithPrefix("server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", s.handleHealth)
	s.router = r
	return s
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, reaping idle connections
// in the background.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	if s.config.IdleTimeout > 0 {
		g.Go(func() error {
			w := s.clock.TickerFunc(ctx, s.config.IdleTimeout/2, func() error {
				s.ReapIdle()
				return nil
			}, "server", "reaper")
			if err := w.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Shutdown stops accepting connections and closes the open ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// ReapIdle closes connections whose session has been idle longer than the
// configured timeout and returns how many were closed
func (s *Server) ReapIdle() int {
	if s.config.IdleTimeout <= 0 {
		return 0
	}
	now := s.clock.Now()

	s.mu.RLock()
	var idle []*Connection
	for conn := range s.connections {
		if now.Sub(conn.Session().LastActive()) >= s.config.IdleTimeout {
			idle = append(idle, conn)
		}
	}
	s.mu.RUnlock()

	for _, conn := range idle {
		s.logger.Info("Closing idle connection", "session", conn.Session().ID())
		_ = conn.Close() // Ignore close errors
	}
	return len(idle)
}

// ConnectionCount returns the number of open connections
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func (s *Server) newSession() *session.Session {
	s.mu.Lock()
	n := s.sessions
	s.sessions++
	s.mu.Unlock()

	opts := []session.Option{
		session.WithClock(s.clock),
		session.WithLogger(s.logger),
		session.WithMaxHistory(s.config.MaxHistory),
	}
	if s.config.Seed != nil {
		opts = append(opts, session.WithEngineOptions(
			engine.WithSeed(randutil.Derive(*s.config.Seed, n)),
		))
	}
	return session.New(opts...)
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", conn.Session().ID(), "total", total)
}

func (s *Server) unregister(conn *Connection) {
	s.mu.Lock()
	delete(s.connections, conn)
	total := len(s.connections)
	s.mu.Unlock()

	tally := conn.Session().Tally()
	s.logger.Info("Client disconnected",
		"session", conn.Session().ID(),
		"rounds", tally.Rounds,
		"total", total)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s, s.newSession())
	s.register(client)
	client.Start()

	go func() {
		<-client.Done()
		s.unregister(client)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}
