package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/concave-dev/crpt/internal/api/dispatch"
	"github.com/concave-dev/crpt/internal/logging"
	"github.com/concave-dev/crpt/internal/netutil"
	"github.com/concave-dev/crpt/internal/version"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Represents the crptd gateway server
type Server struct {
	dispatcher     *dispatch.Dispatcher
	gate           GateStatser
	registry       *prometheus.Registry
	limiter        *clientLimiter
	trustedProxies []string
	resultTimeout  time.Duration
	bindAddr       string

	version   string
	startTime time.Time

	httpServer *http.Server
	listener   net.Listener
	cancel     context.CancelFunc
	mu         sync.Mutex
}

// NewServer validates config and creates a gateway server instance
func NewServer(config *Config) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		dispatcher:     config.Dispatcher,
		gate:           config.Gate,
		registry:       config.Registry,
		limiter:        newClientLimiter(config.IngressRPS, config.IngressBurst),
		trustedProxies: config.TrustedProxies,
		resultTimeout:  config.ResultTimeout,
		bindAddr:       config.BindAddr,
		version:        version.CrptdVersion,
		startTime:      time.Now(),
	}, nil
}

// Handler builds the gin engine with middleware and routes
func (s *Server) Handler() http.Handler {
	router := gin.New()

	// gin trusts every proxy by default, which lets callers pick their own
	// ClientIP through X-Forwarded-For
	if err := router.SetTrustedProxies(s.trustedProxies); err != nil {
		logging.Error("Ignoring trusted proxies %v: %v", s.trustedProxies, err)
		_ = router.SetTrustedProxies(nil)
	}

	// Configure Gin logging only if not already configured by CLI tools
	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("INFO", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	router.Use(s.requestIDMiddleware())
	router.Use(s.loggingMiddleware())
	router.Use(s.corsMiddleware())
	router.Use(gin.Recovery())

	s.setupRoutes(router)
	return router
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logging.Info("Starting HTTP gateway on %s", s.bindAddr)

	listener, err := net.Listen("tcp", s.bindAddr)
	if err != nil {
		if netutil.IsAddressInUseError(err) {
			logging.Error("Address %s is already in use, is another crptd running?", s.bindAddr)
		}
		return fmt.Errorf("failed to bind to %s: %w", s.bindAddr, err)
	}
	s.listener = listener

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.limiter.startJanitor(ctx, 2*time.Minute)

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Requests wait for their registry outcome
		WriteTimeout: s.resultTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("HTTP gateway listening on %s", listener.Addr())
	return nil
}

// Addr returns the bound listener address, useful with port 0
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logging.Info("Shutting down HTTP gateway...")

	if s.cancel != nil {
		s.cancel()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
