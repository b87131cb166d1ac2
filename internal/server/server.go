package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/server/middleware"
	"github.com/jonathan/ats-scorer/internal/server/ratelimit"
	"github.com/jonathan/ats-scorer/internal/skills"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 4 << 20

// Config holds server configuration
type Config struct {
	Port            int
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
	// Parallelism bounds concurrent scoring in batch requests.
	Parallelism int
	// JWT is nil when authentication is disabled.
	JWT       *JWTService
	RateLimit ratelimit.Config
	// Store backs the history, taxonomy and knowledge endpoints. They answer 503 when nil.
	Store Store
	// Taxonomy receives entries added through POST /taxonomy. It should be the taxonomy the
	// tenant engines were built with.
	Taxonomy *skills.Taxonomy
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	tenants         *Tenants
	jwt             *JWTService
	limiter         *ratelimit.Limiter
	store           Store
	taxonomy        *skills.Taxonomy
	logger          *zap.Logger
	parallelism     int
	shutdownTimeout time.Duration
}

// New creates a new server instance
func New(cfg Config, tenants *Tenants, log *zap.Logger) (*Server, error) {
	if tenants == nil {
		return nil, errors.New("failed to create server: tenants are required")
	}
	if _, ok := tenants.Lookup(""); !ok {
		return nil, errors.New("failed to create server: default tenant is required")
	}

	s := &Server{
		tenants:         tenants,
		jwt:             cfg.JWT,
		limiter:         ratelimit.NewLimiter(cfg.RateLimit, nil),
		store:           cfg.Store,
		taxonomy:        cfg.Taxonomy,
		logger:          logger.OrNop(log),
		parallelism:     max(cfg.Parallelism, 1),
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 10 * time.Second
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /score", s.handleScore)
	api.HandleFunc("POST /score/batch", s.handleScoreBatch)
	api.HandleFunc("POST /recommendations", s.handleRecommendations)
	api.HandleFunc("POST /skill-gaps", s.handleSkillGaps)
	api.HandleFunc("POST /industry-analysis", s.handleIndustryAnalysis)
	api.HandleFunc("GET /benchmarks", s.handleBenchmarks)
	api.HandleFunc("GET /stats", s.handleStats)
	api.HandleFunc("GET /history/{fingerprint}", s.handleHistory)
	api.HandleFunc("GET /history/{fingerprint}/latest", s.handleLatestScore)
	api.HandleFunc("POST /taxonomy", s.handleAddTaxonomy)
	api.HandleFunc("POST /knowledge", s.handleAddKnowledge)
	api.HandleFunc("GET /knowledge", s.handleSearchKnowledge)

	var protected http.Handler = s.withRateLimit(api)
	if s.jwt != nil {
		protected = middleware.AuthMiddleware(s.jwt.AsTokenValidator())(protected)
	}

	root := http.NewServeMux()
	root.HandleFunc("GET /health", s.handleHealth)
	root.Handle("/", protected)
	return s.withLogging(root)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()),
			zap.Bool("auth", s.jwt != nil), zap.Strings("tenants", s.tenants.Names()))
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withRateLimit throttles by tenant when authenticated, otherwise by client IP.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		info := s.limiter.Allow(key)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !info.Allowed {
			retry := int(info.RetryAfter.Seconds() + 0.999)
			w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller for rate limiting.
func clientKey(r *http.Request) string {
	if tenant := tenantOf(r); tenant != "" {
		return "tenant:" + tenant
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, errorBody{Error: message})
}

// handleError maps err to a status code and writes it.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.jsonResponse(w, status, newErrorBody(err))
}
