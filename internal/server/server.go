package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/QuestForge_Go/internal/content"
	_ "github.com/osse101/QuestForge_Go/internal/docs"
	"github.com/osse101/QuestForge_Go/internal/eventlog"
	"github.com/osse101/QuestForge_Go/internal/game"
	"github.com/osse101/QuestForge_Go/internal/handler"
	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/metrics"
	"github.com/osse101/QuestForge_Go/internal/sse"
)

// Options carries the collaborators the router needs beyond the game service.
// Nil fields disable the routes that depend on them.
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	DB             handler.Pinger
	Drainer        handler.OutboxDrainer
	Invalidator    handler.ContentInvalidator
	Journal        eventlog.Service
	Stream         *sse.Hub
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc game.Service, provider content.Provider) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	checks := []handler.ReadinessCheck{handler.ContentCheck(provider)}
	if opts.DB != nil {
		checks = append(checks, handler.PingCheck("database", opts.DB))
	}
	r.Get("/readyz", handler.HandleReadyz(checks...))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion(provider))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	gh := handler.NewGameHandlers(svc, provider)
	ah := handler.NewAdminHandlers(svc, opts.Drainer, opts.Invalidator)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Route("/characters", func(r chi.Router) {
			r.Post("/", gh.HandleCreateCharacter())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", gh.HandleGetCharacter())
				r.Post("/stats", gh.HandleSpendStatPoint())
				r.Post("/buffs", gh.HandleActivateBuff())
				r.Post("/research", gh.HandlePurchaseResearch())
				r.Get("/tasks", gh.HandleListTasks())
				r.Post("/missions", gh.HandleStartMission())
				r.Get("/mission", gh.HandleCheckMission())
				if opts.Journal != nil {
					r.Get("/events", handler.NewJournalHandlers(opts.Journal).HandleHistory())
				}

				r.Route("/equipment/{itemID}", func(r chi.Router) {
					r.Post("/enhance", gh.HandleEnhanceEquipment())
					r.Post("/salvage", gh.HandleSalvageEquipment())
					r.Post("/equip", gh.HandleEquipItem())
				})
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", gh.HandleCreateTask())
			r.Post("/{id}/complete", gh.HandleCompleteTask())
			r.Post("/{id}/confirm", gh.HandleConfirmTask())
			r.Post("/{id}/dispute", gh.HandleDisputeTask())
		})

		r.Post("/bundles", gh.HandleCreateBundle())
		r.Post("/bonds", gh.HandleCreateBond())
		r.Get("/missions/active", gh.HandleActiveMissions())

		r.Route("/dungeons/runs", func(r chi.Router) {
			r.Post("/", gh.HandleStartDungeon())
			r.Get("/{id}", gh.HandleGetRun())
			r.Post("/{id}/resolve", gh.HandleResolveRun())
		})

		if opts.Stream != nil {
			r.Get("/stream", sse.Handler(opts.Stream))
		}

		r.Route("/content", func(r chi.Router) {
			r.Get("/missions", gh.HandleListMissions())
			r.Get("/dungeons", gh.HandleListDungeons())
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/escrow/sweep", ah.HandleSweepEscrow())
			r.Post("/recurring/reset", ah.HandleResetRecurring())
			r.Post("/streaks/check", ah.HandleCheckStreaks())
			r.Post("/outbox/drain", ah.HandleDrainOutbox())
			r.Post("/content/reload", ah.HandleReloadContent())
		})
	})

	// Swagger documentation
	r.Get(SwaggerPrefix+"*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router: r,
	}
}

// Handler exposes the routed handler for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
