package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/clearlane/freight-console/internal/app"
	"github.com/clearlane/freight-console/internal/approval"
	"github.com/clearlane/freight-console/internal/cache"
	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/config"
	"github.com/clearlane/freight-console/internal/contract"
	"github.com/clearlane/freight-console/internal/customer"
	"github.com/clearlane/freight-console/internal/health"
	"github.com/clearlane/freight-console/internal/invoice"
	"github.com/clearlane/freight-console/internal/obs"
	"github.com/clearlane/freight-console/internal/payment"
	"github.com/clearlane/freight-console/internal/penalty"
	"github.com/clearlane/freight-console/internal/ratelimit"
	"github.com/clearlane/freight-console/internal/report"
	"github.com/clearlane/freight-console/internal/security"
	"github.com/clearlane/freight-console/internal/supplier"
	"github.com/clearlane/freight-console/internal/taxnumber"
	"github.com/clearlane/freight-console/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "freight_console")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		sampling := envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0)
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "freight-console",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			SamplingRatio: sampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				ctx := context.Background()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Redis is optional: without it caching, idempotency, and the limiter
	// degrade to local or no-op behaviour instead of failing startup.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		redisClient = redis.NewClient(redisOpts)
		if err := redisotel.InstrumentTracing(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis tracing")
		}
		if metricsEnabled {
			if err := redisotel.InstrumentMetrics(redisClient); err != nil {
				logger.Error().Err(err).Msg("instrument redis metrics")
			}
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("ping redis")
		}
	}

	erp, err := upstream.New(upstream.Config{
		BaseURL: cfg.UpstreamBaseURL,
		Timeout: cfg.UpstreamTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise upstream client")
	}

	validate := app.NewValidator()

	limiterStore, err := app.NewLimiterStore(redisClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise limiter store")
	}
	writeLimit, err := ratelimit.New(limiterStore, cfg.WriteRateLimit)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse write rate limit")
	}
	writeLimit.OnError = func(err error) {
		logger.Warn().Err(err).Msg("rate limit store failed")
	}

	invoiceSvc := invoice.NewService(invoice.ServiceConfig{
		Upstream: erp,
		Redis:    cache.New(redisClient, cfg.InvoiceViewTTL),
		Keywords: cfg.DiscountKeywords,
		Logger:   logger,
	})
	invoiceHandler := invoice.NewHandler(invoice.HandlerConfig{Service: invoiceSvc})

	paymentSvc := payment.NewService(payment.ServiceConfig{Upstream: erp, Validate: validate})
	paymentHandler := payment.NewHandler(payment.HandlerConfig{Service: paymentSvc})

	customerSvc := customer.NewService(customer.ServiceConfig{Upstream: erp, Validate: validate})
	customerHandler := customer.NewHandler(customer.HandlerConfig{Service: customerSvc})

	approvalHandler := approval.NewHandler(approval.HandlerConfig{Upstream: erp})
	penaltyHandler := penalty.NewHandler(penalty.HandlerConfig{Upstream: erp, Validate: validate})
	contractHandler := contract.NewHandler(contract.HandlerConfig{Upstream: erp, Validate: validate})
	taxNumberHandler := taxnumber.NewHandler(taxnumber.HandlerConfig{Upstream: erp, Validate: validate})
	supplierHandler := supplier.NewHandler(supplier.HandlerConfig{Upstream: erp, Validate: validate})

	reportSvc := report.NewService(report.ServiceConfig{
		Upstream: erp,
		Redis:    cache.New(redisClient, cfg.ReportCacheTTL),
		Logger:   logger,
	})
	reportHandler := report.NewHandler(report.HandlerConfig{Service: reportSvc})

	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{Enable: envBool("SECURE_HEADERS", true)}.Middleware)
	r.Use(security.BodyLimit{Max: cfg.MaxBodyBytes}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Idempotency-Key"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	pprofEnabled := envBool("OBS_ENABLE_PPROF", true)
	if pprofEnabled {
		user := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), user, pass))
	}

	healthHandler := health.Handler{
		Checker:         readinessChecker{erp: erp, redis: redisClient},
		UpstreamTimeout: envDurationMillis("HEALTH_READY_UPSTREAM_TIMEOUT_MS", 500),
		RedisTimeout:    envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/invoices", invoiceHandler.List)
		v.Get("/invoices/{id}/view", invoiceHandler.View)

		v.Get("/payments", paymentHandler.List)
		v.Get("/customers", customerHandler.List)
		v.Get("/customers/{id}", customerHandler.Get)
		v.Get("/customers/{id}/follow-ups", customerHandler.FollowUps)
		v.Get("/approvals", approvalHandler.List)
		v.Get("/penalties", penaltyHandler.List)
		v.Get("/contract-templates", contractHandler.List)
		v.Get("/shared-tax-numbers", taxNumberHandler.List)
		v.Get("/suppliers/{id}/prices", supplierHandler.Prices)
		v.Get("/reports/finance", reportHandler.Finance)
		v.Get("/reports/commission", reportHandler.Commission)

		v.Group(func(writes chi.Router) {
			writes.Use(writeLimit.Handler)
			writes.Use(idem.Middleware)
			writes.Post("/invoices/{id}/regenerate", invoiceHandler.Regenerate)
			writes.Post("/payments", paymentHandler.Record)
			writes.Post("/customers", customerHandler.Create)
			writes.Put("/customers/{id}", customerHandler.Update)
			writes.Post("/customers/{id}/follow-ups", customerHandler.AddFollowUp)
			writes.Post("/approvals/{id}/decision", approvalHandler.Decide)
			writes.Post("/penalties", penaltyHandler.Create)
			writes.Post("/contract-templates", contractHandler.Create)
			writes.Delete("/contract-templates/{id}", contractHandler.Delete)
			writes.Post("/shared-tax-numbers", taxNumberHandler.Create)
			writes.Delete("/shared-tax-numbers/{id}", taxNumberHandler.Delete)
			writes.Put("/suppliers/{id}/prices", supplierHandler.UpdatePrices)
		})
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	logger.Info().Str("addr", srv.Addr).Str("upstream", cfg.UpstreamBaseURL).Msg("gateway starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

type readinessChecker struct {
	erp   *upstream.Client
	redis *redis.Client
}

func (c readinessChecker) PingUpstream(ctx context.Context, timeout time.Duration) error {
	if c.erp == nil {
		return errors.New("upstream not configured")
	}
	return c.erp.Ping(ctx, timeout)
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	mux.Handle("/allocs", pprof.Handler("allocs"))
	mux.Handle("/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/heap", pprof.Handler("heap"))
	mux.Handle("/mutex", pprof.Handler("mutex"))
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
