package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"birthdayFundAPI/clients"
	"birthdayFundAPI/config"
	"birthdayFundAPI/handlers"
	"birthdayFundAPI/middleware"
	"birthdayFundAPI/services"
)

var (
	cfg                 *config.Config
	log                 *logrus.Logger
	dbPool              *pgxpool.Pool
	sessionStore        sessions.Store
	contributionService *services.ContributionService
	paymentService      *services.PaymentService
	giftService         *services.GiftService
)

func init() {
	log = logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	cfg = config.LoadConfig()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	store := newContributionStore()
	contributionService = services.NewContributionService(store, log)
	paymentService = services.NewPaymentService(cfg.StripeSecretKey, cfg.Currency, log)
	giftService = services.NewGiftService(newTextGenerator(), clients.NewUnsplashClient(cfg.UnsplashAccessKey, cfg.UnsplashBaseURL, log), log)
	sessionStore = middleware.NewSessionStore(cfg.SecretKey, os.Getenv("SESSION_SECURE") == "true")

	if cfg.SecretKey == "dev-secret-key" {
		log.Warn("SECRET_KEY not set, using the development session key")
	}
	if paymentService.StripeEnabled() {
		log.Info("Stripe payment intents enabled")
	}

	middleware.InitPrometheus()
}

// newContributionStore uses PostgreSQL when DATABASE_URL is set and the in-memory store
// otherwise. The in-memory store only suits a single instance.
func newContributionStore() services.ContributionStore {
	if cfg.DatabaseURL == "" {
		log.Info("DATABASE_URL not set, keeping contributions in memory")
		return services.NewMemoryStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to parse database URL: ", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool: ", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database: ", err)
	}

	store := services.NewPostgresStore(dbPool)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal(err)
	}

	log.Info("Successfully connected to PostgreSQL")
	return store
}

// newTextGenerator returns nil when the selected provider has no key; the gift service then
// always serves fallback suggestions.
func newTextGenerator() services.TextGenerator {
	switch cfg.GiftProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Warn("OPENAI_API_KEY not set, gift suggestions will use fallback data")
			return nil
		}
		gen := clients.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		log.WithField("provider", gen.Name()).Info("Gift suggestions enabled")
		return gen
	default:
		if cfg.GeminiAPIKey == "" {
			log.Warn("GEMINI_API_KEY not set, gift suggestions will use fallback data")
			return nil
		}
		gen, err := clients.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
		if err != nil {
			log.WithError(err).Warn("Could not initialize Gemini, gift suggestions will use fallback data")
			return nil
		}
		log.WithField("provider", gen.Name()).Info("Gift suggestions enabled")
		return gen
	}
}

func main() {
	defer func() {
		if dbPool != nil {
			log.Info("Closing database connection pool...")
			dbPool.Close()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	contributionHandler := handlers.NewContributionHandler(contributionService, paymentService, sessionStore, cfg.Currency)
	giftHandler := handlers.NewGiftHandler(giftService, contributionService, cfg.Currency)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rateLimiter.CleanupVisitors(ctx)

	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.MonitorMiddleware)
	r.Use(rateLimiter.Middleware)
	r.Use(middleware.SessionMiddleware(sessionStore))

	r.Handle("/metrics", middleware.BasicAuthMiddleware(cfg.MetricsUser, cfg.MetricsPass)(promhttp.Handler())).Methods("GET")
	handlers.RegisterRoutes(r, contributionHandler, giftHandler)

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
	)
	var root http.Handler = corsHandler(r)
	if cfg.TrustProxy {
		root = gorilllaHandlers.ProxyHeaders(root)
	}
	recovery := gorilllaHandlers.RecoveryHandler(gorilllaHandlers.RecoveryLogger(log), gorilllaHandlers.PrintRecoveryStack(true))

	port := ":" + cfg.Port

	server := http.Server{
		Addr:         port,
		Handler:      recovery(root),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server: ", err)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	log.Info("Got shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown error: %v", err)
	}

	log.Info("Server shutdown complete")
}
