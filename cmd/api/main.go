package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	pgRepo "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/infra/mailer"
	"newsdesk/internal/infra/share"
	"newsdesk/internal/observability/logging"
	"newsdesk/internal/observability/tracing"
	"newsdesk/pkg/config"

	accUC "newsdesk/internal/usecase/account"
	artUC "newsdesk/internal/usecase/article"
	catUC "newsdesk/internal/usecase/category"
	"newsdesk/internal/usecase/lifecycle"
	nlUC "newsdesk/internal/usecase/newsletter"
	"newsdesk/internal/usecase/notify"
	pubUC "newsdesk/internal/usecase/publisher"
	subUC "newsdesk/internal/usecase/subscription"

	hhttp "newsdesk/internal/handler/http"
	haccount "newsdesk/internal/handler/http/account"
	harticle "newsdesk/internal/handler/http/article"
	hauth "newsdesk/internal/handler/http/auth"
	hcategory "newsdesk/internal/handler/http/category"
	hnewsletter "newsdesk/internal/handler/http/newsletter"
	hpublisher "newsdesk/internal/handler/http/publisher"
	"newsdesk/internal/handler/http/requestid"
	hsubscription "newsdesk/internal/handler/http/subscription"
	authservice "newsdesk/internal/service/auth"
)

// @title           Newsdesk API
// @version         1.0
// @description     REST API for the newsdesk publishing backend: article
// @description     drafting, the editorial approval workflow, subscriptions
// @description     and newsletters.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT authentication. Provide the header as "Bearer {token}".

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := hauth.ValidateJWTSecret(); err != nil {
		logger.Error("JWT secret validation failed", slog.Any("error", err))
		os.Exit(1)
	}

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	components := setupServer(logger, database, version)

	runServer(logger, components, version)
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// serverComponents holds what runServer needs for operation and shutdown.
type serverComponents struct {
	Handler    http.Handler
	Dispatcher *notify.Service
}

// newMailer picks the mail transport. SMTP delivery is opt-in so that
// development environments without an SMTP relay log instead of failing.
func newMailer(logger *slog.Logger) mailer.Mailer {
	if config.GetEnvBool("SMTP_ENABLED", false) {
		cfg := mailer.SMTPConfigFromEnv()
		logger.Info("mail delivery: SMTP",
			slog.String("host", cfg.Host),
			slog.Int("port", cfg.Port))
		return mailer.NewSMTPMailer(cfg)
	}
	logger.Warn("mail delivery disabled, messages will only be logged")
	return mailer.NewNoOpMailer()
}

// newPoster picks the chat share transport for published articles.
func newPoster(logger *slog.Logger) share.Poster {
	cfg := share.WebhookConfigFromEnv()
	if cfg.Enabled && cfg.WebhookURL != "" {
		logger.Info("share webhook enabled")
		return share.NewWebhookPoster(cfg)
	}
	logger.Info("share webhook disabled")
	return share.NewNoOpPoster()
}

// loadTemplates loads mail templates from MAIL_TEMPLATES_PATH, falling back
// to the built-in defaults when the variable is unset.
func loadTemplates(logger *slog.Logger) mailer.Templates {
	path := os.Getenv("MAIL_TEMPLATES_PATH")
	if path == "" {
		return mailer.DefaultTemplates()
	}
	templates, err := mailer.LoadTemplates(path)
	if err != nil {
		logger.Error("failed to load mail templates",
			slog.String("path", path),
			slog.Any("error", err))
		os.Exit(1)
	}
	return templates
}

// setupServer wires repositories, services and routes into the HTTP handler.
func setupServer(logger *slog.Logger, database *sql.DB, version string) *serverComponents {
	users := pgRepo.NewUserRepo(database)
	articles := pgRepo.NewArticleRepo(database)
	publishers := pgRepo.NewPublisherRepo(database)
	categories := pgRepo.NewCategoryRepo(database)
	newsletters := pgRepo.NewNewsletterRepo(database)
	subscriptions := pgRepo.NewSubscriptionRepo(database)
	notifications := pgRepo.NewNotificationRepo(database)
	resetTokens := pgRepo.NewResetTokenRepo(database)

	mail := newMailer(logger)
	templates := loadTemplates(logger)
	poster := newPoster(logger)

	dispatcher := notify.NewService(
		subscriptions, notifications, users, publishers,
		mail, templates, poster,
		config.GetEnvInt("NOTIFY_MAX_CONCURRENT", 8),
	)

	articleSvc := artUC.NewService(articles)
	workflowSvc := lifecycle.NewService(articles, dispatcher)
	publisherSvc := pubUC.NewService(publishers)
	categorySvc := catUC.NewService(categories)
	newsletterSvc := nlUC.NewService(newsletters)
	subscriptionSvc := subUC.NewService(subscriptions, users, publishers)
	accountSvc := accUC.NewService(users, resetTokens, mail, templates)
	authSvc := authservice.NewService(users, hauth.PublicEndpoints)

	mux := http.NewServeMux()

	// Token issue is the only brute-forceable endpoint, keep it throttled.
	authLimiter := hhttp.NewRateLimiter(5, 1*time.Minute)
	mux.Handle("POST /auth/token", authLimiter.Limit(hauth.TokenHandler(authSvc)))
	haccount.Register(mux, accountSvc)

	harticle.Register(mux, articleSvc, workflowSvc)
	hpublisher.Register(mux, publisherSvc)
	hcategory.Register(mux, categorySvc)
	hnewsletter.Register(mux, newsletterSvc)
	hsubscription.Register(mux, subscriptionSvc)

	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	handler := applyMiddleware(logger, authSvc, mux)

	return &serverComponents{
		Handler:    handler,
		Dispatcher: dispatcher,
	}
}

// applyMiddleware wraps the mux with the middleware chain.
// Order: input validation → request ID → tracing → recovery → logging →
// body limit → metrics → timeout → authentication.
func applyMiddleware(logger *slog.Logger, authSvc *authservice.Service, mux *http.ServeMux) http.Handler {
	requestTimeout := config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)

	chain := http.Handler(mux)
	chain = hauth.Authz(authSvc)(chain)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = hhttp.InputValidation()(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *serverComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := config.GetEnvString("LISTEN_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	// Let in-flight notification fan-outs finish before exiting.
	if err := components.Dispatcher.Shutdown(shutdownCtx); err != nil {
		logger.Error("dispatcher shutdown failed", slog.Any("error", err))
	}

	cancel()
	logger.Info("server stopped")
}
