package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spendwise/expense-api/internal/api/handler"
	"github.com/spendwise/expense-api/internal/api/middleware"
	"github.com/spendwise/expense-api/internal/core/ports"
	"github.com/spendwise/expense-api/internal/core/service"
	"github.com/spendwise/expense-api/internal/infrastructure/config"
	mongodb "github.com/spendwise/expense-api/internal/infrastructure/db/mongo"
	redisdb "github.com/spendwise/expense-api/internal/infrastructure/db/redis"
	"github.com/spendwise/expense-api/internal/infrastructure/remote"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	feedbackQueue service.FeedbackEnqueuer,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("spendwise"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	legacyRepo := mongodb.NewLegacyProfileRepository(db)
	budgetRepo := mongodb.NewBudgetRepository(db)
	expenseRepo := mongodb.NewExpenseRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)
	prefStore := redisdb.NewPreferenceStore(rdb)

	var directory *remote.DirectoryClient
	if cfg.Remote.DirectoryURL != "" {
		directory = remote.NewDirectoryClient(cfg.Remote.DirectoryURL, log)
	}

	accountService := service.NewAccountService(
		accountRepo, legacyRepo, sessionStore, directoryOrNil(directory),
		cfg.JWTSecret, cfg.TokenTTL, log,
	)
	ledgerService := service.NewLedgerService(budgetRepo, expenseRepo, log)
	insightsService := service.NewInsightsService(budgetRepo, expenseRepo, log)
	feedbackService := service.NewFeedbackService(feedbackQueue, log)

	authHandler := handler.NewAuthHandler(accountService)
	budgetHandler := handler.NewBudgetHandler(ledgerService)
	expenseHandler := handler.NewExpenseHandler(ledgerService)
	insightsHandler := handler.NewInsightsHandler(insightsService)
	prefsHandler := handler.NewPreferencesHandler(prefStore)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	authMiddleware := middleware.Auth(cfg.JWTSecret, sessionStore)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Ledger routes (session required) ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/budget", budgetHandler.Get)
	v1.PUT("/budget", budgetHandler.Set)
	v1.GET("/expenses", expenseHandler.List)
	v1.POST("/expenses", expenseHandler.Create)
	v1.PATCH("/expenses/:id", expenseHandler.Update)
	v1.DELETE("/expenses/:id", expenseHandler.Delete)
	v1.GET("/insights", insightsHandler.Summary)
	v1.GET("/preferences", prefsHandler.Get)
	v1.PUT("/preferences", prefsHandler.Set)

	// Feedback is open to anonymous visitors, as on the contact page.
	e.POST("/v1/feedback", feedbackHandler.Submit)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// directoryOrNil keeps the AccountService dependency a true nil interface
// when no directory endpoint is configured.
func directoryOrNil(c *remote.DirectoryClient) ports.DirectoryClient {
	if c == nil {
		return nil
	}
	return c
}
