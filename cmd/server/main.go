package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appaccounting "github.com/kopkar/backend/internal/application/accounting"
	appfinance "github.com/kopkar/backend/internal/application/finance"
	apploan "github.com/kopkar/backend/internal/application/loan"
	appmember "github.com/kopkar/backend/internal/application/member"
	apppos "github.com/kopkar/backend/internal/application/pos"
	appsavings "github.com/kopkar/backend/internal/application/savings"
	appstock "github.com/kopkar/backend/internal/application/stock"
	"github.com/kopkar/backend/internal/infrastructure/cache"
	"github.com/kopkar/backend/internal/infrastructure/config"
	"github.com/kopkar/backend/internal/infrastructure/logger"
	"github.com/kopkar/backend/internal/infrastructure/persistence"
	"github.com/kopkar/backend/internal/interfaces/http/handler"
	"github.com/kopkar/backend/internal/interfaces/http/middleware"
	"github.com/kopkar/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Kopkar Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := persistence.AutoMigrate(db.DB); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	entryRepo := persistence.NewGormJournalEntryRepository(db.DB)
	ledgerQueryRepo := persistence.NewGormLedgerQueryRepository(db.DB)
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	savingsAccountRepo := persistence.NewGormSavingsAccountRepository(db.DB)
	loanRepo := persistence.NewGormLoanRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	warehouseStockRepo := persistence.NewGormWarehouseStockRepository(db.DB)
	sessionRepo := persistence.NewGormPosSessionRepository(db.DB)
	transactionRepo := persistence.NewGormPosTransactionRepository(db.DB)
	receivableRepo := persistence.NewGormMemberReceivableRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	expenseCategoryRepo := persistence.NewGormExpenseCategoryRepository(db.DB)

	// Seed the chart of accounts and warm the account resolver. The
	// resolver caches account IDs for the journal generators; it refuses to
	// start if a mapped account is missing.
	ctx := context.Background()
	if err := appaccounting.SeedChartOfAccounts(ctx, accountRepo); err != nil {
		log.Fatal("Failed to seed chart of accounts", zap.Error(err))
	}
	resolver, err := appaccounting.NewAccountResolver(ctx, accountRepo)
	if err != nil {
		log.Fatal("Failed to initialize account resolver", zap.Error(err))
	}

	auditSink := persistence.NewGormAuditSink(db.DB, log)

	// Accounting core
	ledgerService := appaccounting.NewLedgerService(persistence.NewGormAccountingScope(db.DB), entryRepo, auditSink, log)
	reportService := appaccounting.NewReportService(ledgerQueryRepo, accountRepo)
	generator := appaccounting.NewJournalGenerator(ledgerService, resolver)

	// Application services
	stockService := appstock.NewStockLedgerService(persistence.NewGormStockScope(db.DB), movementRepo, warehouseStockRepo, log)
	savingsService := appsavings.NewSavingsService(persistence.NewGormSavingsScope(db.DB), savingsAccountRepo, generator, log)
	loanService := apploan.NewLoanService(loanRepo, generator, log)
	memberService := appmember.NewMemberService(memberRepo, savingsAccountRepo, log)
	expenseService := appfinance.NewExpenseService(expenseRepo, expenseCategoryRepo, generator, log)
	sessionService := apppos.NewSessionService(sessionRepo, log)

	// Checkout idempotency store: Redis when configured, an in-process map
	// otherwise (single-instance deployments only)
	var idempotencyStore apppos.IdempotencyStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		idempotencyStore = redisStore
		log.Info("Redis idempotency store connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
		log.Info("Using in-memory idempotency store")
	}

	checkoutService := apppos.NewCheckoutService(
		persistence.NewGormCheckoutScope(db.DB),
		memberRepo,
		sessionRepo,
		transactionRepo,
		receivableRepo,
		savingsAccountRepo,
		warehouseStockRepo,
		generator,
		idempotencyStore,
		log,
	)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewJournalHandler(ledgerService)).
		Register(handler.NewReportHandler(reportService)).
		Register(handler.NewStockHandler(stockService)).
		Register(handler.NewPosHandler(checkoutService, sessionService)).
		Register(handler.NewLoanHandler(loanService)).
		Register(handler.NewSavingsHandler(savingsService)).
		Register(handler.NewMemberHandler(memberService)).
		Register(handler.NewExpenseHandler(expenseService))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			reqLog := logger.GetGinLogger(c)
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
