package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"

	"github.com/expenseflow/expenseflow/internal"
	"github.com/expenseflow/expenseflow/internal/analytics"
	"github.com/expenseflow/expenseflow/internal/approval"
	"github.com/expenseflow/expenseflow/internal/auth"
	"github.com/expenseflow/expenseflow/internal/company"
	"github.com/expenseflow/expenseflow/internal/core/events"
	"github.com/expenseflow/expenseflow/internal/currency"
	"github.com/expenseflow/expenseflow/internal/expense"
	"github.com/expenseflow/expenseflow/internal/ocr"
	"github.com/expenseflow/expenseflow/internal/recordstore"
	"github.com/expenseflow/expenseflow/internal/seed"
	"github.com/expenseflow/expenseflow/internal/transport"
	"github.com/expenseflow/expenseflow/internal/transport/rest"
	"github.com/expenseflow/expenseflow/internal/user"
	"github.com/expenseflow/expenseflow/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	Store  recordstore.Store
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.Store.Close(); err != nil {
			deps.Logger.Error("record store close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Env, cfg.Logging.Level)
	lg := logger.LoggerWrapper()

	store, err := recordstore.NewFromConfig(cfg.Store, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	bus := events.NewEventBus(lg)
	events.NewLogNotifier(lg).Register(bus)

	companyRepo := company.NewRepository(store)
	userRepo := user.NewRepository(store)
	expenseRepo := expense.NewRepository(store)
	approvalRepo := approval.NewRepository(store)

	companyService := company.NewService(companyRepo, lg)
	userService := user.NewService(userRepo, cfg.Security.BCryptCost, lg)
	expenseService := expense.NewService(expenseRepo, userService, companyService, bus, lg)
	approvalService := approval.NewService(approvalRepo, bus, lg)
	analyticsService := analytics.NewService(expenseService, approvalService, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
	)
	authService := auth.NewService(userService, companyService, tokenGen)

	scanner, err := ocr.NewFromConfig(cfg.OCR, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize receipt scanner: %w", err)
	}

	base := transport.NewBaseHandler(lg)
	handlers := rest.Handlers{
		Auth:      auth.NewHandler(base, authService),
		AuthMW:    auth.NewMiddleware(base, authService, lg),
		User:      user.NewHandler(base, userService),
		Company:   company.NewHandler(base, companyService),
		Expense:   expense.NewHandler(base, expenseService),
		Approval:  approval.NewHandler(base, approvalService),
		Currency:  currency.NewHandler(base),
		OCR:       ocr.NewHandler(base, scanner),
		Analytics: analytics.NewHandler(base, analyticsService),
		Seed:      seed.NewHandler(base, seed.NewSeeder(store, lg)),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, store, handlers, cfg.Server.AllowedOrigins, lg)

	return &Dependencies{
		Config: cfg,
		Store:  store,
		Router: router,
		Logger: lg,
	}, nil
}
