package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/cmd"
	apihttp "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/postgres/categoryrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/productrepo"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	sigCtx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	configs, err := cmd.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	gormDB := mustGormOpen(configs.DSN())
	mustAutoMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := newWebServer(sigCtx, app, logger)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-sigCtx.Done()
	logger.Info("application is closing...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown http server gracefully", "error", err)
	}
}

func mustGormOpen(dsn string) *gorm.DB {
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("connection to postgres through gorm\n: %s", err)
	}
	return gormDB
}

func mustAutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&categoryrepo.CategoryDTO{},
		&productrepo.ProductDTO{},
		&productrepo.ReviewDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating schema: %v", err)
	}
}

func newWebServer(ctx context.Context, app cmd.CompositionRoot, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	apihttp.RegisterHandlersWithBaseURL(e, app.CreateHTTPServer(), "/api/v1")

	doc, err := apihttp.LoadOpenAPI(ctx)
	if err != nil {
		log.Fatalf("Error loading openapi document: %v", err)
	}
	if err := apihttp.RegisterDocs(e, doc); err != nil {
		log.Fatalf("Error registering api docs: %v", err)
	}

	return e
}
