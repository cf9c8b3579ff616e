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

	"storefront-api/internal/auth"
	"storefront-api/internal/config"
	controller "storefront-api/internal/controllers/http"
	"storefront-api/internal/logger"
	"storefront-api/internal/metrics"
	"storefront-api/internal/repository/mysql"
	"storefront-api/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Service: "storefront-api",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
	})

	db, err := mysql.Open(cfg.MySQLUser, cfg.MySQLPassword, cfg.MySQLHost, cfg.MySQLPort, cfg.MySQLDatabase)
	if err != nil {
		return fmt.Errorf("db: connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	key, err := auth.ParsePublicKey(cfg.AuthPublicKey)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	verifier := auth.NewJWTVerifier(auth.Config{
		Issuer:   cfg.AuthIssuer,
		Audience: cfg.AuthAudience,
		Key:      key,
	})

	store := mysql.NewStore(db)
	orders := services.NewOrderService(store)
	products := services.NewProductService(store)

	m := metrics.NewServerMetrics("api")

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), m.Middleware())
	r.GET("/metrics", gin.WrapH(m.Handler()))

	handler := controller.NewHandler(orders, products, verifier, log)
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
