package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mohamedbel-ymam/school-vfr-sub000/config"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/alias"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/api/handler"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/api/router"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/repository"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/service"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/database"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/jwt"
	applogger "github.com/mohamedbel-ymam/school-vfr-sub000/pkg/logger"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/redis"
)

func main() {
	// 1. load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("plan_sequence_enabled", cfg.Feature.PlanSequenceEnabled),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("connecting to database failed", zap.Error(err))
	}

	// 3.1 migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("getting underlying sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("running migrations failed", zap.Error(err))
	}

	// 4. Redis (optional: run degraded without blacklist and rate limiting)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token blacklist and rate limiting disabled", zap.Error(err))
		rdb = nil
	}

	// 5. JWT manager
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. dependency wiring: Repository → Resolver → Service → Handler
	repo := repository.NewRepository(db)

	// the alias resolver is immutable; it is built once from the degree
	// catalog at startup
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	degrees, err := repo.Degree.List(loadCtx)
	cancelLoad()
	if err != nil {
		logger.Fatal("loading degree catalog failed", zap.Error(err))
	}
	resolver := alias.NewResolver(degrees)
	logger.Info("alias resolver built", zap.Int("degrees", len(degrees)))

	svc := service.NewService(cfg, repo, resolver, logger)
	h := handler.NewHandler(svc)

	// 7. router
	engine := router.Setup(cfg, h, jwtMgr, rdb, resolver, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 9. wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
