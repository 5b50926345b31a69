package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bazi-engine/internal/config"
	apihttp "bazi-engine/internal/http"
	"bazi-engine/internal/observability"
	"bazi-engine/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var quota service.ChartQuota
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, chart quota disabled", zap.Error(err))
		} else {
			quota = service.NewRedisChartQuota(redisClient, cfg.QuotaWindow(), cfg.QuotaMaxCharts)
		}
		cancel()
	}

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL(), cfg.JWTIssuer)
	if !tokens.Enabled() {
		logger.Warn("jwt secret not configured, api is open")
	}

	metrics := observability.NewCollector(cfg.MetricsNamespace)
	chartSvc := service.NewChartService(logger, metrics)
	chartHandler := apihttp.NewChartHandler(logger, chartSvc, quota, cfg.BatchParallel)
	router := apihttp.NewRouter(logger, chartHandler, tokens, metrics)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}
