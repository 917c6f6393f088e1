package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coinpulse/internal/app"
	"coinpulse/internal/bot"
	"coinpulse/internal/cache"
	"coinpulse/internal/config"
	"coinpulse/internal/handler"
	"coinpulse/internal/logger"
	"coinpulse/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "coinpulse/docs"
)

const serviceName = "coinpulse"

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	buildServicesFunc      = app.Build
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.New
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	exitFunc               = os.Exit
)

// @title           CoinPulse API
// @version         1.0
// @description     Crypto market signals and news sentiment analysis.

// @host      localhost:8080
// @BasePath  /
func main() {
	_ = loadEnvFunc()

	log := logger.New(serviceName)
	slog.SetDefault(log)
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, serviceName)
	if err != nil {
		log.Error("failed to initialize tracer", "error", err)
		exitFunc(1)
		return
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("error shutting down tracer provider", "error", err)
		}
	}()

	var limiter handler.RequestLimiter
	redisClient, err := initRedisFunc(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn("redis unavailable, analyze rate limiting disabled", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		limiter = cache.NewRateLimiter(redisClient, cfg.AnalyzeRateLimitPerMin, time.Minute, serviceName)
	}

	svcs := buildServicesFunc(cfg, tracer, log)

	if err := startTelegramBotFunc(ctx, cfg.TelegramBotToken, svcs.News, svcs.Market); err != nil {
		log.Warn("telegram bot not started", "error", err)
	}

	h := newHandlerFunc(tracer, svcs.News, svcs.Market, limiter)

	r := newRouterFunc()
	r.Use(handler.Recovery(), handler.CORS(), otelgin.Middleware(serviceName))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Error("listen failed", "error", err)
			exitFunc(1)
		}
	}()
	log.Info("server started", "addr", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info("shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exiting")
}
