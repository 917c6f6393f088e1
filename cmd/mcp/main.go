package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"coinpulse/internal/app"
	"coinpulse/internal/config"
	"coinpulse/internal/logger"
	"coinpulse/internal/mcpserver"
	"coinpulse/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "coinpulse-mcp"

var (
	loadEnvFunc       = godotenv.Load
	loadConfigFunc    = config.Load
	initTracerFunc    = tracing.InitTracer
	buildServicesFunc = app.Build
	setupSignalNotify = signal.NotifyContext
	runStdioFunc      = func(ctx context.Context, server *mcp.Server) error {
		return server.Run(ctx, &mcp.StdioTransport{})
	}
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	exitFunc               = os.Exit
)

func main() {
	_ = loadEnvFunc()

	log := logger.New(serviceName)
	slog.SetDefault(log)
	cfg := loadConfigFunc()

	ctx, stop := setupSignalNotify(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("mcp server failed", "error", err)
		exitFunc(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	tp, tracer, err := initTracerFunc(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("error shutting down tracer provider", "error", err)
		}
	}()

	svcs := buildServicesFunc(cfg, tracer, log)
	server := mcpserver.New(svcs.News, svcs.Market, log, mcpserver.Config{
		RequestTimeout: cfg.MCPRequestTimeout(),
	})

	if cfg.MCPTransport != "http" {
		log.Info("serving MCP over stdio")
		return runStdioFunc(ctx, server)
	}

	addr := net.JoinHostPort(cfg.MCPHTTPBind, strconv.Itoa(cfg.MCPHTTPPort))
	srv := &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(mcpserver.HTTPHandler(server, cfg.MCPAuthToken), serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if cfg.MCPAuthToken == "" {
		log.Warn("MCP_AUTH_TOKEN not set, MCP HTTP endpoint is unauthenticated", "addr", addr)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()
	log.Info("serving MCP over streamable HTTP", "addr", addr)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return shutdownHTTPServerFunc(srv, shutdownCtx)
}
