package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"ban/healthsense/pkg/config"
	"ban/healthsense/pkg/logger"
)

var configPath = flag.String("config", "config/config.yaml", "配置文件路径")

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化 Logger
	zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 3. 初始化应用
	app, cleanup, err := InitializeApp(ctx, cfg, zapLogger)
	if err != nil {
		cleanup()
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer cleanup()

	// 4. 启动 HTTP Server（后台 goroutine）
	addr := fmt.Sprintf(":%s", cfg.GetServerPort())
	server := &http.Server{
		Addr:    addr,
		Handler: app.Engine,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		zapLogger.Infof(ctx, "Starting HTTP server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// 5. 优雅停机处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		zapLogger.Infof(ctx, "Received signal %v, gracefully shutting down...", sig)
		gracefulShutdown(ctx, server, cfg, zapLogger)
	case err := <-serverErrChan:
		zapLogger.Errorf(ctx, "HTTP server error: %v", err)
		cleanup()
		_ = zapLogger.Sync()
		os.Exit(1)
	}

	zapLogger.Infof(ctx, "Application stopped")
}

// gracefulShutdown 优雅停机
func gracefulShutdown(ctx context.Context, server *http.Server, cfg *config.Config, log logger.Logger) {
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf(ctx, "HTTP server shutdown error: %v", err)
		return
	}
	log.Infof(ctx, "HTTP server stopped gracefully")
}
