package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ban/healthsense/internal/alertworker"
	"ban/healthsense/pkg/config"
	redisinfra "ban/healthsense/pkg/infra/redis"
	"ban/healthsense/pkg/lmstfy"
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
	if err := cfg.ValidateWorker(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化 Logger
	zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()
	zapLogger.Infof(ctx, "Config loaded: %s, env: %s, log_level: %s", cfg.App.Name, cfg.App.Env, cfg.App.LogLevel)

	// 3. 基础设施
	lmstfyClient, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		log.Fatalf("Failed to create lmstfy client: %v", err)
	}

	pubsub, err := redisinfra.NewPubSub(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	defer pubsub.Close()

	// 4. 创建 Manager
	mgr, err := alertworker.NewManagerInstance(cfg, lmstfyClient, pubsub, zapLogger)
	if err != nil {
		log.Fatalf("Failed to create manager: %v", err)
	}

	// 5. 启动 Manager（goroutine）
	go func() {
		if err := mgr.Start(); err != nil {
			zapLogger.Errorf(ctx, "Manager start failed: %v", err)
			os.Exit(1)
		}
	}()

	zapLogger.Infof(ctx, "Worker started. Press Ctrl+C to shutdown.")

	// 6. 等待退出信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	zapLogger.Infof(ctx, "Received signal: %v, shutting down worker...", sig)

	// 7. 优雅关闭 Manager
	mgr.Shutdown()

	zapLogger.Infof(ctx, "Worker exited gracefully")
}
