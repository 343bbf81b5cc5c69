package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	otelapi "go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"ReplyOK/config"
	"ReplyOK/internal/middleware"
	"ReplyOK/internal/router"
	"ReplyOK/internal/service"
	"ReplyOK/pkg/logger"
	"ReplyOK/pkg/otel"
	"ReplyOK/pkg/snowflake"
	"ReplyOK/storage"
	"ReplyOK/storage/mq"
)

func main() {
	// 日志部分
	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	// 初始化存储层，记得关闭外部连接
	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	// 先声明队列，保证第一条日志消息发布前队列已存在
	if err := mq.DeclareQueue(config.Cfg.ReplyLogQueue); err != nil {
		logger.Logger.Fatal("Failed to declare reply log queue", zap.Error(err))
	}

	if config.Cfg.TracingEnabled {
		shutdown, err := otel.InitOpenTelemetry(ctx, otel.Config{
			ServiceName:    config.Cfg.ServiceName,
			ServiceVersion: "1.0.0",
			Environment:    config.Cfg.Environment,
			OTLPEndpoint:   config.Cfg.OTLPEndpoint,
			SampleRatio:    config.Cfg.TracingSampler,
		})
		if err != nil {
			logger.Logger.Fatal("Failed to initialize OpenTelemetry", zap.Error(err))
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
			}
		}()
	}

	meter := otelapi.Meter("replyok-server")
	if err := middleware.InitMetrics(meter); err != nil {
		logger.Logger.Fatal("Failed to initialize HTTP metrics", zap.Error(err))
	}
	if err := service.InitMetrics(meter); err != nil {
		logger.Logger.Fatal("Failed to initialize engine metrics", zap.Error(err))
	}

	logger.Logger.Info("Server starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("port", config.Cfg.ServerPort),
		zap.String("environment", config.Cfg.Environment),
	)

	addr := net.JoinHostPort(config.Cfg.ServerHost, config.Cfg.ServerPort)
	tracer, traceMW := middleware.NewServerTracerConfig()
	h := server.Default(server.WithHostPorts(addr), tracer)
	h.Use(traceMW)

	router.Register(h)

	// 优雅关闭：在单独的 goroutine 中监听关闭信号并调用 Shutdown
	go func() {
		<-ctx.Done()
		logger.Logger.Info("Initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	logger.Logger.Info("HTTP server listening", zap.String("addr", addr))

	h.Spin()

	logger.Logger.Info("Server shutting down gracefully")
}
