package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ReplyOK/config"
	"ReplyOK/internal/queue"
	"ReplyOK/pkg/logger"
	"ReplyOK/pkg/snowflake"
	"ReplyOK/storage"
	"ReplyOK/storage/mq"
)

func main() {

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

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := mq.DeclareQueue(config.Cfg.ReplyLogQueue); err != nil {
		logger.Logger.Fatal("Failed to declare reply log queue", zap.Error(err))
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", config.Cfg.ServiceName+"-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	// 启动所有的消费者部分
	queue.StartAllConsumers(ctx)

	logger.Logger.Info("Worker service shutting down gracefully")
}
