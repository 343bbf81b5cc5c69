package service

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"ReplyOK/pkg/logger"
)

func TestMain(m *testing.M) {
	// 服务层直接调用全局日志器，测试进程不跑 logger.Init
	logger.Logger = zap.NewNop()
	os.Exit(m.Run())
}
