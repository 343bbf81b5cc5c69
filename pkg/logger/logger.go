package logger

import (
	"io"
	"os"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzap "github.com/hertz-contrib/logger/zap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ReplyOK/config"
)

// Logger 是全局结构化日志器，Init 之后才可用。
var Logger *zap.Logger

var logFile io.Closer

// Init 构建 zap 日志器并接管 hertz 的 hlog 输出。
func Init() {
	level := parseLevel(config.Cfg.LoggerLevel)

	atomicLevel := zap.NewAtomicLevelAt(level)
	hzLogger := hertzzap.NewLogger(
		hertzzap.WithCoreEnc(newEncoder()),
		hertzzap.WithCoreWs(newWriteSyncer()),
		hertzzap.WithCoreLevel(atomicLevel),
		hertzzap.WithZapOptions(
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		),
	)

	hlog.SetLogger(hzLogger)
	hlog.SetLevel(hlogLevels[level])

	Logger = hzLogger.Logger()
	Logger.Info("Logger initialized",
		zap.String("level", level.CapitalString()),
		zap.String("format", config.Cfg.LoggerFormat),
		zap.String("environment", config.Cfg.Environment),
	)
}

// Sync 刷出缓冲日志并关闭文件输出，进程退出前调用。
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
	if logFile != nil {
		_ = logFile.Close()
	}
}

// 开发环境用带色 console 输出，其余按配置走 JSON。
func newEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder

	if config.Cfg.IsDevelopment() || strings.EqualFold(config.Cfg.LoggerFormat, "text") {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}

	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func newWriteSyncer() zapcore.WriteSyncer {
	path := config.Cfg.LoggerOutputPath
	if path == "" || strings.EqualFold(path, "stdout") {
		return zapcore.AddSync(os.Stdout)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		panic("failed to open log file: " + err.Error())
	}
	logFile = file

	return zapcore.AddSync(file)
}

func parseLevel(s string) zapcore.Level {
	level, err := zapcore.ParseLevel(strings.ToLower(s))
	if err != nil || level < zapcore.DebugLevel || level > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}

	return level
}

var hlogLevels = map[zapcore.Level]hlog.Level{
	zapcore.DebugLevel: hlog.LevelDebug,
	zapcore.InfoLevel:  hlog.LevelInfo,
	zapcore.WarnLevel:  hlog.LevelWarn,
	zapcore.ErrorLevel: hlog.LevelError,
}
