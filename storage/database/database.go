package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ReplyOK/config"
	"ReplyOK/pkg/logger"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
	dbErr  error
)

// Init 打开 PostgreSQL 连接、配置连接池并执行迁移，只初始化一次。
func Init() error {
	dbOnce.Do(func() {
		gormDB, err := gorm.Open(postgres.Open(dsn()), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			PrepareStmt:                              true,
			SkipDefaultTransaction:                   true,
		})
		if err != nil {
			dbErr = fmt.Errorf("open database: %w", err)
			return
		}

		sqlDB, err := gormDB.DB()
		if err != nil {
			dbErr = err
			return
		}

		sqlDB.SetMaxIdleConns(config.Cfg.PostgreSQLMaxIdle)
		sqlDB.SetMaxOpenConns(config.Cfg.PostgreSQLMaxOpen)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
		sqlDB.SetConnMaxLifetime(2 * time.Hour)

		if err := sqlDB.Ping(); err != nil {
			dbErr = fmt.Errorf("ping database: %w", err)
			return
		}

		db = gormDB
		if err := Migrate(); err != nil {
			logger.Logger.Fatal("Failed to run database migration", zap.Error(err))
		}
		logger.Logger.Info("Database initialized",
			zap.String("host", config.Cfg.PostgreSQLHost),
			zap.String("database", config.Cfg.PostgreSQLDatabase),
		)
	})

	return dbErr
}

func DB() *gorm.DB {
	return db
}

func Close(ctx context.Context) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- sqlDB.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func dsn() string {
	cfg := config.Cfg
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.PostgreSQLHost,
		cfg.PostgreSQLPort,
		cfg.PostgreSQLUser,
		cfg.PostgreSQLPassword,
		cfg.PostgreSQLDatabase,
		cfg.PostgreSQLSSLMode,
		cfg.PostgreSQLSchema,
	)
}
