// @title        User Admin API
// @version      1.0
// @description  後台使用者管理 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"user-admin/internal/api"
	"user-admin/internal/cache"
	"user-admin/internal/config"
	"user-admin/internal/database"
	"user-admin/internal/logging"
	"user-admin/internal/router"
	"user-admin/internal/service"
	"user-admin/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "user-admin/docs" // 註冊 API 文件

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	ensureAdmin     = service.EnsureAdmin
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

var logOutput io.Writer = os.Stdout

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	logger := logging.New(logOutput, cfg.LogLevel, cfg.LogFormat)

	if cfg.MigrateReset {
		logger.Warn().Msg("rolling back all migrations")
		if err := rollbackAllFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("RollbackAll 失敗: %w", err)
		}
	}
	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error().Err(err).Msg("關閉 Redis 連線失敗")
		}
	}()

	created, err := ensureAdmin(context.Background(), db, cfg.AdminLoginID, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("建立管理員失敗: %w", err)
	}
	if created {
		logger.Info().Str("login_id", cfg.AdminLoginID).Msg("admin account created")
	}

	wp := newWorkerPool(cfg.WorkerCount, cfg.WorkerQueueSize, logger)
	defer wp.Stop()

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug
	e.Validator = &CustomValidator{validator: api.NewValidator()}
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())

	router.Setup(e, db, rdb, tokens, wp)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	logger.Info().Str("addr", cfg.Addr).Msg("server starting")
	return startServer(e, cfg.Addr)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}
