// File: internal/config/config.go
package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config 服務執行所需設定，全部來自環境變數
type Config struct {
	Addr string `envconfig:"APP_ADDR" default:":8080"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	// 啟動時先回滾全部 migration，僅供開發環境
	MigrateReset bool `envconfig:"MIGRATE_RESET" default:"false"`

	RedisAddr     string `envconfig:"REDIS_ADDR" required:"true"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	WorkerCount     int `envconfig:"WORKER_COUNT" default:"1"`
	WorkerQueueSize int `envconfig:"WORKER_QUEUE_SIZE" default:"100"`

	JWTSecret       string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenTTL  time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"1h"`
	RefreshTokenTTL time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"720h"`

	// 兩者皆設定時，啟動時若帳號不存在會建立管理員
	AdminLoginID  string `envconfig:"ADMIN_LOGIN_ID"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	Debug     bool   `envconfig:"APP_DEBUG" default:"false"`
}

// Load 讀取並檢查環境變數
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	// envconfig 的 required 只檢查是否設定，空字串也需擋下
	if cfg.DatabaseURL == "" {
		return nil, errors.New("環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisAddr == "" {
		return nil, errors.New("環境變數 REDIS_ADDR 未設定")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("環境變數 JWT_SECRET 未設定")
	}
	if cfg.WorkerCount <= 0 {
		return nil, errors.New("WORKER_COUNT 必須大於 0")
	}
	if cfg.WorkerQueueSize < 0 {
		return nil, errors.New("WORKER_QUEUE_SIZE 不可為負數")
	}
	if cfg.RedisDB < 0 {
		return nil, errors.New("REDIS_DB 不可為負數")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, errors.New("token TTL 必須大於 0")
	}
	return &cfg, nil
}
