package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"goalboom/internal/logging"
	"goalboom/pkg/database"
)

type Config struct {
	HTTPAddr string `validate:"required"`
	GRPCAddr string `validate:"required"`
	DataDir  string `validate:"required"`
	AssetDir string
	DBPath   string `validate:"required_if=SessionStore sqlite"`

	SessionStore string        `validate:"oneof=sqlite valkey"`
	ValkeyURL    string        `validate:"required_if=SessionStore valkey"`
	SessionTTL   time.Duration `validate:"gt=0"`

	Token   TokenConfig
	Logging logging.Config
}

type TokenConfig struct {
	Secret   string        `validate:"required"`
	Issuer   string        `validate:"required"`
	Duration time.Duration `validate:"gt=0"`
}

// Load reads GOALBOOM_* variables, optionally from a .env file.
func Load() (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:     getEnv("GOALBOOM_HTTP_ADDR", ":8080"),
		GRPCAddr:     getEnv("GOALBOOM_GRPC_ADDR", ":9090"),
		DataDir:      getEnv("GOALBOOM_DATA_DIR", "data"),
		AssetDir:     os.Getenv("GOALBOOM_ASSET_DIR"),
		DBPath:       getEnv("GOALBOOM_DB_PATH", database.DefaultConfig().Path),
		SessionStore: getEnv("GOALBOOM_SESSION_STORE", "sqlite"),
		ValkeyURL:    os.Getenv("GOALBOOM_VALKEY_URL"),
		SessionTTL:   time.Duration(getEnvInt("GOALBOOM_SESSION_TTL_MINUTES", 60)) * time.Minute,
		Token: TokenConfig{
			// dev default (change for demo / production)
			Secret:   getEnv("GOALBOOM_TOKEN_SECRET", "dev-secret-change-me"),
			Issuer:   getEnv("GOALBOOM_TOKEN_ISSUER", "goalboom"),
			Duration: time.Duration(getEnvInt("GOALBOOM_TOKEN_TTL_HOURS", 24)) * time.Hour,
		},
		Logging: logging.Config{
			Level:      getEnv("GOALBOOM_LOG_LEVEL", "info"),
			Dir:        os.Getenv("GOALBOOM_LOG_DIR"),
			MaxSizeMB:  getEnvInt("GOALBOOM_LOG_MAX_SIZE_MB", 50),
			MaxBackups: getEnvInt("GOALBOOM_LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("GOALBOOM_LOG_MAX_AGE_DAYS", 14),
		},
	}
	if cfg.AssetDir == "" {
		cfg.AssetDir = cfg.DataDir + "/images"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt falls back to def when the value does not parse.
func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
