package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"wvw-tracker/internal/constants"
)

type Config struct {
	DBPath               string
	ServerPort           string
	LogLevel             string
	GW2APIBase           string
	MaxUploadBytes       int64
	MaxDecompressedBytes int64
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:               getEnv("DB_PATH", "wvw.db"),
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		GW2APIBase:           getEnv("GW2_API_BASE", "https://api.guildwars2.com"),
		MaxUploadBytes:       getEnvInt64("MAX_UPLOAD_BYTES", constants.MaxUploadBytes),
		MaxDecompressedBytes: getEnvInt64("MAX_DECOMPRESSED_BYTES", constants.MaxDecompressedBytes),
	}

	if cfg.MaxUploadBytes <= 0 || cfg.MaxDecompressedBytes <= 0 {
		return nil, fmt.Errorf("upload limits must be positive")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Int64("max_upload_bytes", cfg.MaxUploadBytes).
		Int64("max_decompressed_bytes", cfg.MaxDecompressedBytes).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
