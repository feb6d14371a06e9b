package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	ListCacheTTL   time.Duration
}

type Config struct {
	Backend         BackendConfig
	ServerPort      string
	MetricsAddr     string
	PprofAddr       string
	DataDir         string
	DefaultLanguage string
}

func Load() (*Config, error) {
	cfg := &Config{
		Backend: BackendConfig{
			BaseURL:        getEnvOrDefault("BACKEND_BASE_URL", ""),
			RequestTimeout: getDurationOrDefault("BACKEND_REQUEST_TIMEOUT", 30*time.Second),
			ListCacheTTL:   getDurationOrDefault("BACKEND_LIST_CACHE_TTL", 30*time.Second),
		},
		ServerPort:      getEnvOrDefault("SERVER_PORT", "8080"),
		MetricsAddr:     getEnvOrDefault("METRICS_ADDR", ":9092"),
		PprofAddr:       getEnvOrDefault("PPROF_ADDR", ":6060"),
		DataDir:         getEnvOrDefault("DATA_DIR", defaultDataDir()),
		DefaultLanguage: getEnvOrDefault("DEFAULT_LANGUAGE", "en"),
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL environment variable is required")
	}

	return cfg, nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/cessiondesk"
	}
	return ".cessiondesk"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
