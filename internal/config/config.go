package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort           = "8080"
	defaultDatabaseURL    = "resumeparser.db"
	defaultJWTTTL         = "24h"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultLLMTimeout     = "60s"
	defaultLLMMaxRetries  = "3"
	defaultLLMRetryDelay  = "1s"
	defaultUploadsBaseDir = "./uploads"
	defaultWorkers        = "3"
	defaultQueueSize      = "64"
	defaultOCREnabled     = "true"
)

type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	OpenAIKey     string
	OpenAIModel   string
	LLMTimeout    time.Duration
	LLMMaxRetries int
	LLMRetryDelay time.Duration

	UploadsBaseDir string
	Workers        int
	QueueSize      int
	OCREnabled     bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", defaultPort),
		DatabaseURL:    getEnv("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:      strings.TrimSpace(os.Getenv("JWT_SECRET")),
		OpenAIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:    getEnv("OPENAI_MODEL", defaultOpenAIModel),
		UploadsBaseDir: getEnv("UPLOADS_DIR", defaultUploadsBaseDir),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is empty")
	}

	var err error
	if cfg.JWTTTL, err = parseDuration("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.LLMTimeout, err = parseDuration("LLM_TIMEOUT", defaultLLMTimeout); err != nil {
		return nil, err
	}
	if cfg.LLMRetryDelay, err = parseDuration("LLM_RETRY_DELAY", defaultLLMRetryDelay); err != nil {
		return nil, err
	}
	if cfg.LLMMaxRetries, err = parseInt("LLM_MAX_RETRIES", defaultLLMMaxRetries); err != nil {
		return nil, err
	}
	if cfg.Workers, err = parseInt("PROCESS_WORKERS", defaultWorkers); err != nil {
		return nil, err
	}
	if cfg.QueueSize, err = parseInt("PROCESS_QUEUE_SIZE", defaultQueueSize); err != nil {
		return nil, err
	}
	if cfg.OCREnabled, err = parseBool("OCR_ENABLED", defaultOCREnabled); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	v, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseInt(key, fallback string) (int, error) {
	v, err := strconv.Atoi(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseBool(key, fallback string) (bool, error) {
	v, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
