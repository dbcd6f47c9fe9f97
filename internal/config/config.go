// Пакет config — загрузка и валидация конфигурации Hometail Web
// из переменных окружения (с опциональным .env-файлом).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Hometail Web.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- Бэкенд Hometail ---

	// Базовый URL REST API (например, http://localhost:9090/api)
	APIBaseURL string
	// Базовый URL раздачи загруженных изображений (/uploads/...).
	// Пустой — берётся origin APIBaseURL.
	UploadsBaseURL string
	// Таймаут установки соединения с API
	APIConnectTimeout time.Duration
	// Таймаут запроса к API целиком
	APIReadTimeout time.Duration

	// --- Сессии UI ---

	// Секрет шифрования session cookie (base64 32 байта или произвольная строка)
	SessionSecret string
	// Secure flag для cookie (true за HTTPS)
	SecureCookie bool

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
// Файл .env, если есть, подхватывается до чтения окружения.
func Load() (*Config, error) {
	// .env опционален: отсутствие файла — не ошибка
	_ = godotenv.Load()

	cfg := &Config{}
	var err error

	// --- Сервер ---

	// HW_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("HW_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("HW_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("HW_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// HW_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("HW_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("HW_LOG_LEVEL: %w", err)
	}

	// HW_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("HW_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("HW_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- Бэкенд ---

	// HW_API_BASE_URL — обязательный
	cfg.APIBaseURL, err = getEnvRequired("HW_API_BASE_URL")
	if err != nil {
		return nil, err
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return nil, fmt.Errorf("HW_API_BASE_URL: значение %q без http/https схемы", cfg.APIBaseURL)
	}

	// HW_UPLOADS_BASE_URL — база для изображений (по умолчанию origin API)
	cfg.UploadsBaseURL = strings.TrimRight(getEnvDefault("HW_UPLOADS_BASE_URL", originOf(cfg.APIBaseURL)), "/")

	// HW_API_CONNECT_TIMEOUT — таймаут соединения (по умолчанию 10s)
	cfg.APIConnectTimeout, err = getEnvDuration("HW_API_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("HW_API_CONNECT_TIMEOUT: %w", err)
	}

	// HW_API_READ_TIMEOUT — таймаут запроса целиком (по умолчанию 30s)
	cfg.APIReadTimeout, err = getEnvDuration("HW_API_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("HW_API_READ_TIMEOUT: %w", err)
	}
	if cfg.APIConnectTimeout <= 0 || cfg.APIReadTimeout <= 0 {
		return nil, fmt.Errorf("таймауты API обязаны быть положительными и конечными")
	}

	// --- Сессии ---

	// HW_SESSION_SECRET — секрет cookie (пустой — случайный ключ на рестарт)
	cfg.SessionSecret = getEnvDefault("HW_SESSION_SECRET", "")

	// HW_SECURE_COOKIE — Secure flag cookie (по умолчанию false)
	cfg.SecureCookie = getEnvDefault("HW_SECURE_COOKIE", "false") == "true"

	// --- Graceful shutdown ---

	// HW_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("HW_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("HW_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// originOf возвращает scheme://host из URL, отбрасывая путь.
// Для некорректного URL возвращает вход как есть (валидируется выше).
func originOf(rawURL string) string {
	rest := rawURL
	scheme := ""
	if idx := strings.Index(rawURL, "://"); idx >= 0 {
		scheme = rawURL[:idx+3]
		rest = rawURL[idx+3:]
	}
	if idx := strings.Index(rest, "/"); idx >= 0 {
		rest = rest[:idx]
	}
	return scheme + rest
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
