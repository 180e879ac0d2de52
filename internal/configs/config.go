package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит всю конфигурацию приложения.
type Config struct {
	AppName string
	Port    string

	Backend       BackendConfig
	ExchangeRates ExchangeRatesConfig
	Storage       StorageConfig
	Auth          AuthConfig
	Activity      ActivityConfig

	CORSAllowedOrigins []string

	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// BackendConfig - PHP API маркетплейса.
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// ExchangeRatesConfig - публичный источник курсов (база USD).
type ExchangeRatesConfig struct {
	URL     string
	Timeout time.Duration
}

// StorageConfig - где живет клиентское хранилище посетителей.
type StorageConfig struct {
	Driver string // memory | postgres | memcache

	MemoryMaxEntries int64
	MemoryTTL        time.Duration

	DatabaseURL     string
	MemcacheServers []string
}

type AuthConfig struct {
	SessionKey    string // ключ подписи cookie посетителя
	CookieSecure  bool
	JWTSigningKey string
	TokenTTL      time.Duration
}

// ActivityConfig - публикация событий активности в RabbitMQ.
type ActivityConfig struct {
	Enabled     bool
	RabbitMQURL string
	Exchange    string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
	StorageDriverMemcache = "memcache"
)

// LoadConfig загружает конфигурацию из переменных окружения.
// .env необязателен: без него используются переменные окружения процесса.
func LoadConfig(envPath ...string) (*Config, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		AppName: getEnv("APP_NAME", "rental-bff"),
		Port:    getEnv("PORT", "8080"),
		Backend: BackendConfig{
			URL:     getEnv("BACKEND_API_URL", "http://localhost:8000/api"),
			Timeout: getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
		},
		ExchangeRates: ExchangeRatesConfig{
			URL:     getEnv("EXCHANGE_RATES_URL", "https://open.er-api.com/v6/latest/USD"),
			Timeout: getEnvAsDuration("EXCHANGE_RATES_TIMEOUT", 5*time.Second),
		},
		Storage: StorageConfig{
			Driver:           strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverMemory)),
			MemoryMaxEntries: int64(getEnvAsInt("STORAGE_MEMORY_MAX_ENTRIES", 100000)),
			MemoryTTL:        getEnvAsDuration("STORAGE_MEMORY_TTL", 30*24*time.Hour),
			DatabaseURL:      os.Getenv("DATABASE_URL"),
			MemcacheServers:  splitList(os.Getenv("MEMCACHE_SERVERS")),
		},
		Auth: AuthConfig{
			SessionKey:    os.Getenv("SESSION_KEY"),
			CookieSecure:  getEnvAsBool("COOKIE_SECURE", false),
			JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
			TokenTTL:      getEnvAsDuration("AUTH_TOKEN_TTL", 24*time.Hour),
		},
		Activity: ActivityConfig{
			Enabled:     getEnvAsBool("ACTIVITY_EVENTS_ENABLED", false),
			RabbitMQURL: os.Getenv("RABBITMQ_URL"),
			Exchange:    getEnv("ACTIVITY_EXCHANGE", "rental.activity"),
		},
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	if cfg.Auth.SessionKey == "" {
		return nil, fmt.Errorf("SESSION_KEY environment variable is required")
	}
	if cfg.Auth.JWTSigningKey == "" {
		return nil, fmt.Errorf("JWT_SIGNING_KEY environment variable is required")
	}

	switch cfg.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if cfg.Storage.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for storage driver %q", cfg.Storage.Driver)
		}
	case StorageDriverMemcache:
		if len(cfg.Storage.MemcacheServers) == 0 {
			return nil, fmt.Errorf("MEMCACHE_SERVERS is required for storage driver %q", cfg.Storage.Driver)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}

	if cfg.Activity.Enabled && cfg.Activity.RabbitMQURL == "" {
		log.Println("WARNING: ACTIVITY_EVENTS_ENABLED is true, but RABBITMQ_URL is not set. Disabling activity events.")
		cfg.Activity.Enabled = false
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnv - вспомогательная функция для чтения переменных окружения с значением по умолчанию.
// Пустое значение считается отсутствующим.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration понимает формат time.ParseDuration ("10s", "24h").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valDuration, err := time.ParseDuration(valStr)
	if err != nil || valDuration <= 0 {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valDuration
}

// splitList разбирает список через запятую, пустые элементы отбрасываются.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
