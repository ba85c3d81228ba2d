package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	StoreDriver   string
	DBURL         string
	DBMaxConns    int
	RunMigrations bool

	OTelEnabled     bool
	OTelEndpoint    string
	OTelServiceName string

	CORSAllowedOrigins []string
	MaxBodyBytes       int64
}

// Load reads .env (outside production) and then the process environment.
func Load() Config {
	env := getEnv("APP_ENV", "dev")

	if env != "prod" {
		// .env is optional, real deployments use the environment
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("config: could not load .env: %v", err)
		}
		env = getEnv("APP_ENV", "dev")
	}

	return Config{
		Env:      env,
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", ""),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		DBURL:         getEnv("DATABASE_URL", buildDBURL()),
		DBMaxConns:    getEnvInt("DB_MAX_CONNS", 5),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),

		OTelEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelServiceName: getEnv("OTEL_SERVICE_NAME", "eventrest-api"),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
	}
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "eventrest")
	pass := getEnv("DB_PASSWORD", "eventrest")
	name := getEnv("DB_NAME", "eventrest")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			log.Printf("config: %s=%q is not an integer, using %d", key, v, fallback)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("config: %s=%q is not a boolean, using %t", key, v, fallback)
			return fallback
		}
		return b
	}
	return fallback
}

func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
