package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv memuat file .env bila ada. Variabel environment yang sudah diset tetap dipakai.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env tidak ditemukan, memakai environment proses", "error", err)
	}
}

type Config struct {
	Port        string
	DatabaseURL string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	UploadDir   string
	CacheTTL    time.Duration
	LogLevel    string
	LogFormat   string
	BodyLimitMB int
}

func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: postgresDSN(),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "grade_analytics"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		CacheTTL:    getDuration("CACHE_TTL", 10*time.Minute),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		BodyLimitMB: getInt("BODY_LIMIT_MB", 20),
	}
}

// postgresDSN: DATABASE_URL menang, selain itu dirakit dari DB_*.
func postgresDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return "host=" + getEnv("DB_HOST", "localhost") +
		" port=" + getEnv("DB_PORT", "5432") +
		" user=" + getEnv("DB_USER", "postgres") +
		" password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + getEnv("DB_NAME", "grade_analytics") +
		" sslmode=" + getEnv("DB_SSLMODE", "disable")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
