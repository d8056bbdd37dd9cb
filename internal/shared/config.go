package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	MySQLDSN string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret     string
	TokenLifetime time.Duration

	UserServiceURL  string
	VillaServiceURL string
	MediaServiceURL string

	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioBucket     string
	MinioPublicHost string
	MinioUseSSL     bool

	OTPTTL time.Duration

	Workers int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/villamarket?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),

		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),

		JWTSecret:     env("JWT_SECRET", ""),
		TokenLifetime: time.Duration(atoi("TOKEN_LIFETIME_MINUTES", 24*60)) * time.Minute,

		UserServiceURL:  env("USER_SERVICE_URL", "http://localhost:8001"),
		VillaServiceURL: env("VILLA_SERVICE_URL", "http://localhost:8002"),
		MediaServiceURL: env("MEDIA_SERVICE_URL", "http://localhost:8004"),

		MinioEndpoint:   env("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:  env("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:  env("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:     env("MINIO_BUCKET", "villa-images"),
		MinioPublicHost: env("MINIO_HOST", "localhost:9000"),
		MinioUseSSL:     env("MINIO_USE_SSL", "") == "true",

		OTPTTL: time.Duration(atoi("OTP_TTL_SECONDS", 300)) * time.Second,

		Workers: atoi("SEED_WORKERS", 8),
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
