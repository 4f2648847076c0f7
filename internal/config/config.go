package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	AppEnv     string
	PublicURL  string

	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret     string
	JWTExpiresIn  time.Duration
	JWTCookieDays int

	SMTPHost     string
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	S3Region    string
	S3Bucket    string
	S3Endpoint  string
	S3PublicURL string
	S3AccessKey string
	S3SecretKey string

	SwaggerHost string
}

// IsProduction reports whether the app runs with the production error surface.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),
		PublicURL:  getEnv("PUBLIC_URL", "http://localhost:8080"),

		MySQLDSN:  getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/filedrop?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		JWTExpiresIn:  getEnvDuration("JWT_EXPIRES_IN", 90*24*time.Hour),
		JWTCookieDays: getEnvInt("JWT_COOKIE_EXPIRES_IN", 90),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		EmailFrom:    getEnv("EMAIL_FROM", "Filedrop <noreply@filedrop.local>"),

		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", "filedrop"),
		S3Endpoint:  getEnv("S3_ENDPOINT", "http://localhost:9000"),
		S3PublicURL: getEnv("S3_PUBLIC_URL", "http://localhost:9000"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
