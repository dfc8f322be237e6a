package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort       string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	DBReplicaHost string
	DBTimeout     time.Duration

	RedisAddr string

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	KafkaBrokerURL string
	KafkaTopic     string

	OTELEndpoint string
}

func LoadConfig() *Config {
	return &Config{
		AppPort:       getEnv("APP_PORT", ":8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPass:        getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "social_db"),
		DBReplicaHost: getEnv("DB_REPLICA_HOST", ""),
		DBTimeout:     getDuration("DB_TIMEOUT", 5*time.Second),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		JWTSecret: getEnv("JWT_SECRET", "replace-this-with-a-strong-secret"),
		TokenTTL:  getDuration("TOKEN_TTL", 24*time.Hour),

		UploadDir: getEnv("UPLOAD_DIR", "public"),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Bucket:    getEnv("S3_BUCKET", "media"),
		S3UseSSL:    getBool("S3_USE_SSL", false),

		KafkaBrokerURL: getEnv("KAFKA_BROKER_URL", ""),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "social-events"),

		OTELEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func (c *Config) ReplicaDSN() string {
	if c.DBReplicaHost == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DBReplicaHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}
