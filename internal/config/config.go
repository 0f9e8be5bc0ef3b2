package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Account store backends.
const (
	AccountStoreDynamo = "dynamo"
	AccountStoreMongo  = "mongo"
)

// Pending-registration store backends.
const (
	PendingStoreMemory = "memory"
	PendingStoreRedis  = "redis"
)

// DefaultPendingRetention is how long a pending record outlives its OTP so a
// late verification still reports it as expired.
const DefaultPendingRetention = time.Hour

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AccountStore   string // "dynamo" | "mongo"
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	MongoURI       string
	MongoDatabase  string

	PendingStore         string // "memory" | "redis"
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	PendingRetention     time.Duration
	PendingSweepInterval time.Duration // 0 disables the sweep

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	AllowedOrigins []string // CORS allowed origins
	AdminToken     string   // empty disables the admin routes
}

// DynamoTables holds the DynamoDB table name for each account collection.
type DynamoTables struct {
	Users       string
	Shopkeepers string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AccountStore:   strings.ToLower(getEnv("ACCOUNT_STORE", AccountStoreDynamo)),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:       getEnv("DYNAMO_TABLE_USERS", "users"),
			Shopkeepers: getEnv("DYNAMO_TABLE_SHOPKEEPERS", "shopkeepers"),
		},
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "kirana_system"),

		PendingStore:         strings.ToLower(getEnv("PENDING_STORE", PendingStoreMemory)),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		PendingRetention:     getEnvPositiveDuration("PENDING_RETENTION", DefaultPendingRetention),
		PendingSweepInterval: getEnvPositiveDuration("PENDING_SWEEP_INTERVAL", 0),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AdminToken:     getEnv("ADMIN_TOKEN", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvPositiveDuration is getEnvDuration that also rejects zero and
// negative values.
func getEnvPositiveDuration(key string, fallback time.Duration) time.Duration {
	if d := getEnvDuration(key, fallback); d > 0 {
		return d
	}
	return fallback
}
