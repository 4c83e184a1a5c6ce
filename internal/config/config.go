package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingSecret   = errors.New("JWT_SECRET_KEY is not set")
	ErrInvalidCost     = errors.New("invalid bcrypt cost")
	ErrInvalidTokenTTL = errors.New("access token duration must be positive")
	ErrMissingStoreURI = errors.New("DB_PATH is not set")
)

const defaultTokenDuration = time.Hour

// DB holds connection parameters for the postgres snapshot backend.
type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	ServerPort          int
	JWTSecretKey        string
	AccessTokenDuration time.Duration
	BcryptCost          int
	StoreURI            string
	SerializeWrites     bool
	DB                  DB
	MinIO               MinIO
	Log                 Log
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "microblog"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		Region:    getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:          getEnvAsInt("SERVER_PORT", 5000),
		JWTSecretKey:        getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration: parseDuration(getEnv("ACCESS_TOKEN_DURATION", "1h"), defaultTokenDuration),
		BcryptCost:          getEnvAsInt("BCRYPT_COST", 10),
		StoreURI:            getEnv("DB_PATH", "database.json"),
		SerializeWrites:     getEnvBool("SERIALIZE_WRITES", false),
		DB:                  LoadDB(),
		MinIO:               LoadMinIO(),
		Log: Log{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
}

// Validate reports settings the process cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return ErrMissingSecret
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: %d", ErrInvalidCost, c.BcryptCost)
	}

	if c.AccessTokenDuration <= 0 {
		return ErrInvalidTokenTTL
	}

	if c.StoreURI == "" {
		return ErrMissingStoreURI
	}

	return nil
}
