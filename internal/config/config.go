package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Bridge   BridgeConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration for operator tokens
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// BridgeConfig holds the settlement core's tunables. Poll interval and
// observation window are explicit so test suites can shrink them.
type BridgeConfig struct {
	PollInterval      time.Duration
	ObservationWindow time.Duration
	SolanaRPC         string
	LunesRPC          string
	VaultAddress      string
	BridgeAccount     string
	CoordinatorURL    string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "lusdtbridge"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", 12*time.Hour),
		},
		Bridge: BridgeConfig{
			PollInterval:      getEnvAsDuration("BRIDGE_POLL_INTERVAL", 5*time.Second),
			ObservationWindow: getEnvAsDuration("BRIDGE_OBSERVATION_WINDOW", 30*time.Minute),
			SolanaRPC:         getEnv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"),
			LunesRPC:          getEnv("LUNES_RPC_URL", "https://rpc.lunes.io"),
			VaultAddress:      getEnv("BRIDGE_VAULT_ADDRESS", ""),
			BridgeAccount:     getEnv("BRIDGE_ACCOUNT_ADDRESS", ""),
			CoordinatorURL:    getEnv("BRIDGE_COORDINATOR_URL", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
