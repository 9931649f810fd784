package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string
	APIPrefix  string
	Storage    string
	GinMode    string

	JWTSecret      string
	JWTExpiryHours int
	BcryptCost     int

	// StrictTaskScope scopes task create/update/delete to the caller's boards.
	StrictTaskScope bool
	SwaggerEnabled  bool
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using system environment variables")
	}

	return &Config{
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "kanban_user"),
		DBPassword:      getEnv("DB_PASSWORD", "kanban_pass"),
		DBName:          getEnv("DB_NAME", "kanban_db"),
		ServerPort:      getEnv("SERVER_PORT", "3000"),
		APIPrefix:       getEnv("API_PREFIX", "/api/v1"),
		Storage:         strings.ToLower(getEnv("STORAGE", StorageMemory)),
		GinMode:         getEnv("GIN_MODE", "release"),
		JWTSecret:       getEnv("JWT_SECRET", "kanban_secret"),
		JWTExpiryHours:  getEnvInt("JWT_EXPIRY_HOURS", 0),
		BcryptCost:      getEnvInt("BCRYPT_COST", 10),
		StrictTaskScope: getEnvBool("STRICT_TASK_SCOPE", false),
		SwaggerEnabled:  getEnvBool("SWAGGER_ENABLED", true),
	}
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=disable"
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", slog.String("key", key), slog.Int("default", defaultVal))
		return defaultVal
	}
	return value
}

func getEnvBool(key string, defaultVal bool) bool {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", slog.String("key", key), slog.Bool("default", defaultVal))
		return defaultVal
	}
	return value
}
