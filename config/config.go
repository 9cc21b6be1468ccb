package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	Store    StoreConfig
	DB       DBConfig
	Telegram TelegramConfig
	Log      LogConfig
	Auth     AuthConfig
}

type StoreConfig struct {
	Backend          string // "file" or "postgres"
	CredentialsFile  string
	OrderHistoryFile string
}

type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Database    string
	AutoMigrate bool
}

type TelegramConfig struct {
	Token string
}

type LogConfig struct {
	Level  string
	Format string // "console" or "json"
}

type AuthConfig struct {
	SecretMode    string // "plain" or "bcrypt"
	LoginThrottle bool
}

// Load reads the optional env files (".env" when none given), then the
// process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, err
	}

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))

	return &Config{
		Store: StoreConfig{
			Backend:          strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
			CredentialsFile:  getEnv("CREDENTIALS_FILE", "credentials.csv"),
			OrderHistoryFile: getEnv("ORDER_HISTORY_FILE", "order_history.csv"),
		},
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        port,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Database:    getEnv("DB_NAME", "foodorder"),
			AutoMigrate: getBool("AUTO_MIGRATE", false),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TOKEN", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Auth: AuthConfig{
			SecretMode:    getEnv("SECRET_MODE", "plain"),
			LoginThrottle: getBool("LOGIN_THROTTLE", false),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getBool accepts "1"/"true" and "0"/"false" (any case); anything else yields def.
func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	switch {
	case v == "1" || strings.EqualFold(v, "true"):
		return true
	case v == "0" || strings.EqualFold(v, "false"):
		return false
	}
	return def
}
