package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string `validate:"required"`

	OddsAPIKey       string
	OddsAPIBaseURL   string        `validate:"required,url"`
	OddsAPIRPS       float64       `validate:"gt=0"`
	OddsAPICallLimit int           `validate:"gte=0"`
	OddsHTTPTimeout  time.Duration `validate:"gt=0"`

	CacheBackend string        `validate:"oneof=file redis"`
	CacheFile    string        `validate:"required_if=CacheBackend file"`
	CacheTTL     time.Duration `validate:"gt=0"`
	RedisURL     string        `validate:"required_if=CacheBackend redis"`

	HTTPPort         string `validate:"required,numeric"`
	ScheduleTimezone string `validate:"required,timezone"`

	DiscordBotToken  string
	DiscordChannelID string `validate:"required_with=DiscordBotToken"`

	RandomSeed int64
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", "sqlite:instance/users.db"),

		OddsAPIKey:       getEnv("ODDS_API_KEY", ""),
		OddsAPIBaseURL:   getEnv("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4/sports"),
		OddsAPIRPS:       getEnvFloat("ODDS_API_RPS", 2),
		OddsAPICallLimit: getEnvInt("ODDS_API_CALL_LIMIT", 500),
		OddsHTTPTimeout:  getEnvDuration("ODDS_HTTP_TIMEOUT", 15*time.Second),

		CacheBackend: getEnv("ODDS_CACHE_BACKEND", "file"),
		CacheFile:    getEnv("ODDS_CACHE_FILE", "odds_cache.json"),
		CacheTTL:     getEnvDuration("ODDS_CACHE_TTL", 20*time.Minute),
		RedisURL:     getEnv("REDIS_URL", ""),

		HTTPPort:         getEnv("HTTP_PORT", "5000"),
		ScheduleTimezone: getEnv("SCHEDULE_TIMEZONE", "America/Chicago"),

		DiscordBotToken:  getEnv("DISCORD_BOT_TOKEN", ""),
		DiscordChannelID: getEnv("DISCORD_CHANNEL_ID", ""),

		RandomSeed: int64(getEnvInt("RANDOM_SEED", 0)),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.OddsAPIKey == "" {
		log.Println("Warning: ODDS_API_KEY not set. Odds requests will be rejected upstream.")
	}
	return cfg, nil
}

func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.ScheduleTimezone)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return floatValue
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to duration: %v", key, err)
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
