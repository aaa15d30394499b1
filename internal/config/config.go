package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string        `mapstructure:"DB_DSN"`
	Environment    string        `mapstructure:"ENV"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	HTTPAddr       string        `mapstructure:"HTTP_ADDR"`
	TelegramToken  string        `mapstructure:"TELEGRAM_TOKEN"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	AMQPURL        string        `mapstructure:"AMQP_URL"`
	AMQPExchange   string        `mapstructure:"AMQP_EXCHANGE"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH"`
	Timezone       string        `mapstructure:"TIMEZONE"`
	LockTTL        time.Duration `mapstructure:"LOCK_TTL"`
	DraftTTL       time.Duration `mapstructure:"DRAFT_TTL"`

	Location *time.Location
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из произвольного источника переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBDSN:          getenv("DB_DSN"),
		Environment:    withDefault(getenv("ENV"), "development"),
		LogLevel:       getenv("LOG_LEVEL"),
		HTTPAddr:       withDefault(getenv("HTTP_ADDR"), ":8080"),
		TelegramToken:  getenv("TELEGRAM_TOKEN"),
		RedisAddr:      getenv("REDIS_ADDR"),
		RedisPassword:  getenv("REDIS_PASSWORD"),
		AMQPURL:        getenv("AMQP_URL"),
		AMQPExchange:   withDefault(getenv("AMQP_EXCHANGE"), "court_booking"),
		MigrationsPath: withDefault(getenv("MIGRATIONS_PATH"), "migrations"),
		Timezone:       withDefault(getenv("TIMEZONE"), "America/Argentina/Buenos_Aires"),
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	var err error
	if cfg.LockTTL, err = durationOr(getenv("LOCK_TTL"), 10*time.Second); err != nil {
		return nil, fmt.Errorf("LOCK_TTL: %w", err)
	}
	if cfg.DraftTTL, err = durationOr(getenv("DRAFT_TTL"), 15*time.Minute); err != nil {
		return nil, fmt.Errorf("DRAFT_TTL: %w", err)
	}

	if cfg.Location, err = time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// BotEnabled бот запускается только при заданном токене
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

func withDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func durationOr(value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", value)
	}
	return d, nil
}
