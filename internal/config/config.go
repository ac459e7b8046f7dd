package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken   string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN           string `mapstructure:"DB_DSN"`
	Environment     string `mapstructure:"ENV"`
	MigrationsPath  string `mapstructure:"MIGRATIONS_PATH"`
	TelegramAdminID int64  `mapstructure:"TELEGRAM_ADMIN_ID"`
	TelegramOwnerID int64  `mapstructure:"TELEGRAM_OWNER_ID"`
	TelegramGroupID int64  `mapstructure:"TELEGRAM_GROUP_ID"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	// Читаем напрямую из переменных окружения (после godotenv.Load они там)
	cfg := &Config{
		DBDSN:           os.Getenv("DB_DSN"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		Environment:     os.Getenv("ENV"),
		MigrationsPath:  os.Getenv("MIGRATIONS_PATH"),
		TelegramAdminID: parseInt64Env("TELEGRAM_ADMIN_ID"),
		TelegramOwnerID: parseInt64Env("TELEGRAM_OWNER_ID"),
		TelegramGroupID: parseInt64Env("TELEGRAM_GROUP_ID"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.TelegramOwnerID == 0 {
		return nil, fmt.Errorf("TELEGRAM_OWNER_ID is required but not set")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// parseInt64Env читает переменную окружения как int64, 0 если не задана
func parseInt64Env(key string) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("⚠️  Invalid %s value %q, ignoring", key, raw)
		return 0
	}
	return value
}
