package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Telegram struct {
		// BotToken используется для проверки подписи initData при логине.
		BotToken string `yaml:"bot_token"`
	} `yaml:"telegram"`

	Scheduler struct {
		// SweepPeriod - период обхода событий планировщиком, секунды.
		SweepPeriodSeconds int `yaml:"sweep_period_seconds"`
	} `yaml:"scheduler"`
}

// SweepPeriod возвращает период обхода как time.Duration (по умолчанию минута).
func (c *Config) SweepPeriod() time.Duration {
	if c.Scheduler.SweepPeriodSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.Scheduler.SweepPeriodSeconds) * time.Second
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		AppConfig = &cfg
		return
	}

	// Загрузка из переменных окружения (docker / тестовый режим)
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60 * 24
	cfg.Telegram.BotToken = os.Getenv("BOT_TOKEN")
	cfg.Scheduler.SweepPeriodSeconds, _ = strconv.Atoi(os.Getenv("SWEEP_PERIOD_SECONDS"))

	AppConfig = &cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
