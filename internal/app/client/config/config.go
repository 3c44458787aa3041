package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultLogLevel      = "info"
	defaultEnv           = "local"
	defaultTimeout       = 30 * time.Second
)

type Config struct {
	Env           string
	ServerAddress string
	Token         string
	LogLevel      string
	EnableTLS     bool
	Timeout       time.Duration
}

// Load загружает конфигурацию клиента из окружения, .env и YAML файла.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("MGTBOARD_SERVER", defaultServerAddress)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("MGTBOARD_TLS", false)
	v.SetDefault("MGTBOARD_TIMEOUT", defaultTimeout)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Env:           v.GetString("APP_ENV"),
		ServerAddress: v.GetString("MGTBOARD_SERVER"),
		Token:         v.GetString("MGTBOARD_TOKEN"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		EnableTLS:     v.GetBool("MGTBOARD_TLS"),
		Timeout:       v.GetDuration("MGTBOARD_TIMEOUT"),
	}

	if cfg.ServerAddress == "" {
		return nil, fmt.Errorf("MGTBOARD_SERVER is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return cfg, nil
}

// BaseURL возвращает адрес сервера со схемой.
func (c *Config) BaseURL() string {
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + c.ServerAddress
}
