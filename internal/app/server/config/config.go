package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath = ".env"

	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	defaultEnv             = EnvLocal
	defaultRunAddress      = ":8080"
	defaultDriver          = DriverPostgres
	defaultMigrations      = "migrations"
	defaultLogLevel        = "info"
	defaultAppVersion      = "dev"
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Env     string
	Version string
	DB      Database
	Server  Server
	Logger  Logger
	Admin   Admin
}

type Database struct {
	Driver      string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type Server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type Admin struct {
	// TokenHash bcrypt хеш bearer токена администратора.
	TokenHash string `env:"ADMIN_TOKEN_HASH"`
}

// Load читает конфигурацию из окружения, .env и (если задан) YAML файла.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	} else {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("APP_VERSION", defaultAppVersion)
	v.SetDefault("RUN_ADDRESS", defaultRunAddress)
	v.SetDefault("DATABASE_DRIVER", defaultDriver)
	v.SetDefault("MIGRATIONS_PATH", defaultMigrations)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Env:     v.GetString("APP_ENV"),
		Version: v.GetString("APP_VERSION"),
		DB: Database{
			Driver:      v.GetString("DATABASE_DRIVER"),
			DatabaseURI: v.GetString("DATABASE_URI"),
			Migrations:  v.GetString("MIGRATIONS_PATH"),
		},
		Server: Server{
			RunAddress:      v.GetString("RUN_ADDRESS"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Logger: Logger{LogLevel: v.GetString("LOG_LEVEL")},
		Admin:  Admin{TokenHash: v.GetString("ADMIN_TOKEN_HASH")},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoad как Load, но паникует на ошибке конфигурации.
func MustLoad(configFile string) *Config {
	cfg, err := Load(configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown APP_ENV %q", c.Env)
	}

	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.DB.Driver)
	}

	if c.DB.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI is required")
	}

	return nil
}
