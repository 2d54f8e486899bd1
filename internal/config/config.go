package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name   string `envconfig:"APP_NAME" default:"Homa"`
		Port   int    `envconfig:"PORT" default:"8080"`
		Locale string `envconfig:"APP_LOCALE" default:"fa"`
		Region string `envconfig:"PHONE_REGION" default:"IR"`
	}

	Storage struct {
		// postgres, redis, file or memory
		Backend string `envconfig:"STORAGE_BACKEND" default:"postgres"`
		Dir     string `envconfig:"STORAGE_DIR" default:"./data"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"homa"`
	}

	Redis struct {
		Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
		Password string `envconfig:"REDIS_PASSWORD" default:""`
		DB       int    `envconfig:"REDIS_DB" default:"0"`
		Prefix   string `envconfig:"REDIS_PREFIX" default:""`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Gemini struct {
		APIKey  string        `envconfig:"GEMINI_API_KEY"`
		Model   string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
		Timeout time.Duration `envconfig:"GEMINI_TIMEOUT" default:"60s"`
	}

	Reminder struct {
		Enabled  bool   `envconfig:"REMINDER_ENABLED" default:"true"`
		Schedule string `envconfig:"REMINDER_SCHEDULE" default:"0 9 * * *"`
	}

	Issuer struct {
		Name    string `envconfig:"ISSUER_NAME" default:"مدیریت ساختمان هما"`
		Address string `envconfig:"ISSUER_ADDRESS" default:"تهران، خیابان ولیعصر، برج هما"`
		Phone   string `envconfig:"ISSUER_PHONE" default:"۰۲۱-۸۸۸۸۸۸۸۸"`
	}

	PDF struct {
		FontFile string `envconfig:"PDF_FONT_FILE"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
