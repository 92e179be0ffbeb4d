// Package config loads runtime settings from the environment with sane
// defaults for local development.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL     string
	RedisAddr       string
	HTTPAddr        string
	JWTSecret       string
	OpenAIAPIKey    string
	OpenAIModel     string
	ForecastTimeout time.Duration

	AlertFrom        string
	AlertTo          string
	SMTPServer       string
	SMTPPort         string
	SMTPUser         string
	SMTPPassword     string
	SMTPAuthDisabled bool
}

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("REDIS_ADDR", "inventory-redis:6379")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("JWT_SECRET", "super-secret-key")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("FORECAST_TIMEOUT", "30s")

	c := Config{
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		HTTPAddr:         v.GetString("HTTP_ADDR"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		OpenAIAPIKey:     v.GetString("OPENAI_API_KEY"),
		OpenAIModel:      v.GetString("OPENAI_MODEL"),
		ForecastTimeout:  v.GetDuration("FORECAST_TIMEOUT"),
		AlertFrom:        v.GetString("ALERT_FROM"),
		AlertTo:          v.GetString("ALERT_TO"),
		SMTPServer:       v.GetString("SMTP_SERVER"),
		SMTPPort:         v.GetString("SMTP_PORT"),
		SMTPUser:         v.GetString("SMTP_USER"),
		SMTPPassword:     v.GetString("SMTP_PASS"),
		SMTPAuthDisabled: v.GetString("SMTP_AUTH_DISABLED") != "",
	}

	if c.DatabaseURL == "" {
		return Config{}, fmt.Errorf("environment variable DATABASE_URL not found")
	}
	return c, nil
}
