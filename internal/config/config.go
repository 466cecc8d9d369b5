package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration values, read from config.yaml and the
// environment.
type Config struct {
	APIBaseURL  string `mapstructure:"API_BASE_URL"`
	SessionFile string `mapstructure:"SESSION_FILE"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Port the one-shot login callback listener binds to.
	CallbackPort int `mapstructure:"CALLBACK_PORT"`

	// Stub API server.
	StubPort       string `mapstructure:"STUB_PORT"`
	StubJWTSecret  string `mapstructure:"STUB_JWT_SECRET"`
	StubRatePerMin int    `mapstructure:"STUB_RATE_PER_MIN"`

	// Google Calendar export.
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	GoogleTokenFile    string `mapstructure:"GOOGLE_TOKEN_FILE"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("SESSION_FILE", "")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CALLBACK_PORT", 8910)
	viper.SetDefault("STUB_PORT", "8080")
	viper.SetDefault("STUB_JWT_SECRET", "dev-secret")
	viper.SetDefault("STUB_RATE_PER_MIN", 120)
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:8910/gcal/callback")
	viper.SetDefault("GOOGLE_TOKEN_FILE", "")

	// Missing config file is fine, environment variables cover everything.
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
