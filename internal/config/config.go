package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Identity provider backends.
const (
	ProviderCognito  = "cognito"
	ProviderUserInfo = "userinfo"
)

// Config is loaded once at process start and never mutated afterwards.
type Config struct {
	App      AppConfig
	Cognito  CognitoConfig
	DB       DBConfig
	RabbitMQ RabbitMQConfig
}

// AppConfig holds general server settings.
type AppConfig struct {
	Port     string
	Env      string // development, staging, production
	LogLevel string
}

// CognitoConfig describes the identity provider.
type CognitoConfig struct {
	Provider    string
	UserPoolID  string
	Region      string
	ClientID    string
	UserInfoURL string
}

// DBConfig holds the connection URL and pool limits.
type DBConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// RabbitMQConfig configures merchant event publishing. An empty URL disables it.
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// Load reads configuration from the environment and, when present, a .env file in the working directory.
// Environment variables take precedence over the file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		Cognito: CognitoConfig{
			Provider:    strings.ToLower(v.GetString("IDENTITY_PROVIDER")),
			UserPoolID:  v.GetString("COGNITO_USER_POOL_ID"),
			Region:      v.GetString("COGNITO_REGION"),
			ClientID:    v.GetString("COGNITO_CLIENT_ID"),
			UserInfoURL: v.GetString("USERINFO_URL"),
		},
		DB: DBConfig{
			URL:             v.GetString("CONNECTION_URL"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("IDENTITY_PROVIDER", ProviderCognito)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("RABBITMQ_EXCHANGE", "merchant")
}

// Validate checks that the settings required by the selected backends are present.
func (c *Config) Validate() error {
	if c.DB.URL == "" {
		return errors.New("CONNECTION_URL is required")
	}
	switch c.Cognito.Provider {
	case ProviderCognito:
		if c.Cognito.Region == "" {
			return errors.New("COGNITO_REGION is required for the cognito identity provider")
		}
	case ProviderUserInfo:
		if c.Cognito.UserInfoURL == "" {
			return errors.New("USERINFO_URL is required for the userinfo identity provider")
		}
	default:
		return fmt.Errorf("unknown IDENTITY_PROVIDER %q", c.Cognito.Provider)
	}
	return nil
}
