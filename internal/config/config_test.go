package config_test

import (
	"testing"
	"time"

	"merchantgate/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONNECTION_URL", "postgres://localhost/merchants")
	t.Setenv("COGNITO_REGION", "eu-central-1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.ProviderCognito, cfg.Cognito.Provider)
	assert.Equal(t, "eu-central-1", cfg.Cognito.Region)
	assert.Equal(t, 10, cfg.DB.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Empty(t, cfg.RabbitMQ.URL)
	assert.Equal(t, "merchant", cfg.RabbitMQ.Exchange)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONNECTION_URL", "sqlite:merchants.db")
	t.Setenv("IDENTITY_PROVIDER", "UserInfo")
	t.Setenv("USERINFO_URL", "https://auth.example.com/oauth2/userInfo")
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.App.Port)
	assert.Equal(t, config.ProviderUserInfo, cfg.Cognito.Provider)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("CONNECTION_URL", "")
	_, err := config.Load()
	assert.ErrorContains(t, err, "CONNECTION_URL")

	t.Setenv("CONNECTION_URL", "postgres://localhost/merchants")
	t.Setenv("COGNITO_REGION", "")
	_, err = config.Load()
	assert.ErrorContains(t, err, "COGNITO_REGION")

	t.Setenv("IDENTITY_PROVIDER", "ldap")
	_, err = config.Load()
	assert.ErrorContains(t, err, "unknown IDENTITY_PROVIDER")
}
