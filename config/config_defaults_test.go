package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_FillsMissingValues(t *testing.T) {
	cfg := &Config{
		Media:   &MediaConfig{BucketURL: "mem://"},
		Metrics: &MetricsConfig{Enabled: true},
	}

	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, 15*time.Minute, cfg.Token.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Token.RefreshTTL)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, "accessToken", cfg.Auth.Cookie.AccessTokenName)
	assert.Equal(t, "refreshToken", cfg.Auth.Cookie.RefreshTokenName)
	assert.Equal(t, "/", cfg.Auth.Cookie.Path)
	assert.Equal(t, 30*time.Second, cfg.Media.UploadTimeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Nil(t, cfg.PasswordStrength)
}

func TestApplyDefaults_KeepsConfiguredValues(t *testing.T) {
	cfg := &Config{
		Token: TokenConfig{AccessTTL: time.Minute, RefreshTTL: time.Hour},
		Auth: &AuthConfig{
			BcryptCost: 12,
			Cookie:     CookieConfig{AccessTokenName: "at", RefreshTokenName: "rt", Path: "/api"},
		},
	}
	cfg.HTTP.MaxRequestBodySize = "1MB"

	applyDefaults(cfg)

	assert.Equal(t, "1MB", cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, time.Minute, cfg.Token.AccessTTL)
	assert.Equal(t, time.Hour, cfg.Token.RefreshTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "at", cfg.Auth.Cookie.AccessTokenName)
	assert.Equal(t, "rt", cfg.Auth.Cookie.RefreshTokenName)
	assert.Equal(t, "/api", cfg.Auth.Cookie.Path)
	assert.Nil(t, cfg.Media)
}
