package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("POSTGRES_CONN_STR", "host=localhost user=social dbname=social sslmode=disable")
	t.Setenv("JWT_SECRET", "test_secret_value")
	t.Setenv("TOKEN_TTL_HOURS", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, AuthProviderLocal, cfg.AuthProvider)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Missing POSTGRES_CONN_STR",
			envVars: map[string]string{"JWT_SECRET": "secret"},
		},
		{
			name:    "Missing JWT_SECRET",
			envVars: map[string]string{"POSTGRES_CONN_STR": "host=localhost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("POSTGRES_CONN_STR", "")
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			PostgresConnStr: "host=localhost",
			JWTSecret:       "secret",
			AuthProvider:    AuthProviderLocal,
			TokenTTLHours:   48,
		}
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		shouldErr bool
	}{
		{name: "Valid local config", mutate: func(c *Config) {}, shouldErr: false},
		{name: "Short secret in production", mutate: func(c *Config) { c.Env = "production" }, shouldErr: true},
		{name: "Long secret in production", mutate: func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "a_much_longer_production_secret"
		}, shouldErr: false},
		{name: "Firebase without credentials", mutate: func(c *Config) { c.AuthProvider = AuthProviderFirebase }, shouldErr: true},
		{name: "Firebase with credentials", mutate: func(c *Config) {
			c.AuthProvider = AuthProviderFirebase
			c.FirebaseCredentialsPath = "./firebase_credentials.json"
		}, shouldErr: false},
		{name: "Unknown provider", mutate: func(c *Config) { c.AuthProvider = "saml" }, shouldErr: true},
		{name: "Zero token TTL", mutate: func(c *Config) { c.TokenTTLHours = 0 }, shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
