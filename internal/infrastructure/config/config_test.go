package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "catalogsync-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "catalogsync", cfg.Database.DBName)
	assert.Equal(t, time.Hour, cfg.JWT.TokenExpiration)
	assert.Equal(t, "master", cfg.Contentful.Environment)
	assert.Equal(t, "product", cfg.Contentful.ContentType)
	assert.Equal(t, time.Hour, cfg.Sync.Interval)
	assert.False(t, cfg.Sync.ContinueOnError)
	assert.Equal(t, "admin", cfg.Bootstrap.AdminUsername)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CATSYNC_DATABASE_HOST", "db.internal")
	t.Setenv("CATSYNC_CONTENTFUL_SPACE_ID", "space-1")
	t.Setenv("CATSYNC_CONTENTFUL_ACCESS_TOKEN", "token-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "space-1", cfg.Contentful.SpaceID)
	assert.True(t, cfg.Contentful.IsConfigured())
}

func TestContentfulConfig_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ContentfulConfig
		expected bool
	}{
		{"both present", ContentfulConfig{SpaceID: "s", AccessToken: "t"}, true},
		{"missing space", ContentfulConfig{AccessToken: "t"}, false},
		{"missing token", ContentfulConfig{SpaceID: "s"}, false},
		{"both missing", ContentfulConfig{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.IsConfigured())
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "catalogsync",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.NotContains(t, dsn, "p@ss/word") // escaped
}

func TestConfig_Validate(t *testing.T) {
	base := func(t *testing.T) *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		cfg := base(t)
		cfg.Database.MaxIdleConns = 50
		cfg.Database.MaxOpenConns = 10

		assert.Error(t, cfg.validate())
	})

	t.Run("rejects sub-minute sync interval", func(t *testing.T) {
		cfg := base(t)
		cfg.Sync.Interval = time.Second

		assert.Error(t, cfg.validate())
	})

	t.Run("requires jwt secret in production", func(t *testing.T) {
		cfg := base(t)
		cfg.App.Env = "production"

		assert.Error(t, cfg.validate())
	})
}
