package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GO_ENV", "test")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/darshanik_b2b_test")
	t.Setenv("GO_ENV", "test")
	t.Setenv("PORT", "")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.IsProduction())

	// Load stores the config globally
	assert.Equal(t, cfg, GetConfig())
}

func TestSetConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	custom := &Config{GoEnv: "production"}
	SetConfig(custom)
	assert.Equal(t, custom, GetConfig())
	assert.True(t, GetConfig().IsProduction())
}
