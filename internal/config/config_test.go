package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "./data/splittab.db", cfg.Database.Path)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	content := "addr: \":9090\"\ndb:\n  path: /tmp/other.db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	// Untouched keys keep defaults.
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("SPLITTAB_ADDR", ":7070")
	t.Setenv("SPLITTAB_AUTH_JWTSECRET", "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}
