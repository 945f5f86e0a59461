package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, "db: /tmp/m.db\ntimezone: UTC\nformat: text\n"))
	require.NoError(t, err)
	assert.Equal(t, Config{DB: "/tmp/m.db", Timezone: "UTC", Format: "text"}, cfg)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	_, err := Load(writeConfig(t, "dbpath: /tmp/m.db\n"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, "db: [unterminated\n"))
	assert.Error(t, err)
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	_, err := Load(writeConfig(t, "timezone: Mars/Olympus\n"))
	assert.Error(t, err)
}

func TestLocationDefaultsToLocal(t *testing.T) {
	loc, err := Default().Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestPathHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "meletao", "config.yaml"), Path())
}
