package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := load(home, filepath.Join(home, "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultSelfName, cfg.SelfName)
	assert.Equal(t, DefaultOtherName, cfg.OtherName)
	assert.Equal(t, DefaultFile, cfg.DefaultFile)
	assert.Equal(t, filepath.Join(home, ".config", "wat", "prefs.db"), cfg.PrefsPath)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}

func TestLoad_FileThenEnv(t *testing.T) {
	home := t.TempDir()
	cfgPath := filepath.Join(home, "config.toml")
	content := `
self_name = "Alice"
other_name = "Bob"
default_file = "~/exports/chat.txt"
log_level = "debug"
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	t.Setenv("WAT_OTHER_NAME", "Carol")

	cfg, err := load(home, cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "Alice", cfg.SelfName)
	assert.Equal(t, "Carol", cfg.OtherName)
	assert.Equal(t, filepath.Join(home, "exports", "chat.txt"), cfg.DefaultFile)
	assert.Equal(t, cfgPath, cfg.Path)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_BlankNamesFallBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv("WAT_SELF_NAME", "   ")

	cfg, err := load(home, filepath.Join(home, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSelfName, cfg.SelfName)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	home := t.TempDir()
	t.Setenv("WAT_LOG_LEVEL", "loud")

	_, err := load(home, filepath.Join(home, "missing.toml"))
	require.Error(t, err)
}

func TestLoad_BadTOML(t *testing.T) {
	home := t.TempDir()
	cfgPath := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("self_name = "), 0o644))

	_, err := load(home, cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
