package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("POLSKI_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "db.sqlite3", cfg.Database.Path)
	assert.Equal(t, 90, cfg.Quiz.MatchThreshold)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "custom.yaml", `
database:
  path: "words.sqlite3"
quiz:
  match_threshold: 85
log:
  level: debug
  format: json
`)
	t.Setenv("POLSKI_CONFIG", path)
	t.Setenv("POLSKI_MATCH_THRESHOLD", "95")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "words.sqlite3", cfg.Database.Path)
	assert.Equal(t, 95, cfg.Quiz.MatchThreshold)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadDefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("POLSKI_CONFIG", "")
	writeFile(t, dir, "polski.yaml", "database:\n  path: from-yaml.sqlite3\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-yaml.sqlite3", cfg.Database.Path)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("POLSKI_CONFIG", "")
	// t.Setenv registers restoration; unset so .env can provide the value.
	t.Setenv("POLSKI_DATABASE", "")
	require.NoError(t, os.Unsetenv("POLSKI_DATABASE"))
	writeFile(t, dir, ".env", "POLSKI_DATABASE=dotenv.sqlite3\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv.sqlite3", cfg.Database.Path)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("POLSKI_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Database: DatabaseConfig{Path: "db.sqlite3"},
		Quiz:     QuizConfig{MatchThreshold: 90},
		Log:      LogConfig{Level: "info", Format: "TEXT"},
	}
	require.NoError(t, valid.Validate())

	tests := map[string]func(c *Config){
		"empty path":      func(c *Config) { c.Database.Path = " " },
		"zero threshold":  func(c *Config) { c.Quiz.MatchThreshold = 0 },
		"threshold > 100": func(c *Config) { c.Quiz.MatchThreshold = 101 },
		"bad format":      func(c *Config) { c.Log.Format = "xml" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
