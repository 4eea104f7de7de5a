package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "WAYPOINTS", cfg.Export.Group)
	assert.False(t, cfg.Export.Route)
	assert.Equal(t, "v1", cfg.Export.Schema)
	assert.Equal(t, "\r\n", cfg.Export.LineEndingBytes())
	assert.True(t, cfg.Batch.SkipErrors)
	assert.Positive(t, cfg.Batch.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rayexport.yaml")
	yaml := `
export:
  group: SOUND
  route: true
  schema: v2
  line_ending: lf
batch:
  workers: 3
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("RAYEXPORT_EXPORT_GROUP", "FROM ENV")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "FROM ENV", cfg.Export.Group)
	assert.True(t, cfg.Export.Route)
	assert.Equal(t, "v2", cfg.Export.Schema)
	assert.Equal(t, "\n", cfg.Export.LineEndingBytes())
	assert.Equal(t, 3, cfg.Batch.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad schema", func(c *Config) { c.Export.Schema = "v3" }, "export.schema"},
		{"bad line ending", func(c *Config) { c.Export.LineEnding = "cr" }, "export.line_ending"},
		{"negative workers", func(c *Config) { c.Batch.Workers = -1 }, "batch.workers"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Export: ExportConfig{Schema: "v1", LineEnding: "crlf"},
				Log:    LogConfig{Format: "text"},
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
