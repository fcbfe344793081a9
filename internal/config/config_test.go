package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "valid config",
			yaml:    `address: "127.0.0.1:8080"`,
			wantErr: "",
		},
		{
			name:    "defaults apply when file is empty",
			yaml:    ``,
			wantErr: "",
		},
		{
			name:    "empty address fails validation",
			yaml:    `address: ""`,
			wantErr: "config validation failed",
		},
		{
			name:    "address without port fails validation",
			yaml:    `address: "localhost"`,
			wantErr: "config validation failed",
		},
		{
			name:    "unknown log level fails validation",
			yaml:    `log_level: LOUD`,
			wantErr: "config validation failed",
		},
		{
			name:    "invalid yaml syntax",
			yaml:    `invalid: [yaml: content`,
			wantErr: "failed to unmarshal config file",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := writeTestConfig(t, test.yaml)
			cfg, err := Load(path)

			if test.wantErr != "" {
				require.ErrorContains(t, err, test.wantErr)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			assert.NotEmpty(t, cfg.DBFilepath)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	require.ErrorContains(t, err, "failed to read config file")
	assert.Nil(t, cfg)
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"ERROR": slog.LevelError,
	}
	for name, want := range tests {
		t.Run("level "+name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			cfg.LogLevel = name
			lvl, err := cfg.SlogLevel()
			require.NoError(t, err)
			assert.Equal(t, want, lvl)
		})
	}
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)
	return path
}
