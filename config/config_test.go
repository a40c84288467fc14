package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "./dialysis.sqlite", cfg.Storage.DBPath)
	assert.Equal(t, "none", cfg.Journal.Type)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  Default(),
			wantErr: false,
		},
		{
			name:    "memory storage",
			config:  &Config{Storage: StorageConfig{Type: "memory"}},
			wantErr: false,
		},
		{
			name:    "missing storage type",
			config:  &Config{},
			wantErr: true,
			errMsg:  "storage.type must be",
		},
		{
			name:    "sqlite without path",
			config:  &Config{Storage: StorageConfig{Type: "sqlite"}},
			wantErr: true,
			errMsg:  "storage.db_path required",
		},
		{
			name:    "redis without addr",
			config:  &Config{Storage: StorageConfig{Type: "redis"}},
			wantErr: true,
			errMsg:  "storage.redis_addr required",
		},
		{
			name:    "redis negative db",
			config:  &Config{Storage: StorageConfig{Type: "redis", RedisAddr: "localhost:6379", RedisDB: -1}},
			wantErr: true,
			errMsg:  "storage.redis_db must not be negative",
		},
		{
			name: "csv journal without file",
			config: &Config{
				Storage: StorageConfig{Type: "memory"},
				Journal: JournalConfig{Type: "csv"},
			},
			wantErr: true,
			errMsg:  "journal.csv_file required",
		},
		{
			name: "sqlite journal without path",
			config: &Config{
				Storage: StorageConfig{Type: "memory"},
				Journal: JournalConfig{Type: "sqlite"},
			},
			wantErr: true,
			errMsg:  "journal.db_path required",
		},
		{
			name: "postgres journal without dsn",
			config: &Config{
				Storage: StorageConfig{Type: "memory"},
				Journal: JournalConfig{Type: "postgres"},
			},
			wantErr: true,
			errMsg:  "journal.dsn required",
		},
		{
			name: "unknown journal",
			config: &Config{
				Storage: StorageConfig{Type: "memory"},
				Journal: JournalConfig{Type: "xml"},
			},
			wantErr: true,
			errMsg:  "journal.type must be",
		},
		{
			name: "bad log level",
			config: &Config{
				Storage: StorageConfig{Type: "memory"},
				Log:     LogConfig{Level: "loud"},
			},
			wantErr: true,
			errMsg:  "log.level must be",
		},
		{
			name: "bad log format",
			config: &Config{
				Storage: StorageConfig{Type: "memory"},
				Log:     LogConfig{Format: "xml"},
			},
			wantErr: true,
			errMsg:  "log.format must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Journal = JournalConfig{Type: "csv", CSV: "./sessions.csv"}
			path := filepath.Join(tmpDir, "test"+tt.ext)

			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			_, err = os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  type: floppy\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadFillsLogDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nolog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  type: memory\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Log, cfg.Log)

	path = filepath.Join(t.TempDir(), "json.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  type: memory\nlog:\n  format: json\n"), 0644))

	cfg, err = LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}
