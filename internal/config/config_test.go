package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envMap builds a getenv func from a map, so tests never touch process env.
func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestResolve_Defaults(t *testing.T) {
	profile, err := Resolve(envMap(map[string]string{
		"DATABASES_DIR": "/data",
	}), "")
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, profile.Env)
	assert.Equal(t, "/data", profile.DatabasesDir)
	assert.Equal(t, filepath.Join("/data", "compta", "SQL", "dev.db"), profile.SQLitePath)
	assert.Equal(t, filepath.Join("/data", "compta", "blob", "dev"), profile.ArchiveRoot)
	assert.Equal(t, ":8000", profile.ListenAddr)
	assert.Equal(t, slog.LevelDebug, profile.LogLevel)
	assert.Equal(t, "text", profile.LogFormat)
}

func TestResolve_EnvironmentVariants(t *testing.T) {
	tests := []struct {
		env         string
		wantSQLite  string
		wantArchive string
		wantLevel   slog.Level
	}{
		{"local", "dev.db", "dev", slog.LevelDebug},
		{"dev", "dev.db", "dev", slog.LevelDebug},
		{"staging", "dev.db", "dev", slog.LevelDebug},
		{"prod", "prod.db", "prod", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			profile, err := Resolve(envMap(map[string]string{
				"APP_ENV":       tt.env,
				"DATABASES_DIR": "/data",
			}), "")
			require.NoError(t, err)

			assert.Equal(t, filepath.Join("/data", "compta", "SQL", tt.wantSQLite), profile.SQLitePath)
			assert.Equal(t, filepath.Join("/data", "compta", "blob", tt.wantArchive), profile.ArchiveRoot)
			assert.Equal(t, tt.wantLevel, profile.LogLevel)
		})
	}
}

func TestResolve_UnknownEnvironment(t *testing.T) {
	_, err := Resolve(envMap(map[string]string{
		"APP_ENV":       "qa",
		"DATABASES_DIR": "/data",
	}), "")

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Error(), "qa")
}

func TestResolve_MissingDatabasesDir(t *testing.T) {
	_, err := Resolve(envMap(nil), "")

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Error(), "DATABASES_DIR")
}

func TestResolve_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compta.yaml")
	content := "app_env: staging\ndatabases_dir: /mnt/databases\nlisten_addr: \":9000\"\nlog_format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	profile, err := Resolve(envMap(nil), path)
	require.NoError(t, err)

	assert.Equal(t, EnvStaging, profile.Env)
	assert.Equal(t, "/mnt/databases", profile.DatabasesDir)
	assert.Equal(t, ":9000", profile.ListenAddr)
	assert.Equal(t, "json", profile.LogFormat)
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compta.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app_env: prod\ndatabases_dir: /from-file\n"), 0o644))

	profile, err := Resolve(envMap(map[string]string{
		"APP_ENV":       "dev",
		"DATABASES_DIR": "/from-env",
	}), path)
	require.NoError(t, err)

	assert.Equal(t, EnvDev, profile.Env)
	assert.Equal(t, "/from-env", profile.DatabasesDir)
}

func TestResolve_ConfigFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compta.yaml")
	require.NoError(t, os.WriteFile(path, []byte("databases_dir: /data\n"), 0o644))

	profile, err := Resolve(envMap(map[string]string{
		"COMPTA_CONFIG": path,
	}), "")
	require.NoError(t, err)
	assert.Equal(t, "/data", profile.DatabasesDir)
}

func TestResolve_BadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compta.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	_, err := Resolve(envMap(nil), path)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}
