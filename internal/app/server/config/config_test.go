package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URI", "postgres://localhost/mgtboard")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, "dev", cfg.Version)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "migrations", cfg.DB.Migrations)
	assert.Equal(t, ":8080", cfg.Server.RunAddress)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
	assert.Empty(t, cfg.Admin.TokenHash)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("APP_VERSION", "1.4.2")
	t.Setenv("RUN_ADDRESS", "127.0.0.1:9000")
	t.Setenv("DATABASE_DRIVER", DriverSQLite)
	t.Setenv("DATABASE_URI", "file:test.db")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("ADMIN_TOKEN_HASH", "$2a$10$abc")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, "1.4.2", cfg.Version)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.RunAddress)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "file:test.db", cfg.DB.DatabaseURI)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "$2a$10$abc", cfg.Admin.TokenHash)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "DATABASE_URI: file:from-yaml.db\nDATABASE_DRIVER: sqlite\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file:from-yaml.db", cfg.DB.DatabaseURI)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing database uri",
			env:     map[string]string{"DATABASE_URI": ""},
			wantErr: "DATABASE_URI is required",
		},
		{
			name:    "unknown env",
			env:     map[string]string{"DATABASE_URI": "x", "APP_ENV": "staging"},
			wantErr: "unknown APP_ENV",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"DATABASE_URI": "x", "DATABASE_DRIVER": "mysql"},
			wantErr: "unknown DATABASE_DRIVER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
