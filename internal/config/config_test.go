package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `store:
  backend: postgres
  sqlite_path: /tmp/inv.db
  connection:
    host: myhost
    port: 5433
    username: myuser
    database: inventory
    sslmode: require
    auth_method: aws
    aws_region: eu-west-1
    connect_retries: 4

paths:
  data_dir: raw
  output_csv: out/summary.csv
  log_dir: /var/log/vendorsum

summary_table: vendor_sales_summary_v2
timeout: 10m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres", cfg.Store.Backend)
	assert.Equal(t, "/tmp/inv.db", cfg.Store.SQLitePath)
	assert.Equal(t, "myhost", cfg.Store.Connection.Host)
	assert.Equal(t, 5433, cfg.Store.Connection.Port)
	assert.Equal(t, "myuser", cfg.Store.Connection.Username)
	assert.Equal(t, "inventory", cfg.Store.Connection.Database)
	assert.Equal(t, "require", cfg.Store.Connection.SSLMode)
	assert.Equal(t, "aws", cfg.Store.Connection.AuthMethod)
	assert.Equal(t, "eu-west-1", cfg.Store.Connection.AWSRegion)
	assert.Equal(t, 4, cfg.Store.Connection.ConnectRetries)
	assert.Equal(t, "raw", cfg.Paths.DataDir)
	assert.Equal(t, "out/summary.csv", cfg.Paths.OutputCSV)
	assert.Equal(t, "/var/log/vendorsum", cfg.Paths.LogDir)
	assert.Equal(t, "vendor_sales_summary_v2", cfg.SummaryTable)

	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, d)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("store:\n  backend: sqlite\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "", cfg.Store.Connection.Host)
	assert.Equal(t, 0, cfg.Store.Connection.Port)
	assert.Equal(t, "", cfg.Paths.DataDir)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("summary_table: custom\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.SummaryTable)
}

func TestTimeoutDuration(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *ProjectConfig
		want    time.Duration
		wantErr bool
	}{
		{"nil config", nil, 0, false},
		{"empty", &ProjectConfig{}, 0, false},
		{"valid", &ProjectConfig{Timeout: "90s"}, 90 * time.Second, false},
		{"garbage", &ProjectConfig{Timeout: "soon"}, 0, true},
		{"negative", &ProjectConfig{Timeout: "-1m"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.TimeoutDuration()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
