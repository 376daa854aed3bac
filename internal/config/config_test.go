package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDB = `
database:
  host: localhost
  name: testdb
  user: testuser
`

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: minimalDB,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "testdb", cfg.Database.Name)
				assert.Equal(t, "testuser", cfg.Database.User)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: minimalDB,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Empty(t, cfg.Server.AdminTokenSecret)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.Database.PoolSize)
				assert.Equal(t, 5*time.Minute, cfg.Monitoring.CheckInterval)
				assert.Equal(t, 24*time.Hour, cfg.Monitoring.CleanupInterval)
				assert.Equal(t, 30, cfg.Monitoring.RetentionDays)
				assert.True(t, cfg.Monitoring.StartEnabled())
				assert.Equal(t, int64(10_000_000_000), cfg.Monitoring.DefaultStorageLimit)
				assert.Equal(t, 1000, cfg.Monitoring.DefaultFileLimit)
				assert.Equal(t, 500*time.Millisecond, cfg.Monitoring.CPUSampleWindow)
				assert.False(t, cfg.Storage.Remote)
				assert.Equal(t, "/", cfg.Storage.LocalPath)
				assert.False(t, cfg.Notifications.Discord.Enabled)
				assert.Equal(t, "Healthwatch", cfg.Notifications.Discord.Username)
				assert.Equal(t, "development", cfg.Notifications.Discord.Environment)
				assert.Equal(t, 10*time.Second, cfg.Notifications.Discord.Timeout)
				assert.Equal(t, 30, cfg.Notifications.Discord.RatePerMinute)
				assert.False(t, cfg.Bus.NATS.Enabled)
				assert.Equal(t, "healthwatch.events", cfg.Bus.NATS.SubjectPrefix)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: minimalDB + `  password: "${TEST_DB_PASSWORD}"
notifications:
  discord:
    enabled: true
    webhook_url: "${TEST_DISCORD_WEBHOOK}"
`,
			envVars: map[string]string{
				"TEST_DB_PASSWORD":     "secret123",
				"TEST_DISCORD_WEBHOOK": "https://discord.com/api/webhooks/1/abc",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Database.Password)
				assert.Equal(t, "https://discord.com/api/webhooks/1/abc", cfg.Notifications.Discord.WebhookURL)
			},
		},
		{
			name: "discord enabled without webhook is allowed",
			yaml: minimalDB + `
notifications:
  discord:
    enabled: true
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.True(t, cfg.Notifications.Discord.Enabled)
				assert.Empty(t, cfg.Notifications.Discord.WebhookURL)
			},
		},
		{
			name: "run_on_start can be disabled",
			yaml: minimalDB + `
monitoring:
  run_on_start: false
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.False(t, cfg.Monitoring.StartEnabled())
			},
		},
		{
			name: "missing required database.host",
			yaml: `
database:
  name: testdb
  user: testuser
`,
			wantErr: "database.host is required",
		},
		{
			name: "missing required database.name",
			yaml: `
database:
  host: localhost
  user: testuser
`,
			wantErr: "database.name is required",
		},
		{
			name: "missing required database.user",
			yaml: `
database:
  host: localhost
  name: testdb
`,
			wantErr: "database.user is required",
		},
		{
			name: "check interval below one second",
			yaml: minimalDB + `
monitoring:
  check_interval: 10ms
`,
			wantErr: "monitoring.check_interval must be at least 1s",
		},
		{
			name: "negative retention",
			yaml: minimalDB + `
monitoring:
  retention_days: -1
`,
			wantErr: "monitoring.retention_days must be positive (got -1)",
		},
		{
			name: "malformed discord webhook",
			yaml: minimalDB + `
notifications:
  discord:
    enabled: true
    webhook_url: "not a url"
`,
			wantErr: "notifications.discord.webhook_url is not a valid URL",
		},
		{
			name: "nats enabled without url",
			yaml: minimalDB + `
bus:
  nats:
    enabled: true
`,
			wantErr: "bus.nats.url is required when bus.nats.enabled is true",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
  write_timeout: 60s
  admin_token_secret: s3cret
database:
  host: db.example.com
  port: 5433
  name: healthwatch_prod
  user: admin
  password: pass
  sslmode: require
  pool_size: 20
monitoring:
  check_interval: 1m
  cleanup_interval: 12h
  retention_days: 7
  default_storage_limit: 5000
  default_file_limit: 50
  cpu_sample_window: 1s
storage:
  remote: true
notifications:
  discord:
    enabled: true
    webhook_url: https://discord.com/api/webhooks/123
    username: Ops
    environment: production
    rate_per_minute: 10
bus:
  nats:
    enabled: true
    url: nats://nats:4222
    subject_prefix: hw
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "s3cret", cfg.Server.AdminTokenSecret)
				assert.Equal(t, "db.example.com", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, 20, cfg.Database.PoolSize)
				assert.Equal(t, time.Minute, cfg.Monitoring.CheckInterval)
				assert.Equal(t, 12*time.Hour, cfg.Monitoring.CleanupInterval)
				assert.Equal(t, 7, cfg.Monitoring.RetentionDays)
				assert.Equal(t, int64(5000), cfg.Monitoring.DefaultStorageLimit)
				assert.Equal(t, 50, cfg.Monitoring.DefaultFileLimit)
				assert.Equal(t, time.Second, cfg.Monitoring.CPUSampleWindow)
				assert.True(t, cfg.Storage.Remote)
				assert.True(t, cfg.Notifications.Discord.Enabled)
				assert.Equal(t, "https://discord.com/api/webhooks/123", cfg.Notifications.Discord.WebhookURL)
				assert.Equal(t, "Ops", cfg.Notifications.Discord.Username)
				assert.Equal(t, "production", cfg.Notifications.Discord.Environment)
				assert.Equal(t, 10, cfg.Notifications.Discord.RatePerMinute)
				assert.True(t, cfg.Bus.NATS.Enabled)
				assert.Equal(t, "nats://nats:4222", cfg.Bus.NATS.URL)
				assert.Equal(t, "hw", cfg.Bus.NATS.SubjectPrefix)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestParse_JoinsAllErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("bus:\n  nats:\n    enabled: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host is required")
	assert.Contains(t, err.Error(), "database.name is required")
	assert.Contains(t, err.Error(), "database.user is required")
	assert.Contains(t, err.Error(), "bus.nats.url is required")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "basic DSN",
			cfg: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				Name:     "testdb",
				User:     "testuser",
				Password: "testpass",
				SSLMode:  "disable",
				PoolSize: 10,
			},
			want: "host=localhost port=5432 dbname=testdb user=testuser password=testpass sslmode=disable pool_max_conns=10",
		},
		{
			name: "production DSN",
			cfg: DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				Name:     "healthwatch",
				User:     "admin",
				Password: "s3cret",
				SSLMode:  "require",
				PoolSize: 25,
			},
			want: "host=db.example.com port=5433 dbname=healthwatch user=admin password=s3cret sslmode=require pool_max_conns=25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
