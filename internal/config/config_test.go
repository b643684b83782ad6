package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"POSTGRES_ADDRESS", "POSTGRES_PORT", "POSTGRES_DB", "POSTGRES_USERNAME", "POSTGRES_PASSWORD",
	"POSTGRES_DRIVER", "HTTP_PORT", "OPERATOR_WORKERS", "RECURRING_INTERVAL",
	"RECURRING_CONCURRENCY", "LOG_LEVEL",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestProcessEnvironmentVariables_Defaults(t *testing.T) {
	clearEnv(t)

	env, err := ProcessEnvironmentVariables(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "localhost", env.PostgresAddress)
	assert.Equal(t, "5433", env.PostgresPort)
	assert.Equal(t, DriverPQ, env.PostgresDriver)
	assert.Equal(t, "9446", env.HTTPPort)
	assert.Equal(t, 4, env.OperatorWorkers)
	assert.Equal(t, time.Hour, env.RecurringInterval)
	assert.Equal(t, logrus.InfoLevel, env.LogLevel)
}

func TestProcessEnvironmentVariables_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_ADDRESS", "db")
	t.Setenv("POSTGRES_DRIVER", "pgx")
	t.Setenv("OPERATOR_WORKERS", "8")
	t.Setenv("RECURRING_INTERVAL", "0")
	t.Setenv("LOG_LEVEL", "debug")

	env, err := ProcessEnvironmentVariables(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "db", env.PostgresAddress)
	assert.Equal(t, DriverPGX, env.PostgresDriver)
	assert.Equal(t, 8, env.OperatorWorkers)
	assert.Equal(t, time.Duration(0), env.RecurringInterval)
	assert.Equal(t, logrus.DebugLevel, env.LogLevel)
}

func TestProcessEnvironmentVariables_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("POSTGRES_DB=fromfile\nHTTP_PORT=8080\n"), 0o600))
	t.Setenv("HTTP_PORT", "9000")

	env, err := ProcessEnvironmentVariables(file)
	require.NoError(t, err)

	assert.Equal(t, "fromfile", env.PostgresDB)
	assert.Equal(t, "9000", env.HTTPPort)
}

func TestProcessEnvironmentVariables_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric workers", "OPERATOR_WORKERS", "many"},
		{"bad interval", "RECURRING_INTERVAL", "hourly"},
		{"bad level", "LOG_LEVEL", "loud"},
		{"unknown driver", "POSTGRES_DRIVER", "mysql"},
		{"port out of range", "HTTP_PORT", "70000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			env, err := ProcessEnvironmentVariables(missingFile(t))
			assert.Error(t, err)
			assert.Nil(t, env)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	c := Config{
		PostgresDriver:       "sqlite",
		PostgresPort:         "x",
		HTTPPort:             "0",
		OperatorWorkers:      0,
		RecurringConcurrency: 0,
		RecurringInterval:    -time.Second,
	}

	err := c.Validate()
	require.Error(t, err)
	for _, fragment := range []string{"POSTGRES_DRIVER", "POSTGRES_PORT", "HTTP_PORT", "OPERATOR_WORKERS", "RECURRING_CONCURRENCY", "RECURRING_INTERVAL"} {
		assert.Contains(t, err.Error(), fragment)
	}
}
