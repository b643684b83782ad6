package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	PostgresDriver   string

	HTTPPort             string
	OperatorWorkers      int
	RecurringInterval    time.Duration
	RecurringConcurrency int
	LogLevel             logrus.Level
}

// ProcessEnvironmentVariables reads the configuration from the environment,
// loading envFiles first when they exist. Variables already set in the
// environment are never overridden by a file.
func ProcessEnvironmentVariables(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("godotenv.Load %s: %w", file, err)
		}
	}

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:      "localhost",
		PostgresPort:         "5433",
		PostgresDB:           "postgres",
		PostgresUsername:     "postgres",
		PostgresPassword:     "testpassword",
		PostgresDriver:       DriverPQ,
		HTTPPort:             "9446",
		OperatorWorkers:      4,
		RecurringInterval:    time.Hour,
		RecurringConcurrency: 4,
		LogLevel:             logrus.InfoLevel,
	}

	overrideString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	overrideString(&env.PostgresPort, "POSTGRES_PORT")
	overrideString(&env.PostgresDB, "POSTGRES_DB")
	overrideString(&env.PostgresUsername, "POSTGRES_USERNAME")
	overrideString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	overrideString(&env.PostgresDriver, "POSTGRES_DRIVER")
	overrideString(&env.HTTPPort, "HTTP_PORT")

	if err := overrideInt(&env.OperatorWorkers, "OPERATOR_WORKERS"); err != nil {
		return nil, err
	}
	if err := overrideInt(&env.RecurringConcurrency, "RECURRING_CONCURRENCY"); err != nil {
		return nil, err
	}

	if raw := os.Getenv("RECURRING_INTERVAL"); len(raw) != 0 {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("RECURRING_INTERVAL: %w", err)
		}
		env.RecurringInterval = interval
	}

	if raw := os.Getenv("LOG_LEVEL"); len(raw) != 0 {
		level, err := logrus.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		env.LogLevel = level
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}

	return &env, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.PostgresDriver != DriverPQ && c.PostgresDriver != DriverPGX {
		errs = append(errs, fmt.Errorf("POSTGRES_DRIVER must be %q or %q, got %q", DriverPQ, DriverPGX, c.PostgresDriver))
	}
	if err := validatePort(c.PostgresPort); err != nil {
		errs = append(errs, fmt.Errorf("POSTGRES_PORT: %w", err))
	}
	if err := validatePort(c.HTTPPort); err != nil {
		errs = append(errs, fmt.Errorf("HTTP_PORT: %w", err))
	}
	if c.OperatorWorkers < 1 {
		errs = append(errs, errors.New("OPERATOR_WORKERS must be positive"))
	}
	if c.RecurringConcurrency < 1 {
		errs = append(errs, errors.New("RECURRING_CONCURRENCY must be positive"))
	}
	if c.RecurringInterval < 0 {
		errs = append(errs, errors.New("RECURRING_INTERVAL must not be negative"))
	}

	return errors.Join(errs...)
}

func validatePort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%q is not a number", port)
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("%d is out of range", n)
	}
	return nil
}

func overrideString(field *string, key string) {
	if value := os.Getenv(key); len(value) != 0 {
		*field = value
	}
}

func overrideInt(field *int, key string) error {
	raw := os.Getenv(key)
	if len(raw) == 0 {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*field = n
	return nil
}
