package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	DatabaseURL      string

	ServerPort string
	LogLevel   string

	JWTSecret string
	JWTExpiry time.Duration

	AMQPURL      string
	AMQPExchange string
}

// In all cases the default behavior should be for the docker compose setup
var defaults = map[string]interface{}{
	"postgres_address":  "localhost",
	"postgres_port":     "5433",
	"postgres_db":       "postgres",
	"postgres_username": "postgres",
	"postgres_password": "testpassword",
	"database_url":      "",
	"server_port":       "9446",
	"log_level":         "info",
	"jwt_secret_key":    "",
	"jwt_expiry":        "24h",
	"amqp_url":          "",
	"amqp_exchange":     "finance",
}

// ProcessEnvironmentVariables reads a .env file when one exists and then
// overlays the process environment on top of the defaults.
func ProcessEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	envProvider := env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, known := defaults[key]; !known {
			return ""
		}
		return key
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Config{
		PostgresAddress:  k.String("postgres_address"),
		PostgresPort:     k.String("postgres_port"),
		PostgresDB:       k.String("postgres_db"),
		PostgresUsername: k.String("postgres_username"),
		PostgresPassword: k.String("postgres_password"),
		DatabaseURL:      k.String("database_url"),
		ServerPort:       k.String("server_port"),
		LogLevel:         k.String("log_level"),
		JWTSecret:        k.String("jwt_secret_key"),
		AMQPURL:          k.String("amqp_url"),
		AMQPExchange:     k.String("amqp_exchange"),
	}

	expiry, err := time.ParseDuration(k.String("jwt_expiry"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY %q: %w", k.String("jwt_expiry"), err)
	}
	cfg.JWTExpiry = expiry

	return &cfg, nil
}

// PostgresURL returns DATABASE_URL when set, otherwise a DSN composed from the
// individual POSTGRES_* settings.
func (c *Config) PostgresURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     c.PostgresAddress + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.ServerPort); err != nil {
		problems = append(problems, fmt.Sprintf("invalid SERVER_PORT %q: must be a number", c.ServerPort))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid SERVER_PORT %d: must be between 1 and 65535", port))
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET_KEY is required")
	}

	if c.JWTExpiry <= 0 {
		problems = append(problems, fmt.Sprintf("invalid JWT_EXPIRY %v: must be positive", c.JWTExpiry))
	}

	if c.DatabaseURL == "" && (c.PostgresAddress == "" || c.PostgresDB == "") {
		problems = append(problems, "either DATABASE_URL or POSTGRES_ADDRESS and POSTGRES_DB must be set")
	}

	if c.AMQPURL != "" {
		parsed, err := url.Parse(c.AMQPURL)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP_URL: %v", err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP_URL scheme %q: must be amqp or amqps", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP_EXCHANGE cannot be empty when AMQP_URL is set")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
