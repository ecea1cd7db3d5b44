package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port            int
	MaxPortAttempts int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	StaticDir       string
	IndexFile       string
}

type DatabaseConfig struct {
	Host            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type ShieldConfig struct {
	// Endpoint of the remote decision service; empty selects the embedded
	// evaluator.
	Endpoint      string
	RequestCost   int
	RatePerSecond float64
	Burst         int
	HostingCIDRs  []string
}

type RabbitMQConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
}

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Shield      ShieldConfig
	RabbitMQ    RabbitMQConfig
}

// Load reads configuration from the environment, loading .env first when one
// exists. The database variables are required; everything else has defaults.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	var missing []string
	for _, key := range []string{"PGHOST", "PGDATABASE", "PGUSER", "PGPASSWORD"} {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required database environment variables: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:            getEnvInt("PORT", 3000),
			MaxPortAttempts: getEnvInt("MAX_PORT_ATTEMPTS", 10),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			StaticDir:       getEnv("STATIC_DIR", "frontend/dist"),
			IndexFile:       getEnv("INDEX_FILE", "index.html"),
		},
		Database: DatabaseConfig{
			Host:            os.Getenv("PGHOST"),
			Name:            os.Getenv("PGDATABASE"),
			User:            os.Getenv("PGUSER"),
			Password:        os.Getenv("PGPASSWORD"),
			SSLMode:         getEnv("PGSSLMODE", "require"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Shield: ShieldConfig{
			Endpoint:      getEnv("SHIELD_ENDPOINT", ""),
			RequestCost:   getEnvInt("SHIELD_REQUEST_COST", 1),
			RatePerSecond: getEnvFloat("SHIELD_RATE_PER_SECOND", 5),
			Burst:         getEnvInt("SHIELD_BURST", 10),
			HostingCIDRs:  getEnvList("SHIELD_HOSTING_CIDRS"),
		},
		RabbitMQ: RabbitMQConfig{
			Enabled:  getEnvBool("RABBITMQ_ENABLED", false),
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnvInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
		},
	}

	return cfg, nil
}

// GetDSN builds the Postgres connection URL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Name, c.Database.SSLMode)
}

// IsProduction reports whether static asset serving and the SPA fallback
// should be enabled.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
