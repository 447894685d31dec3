package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "STOREFRONT_"

// MinJWTSecretLen is the shortest signing secret accepted outside local development
const MinJWTSecretLen = 32

// Secrets shipped in Default and the example config. They are public and
// only acceptable for the in-memory driver without an operator.
var placeholderSecrets = []string{
	"dev-secret-change-me",
	"change-me-to-a-long-random-string",
}

// Storage drivers for the cart and order slots
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverDynamoDB = "dynamodb"
)

type Config struct {
	App struct {
		HTTPAddr string `koanf:"http_addr"`
		WebDir   string `koanf:"web_dir"`
		LogFile  string `koanf:"log_file"`
		// CartSessions bounds how many session carts stay resident
		CartSessions int `koanf:"cart_sessions"`
	} `koanf:"app"`

	Storage struct {
		Driver string `koanf:"driver"`
	} `koanf:"storage"`

	Postgres struct {
		DSN string `koanf:"dsn"`
	} `koanf:"postgres"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
		Prefix   string `koanf:"prefix"`
	} `koanf:"redis"`

	DynamoDB struct {
		Table    string `koanf:"table"`
		Region   string `koanf:"region"`
		Endpoint string `koanf:"endpoint"`
	} `koanf:"dynamodb"`

	Kafka struct {
		Brokers []string `koanf:"brokers"`
		Topic   string   `koanf:"topic"`
		GroupID string   `koanf:"group_id"`
	} `koanf:"kafka"`

	SMTP struct {
		Host string `koanf:"host"`
		Port string `koanf:"port"`
		From string `koanf:"from"`
	} `koanf:"smtp"`

	Auth struct {
		JWTSecret            string        `koanf:"jwt_secret"`
		TokenTTL             time.Duration `koanf:"token_ttl"`
		OperatorEmail        string        `koanf:"operator_email"`
		OperatorPasswordHash string        `koanf:"operator_password_hash"`
	} `koanf:"auth"`
}

// Default returns the settings used for anything the file and environment leave unset
func Default() Config {
	var c Config
	c.App.HTTPAddr = ":8080"
	c.App.LogFile = "./logs/storefront.log"
	c.App.CartSessions = 10000
	c.Storage.Driver = DriverMemory
	c.Redis.Addr = "localhost:6379"
	c.Redis.Prefix = "storefront:"
	c.DynamoDB.Table = "storefront-slots"
	c.DynamoDB.Region = "us-east-1"
	c.Kafka.Topic = "storefront-events"
	c.Kafka.GroupID = "storefront-notifier"
	c.SMTP.Host = "localhost"
	c.SMTP.Port = "1025"
	c.SMTP.From = "noreply@storefront.local"
	c.Auth.JWTSecret = placeholderSecrets[0]
	c.Auth.TokenTTL = 8 * time.Hour
	c.Auth.OperatorEmail = "admin@storefront.local"
	return c
}

// Load layers an optional YAML file and then STOREFRONT_ environment
// variables over Default. Nested keys use "__", e.g. STOREFRONT_STORAGE__DRIVER.
// A comma-separated STOREFRONT_KAFKA__BROKERS becomes a list.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn required for storage driver %q", c.Storage.Driver)
		}
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr required for storage driver %q", c.Storage.Driver)
		}
	case DriverDynamoDB:
		if c.DynamoDB.Table == "" {
			return fmt.Errorf("dynamodb.table required for storage driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret required")
	}
	if c.Storage.Driver != DriverMemory || c.Auth.OperatorPasswordHash != "" {
		if slices.Contains(placeholderSecrets, c.Auth.JWTSecret) {
			return fmt.Errorf("auth.jwt_secret is a placeholder; set a random secret")
		}
		if len(c.Auth.JWTSecret) < MinJWTSecretLen {
			return fmt.Errorf("auth.jwt_secret must be at least %d bytes", MinJWTSecretLen)
		}
	}
	if c.App.CartSessions <= 0 {
		return fmt.Errorf("app.cart_sessions must be positive")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	return nil
}

// EventsEnabled reports whether order events should be published to Kafka
func (c Config) EventsEnabled() bool {
	return len(c.Kafka.Brokers) > 0 && c.Kafka.Topic != ""
}
