// Package config declares the environment-driven configuration of every
// midas binary. Each struct is loaded exactly once in main and passed to
// constructors; request-handling code never reads the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// MongoConfig is shared by every service with a document store.
type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=midas"`
}

// RedisConfig is shared by services using Redis.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// BackendConfig lists the base URLs of the internal services the gateway
// forwards to.
type BackendConfig struct {
	Identity  string `env:"AUTH_SERVICE_URL,      default=http://localhost:3001"`
	Registry  string `env:"REGISTRY_SERVICE_URL,  default=http://localhost:3002"`
	Finance   string `env:"FINANCE_SERVICE_URL,   default=http://localhost:3003"`
	Billing   string `env:"BILLING_SERVICE_URL,   default=http://localhost:3004"`
	Messaging string `env:"MESSAGING_SERVICE_URL, default=http://localhost:3005"`
	Reporting string `env:"REPORTING_SERVICE_URL, default=http://localhost:3006"`
}

// GatewayConfig configures cmd/gateway.
type GatewayConfig struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTPublicKey string `env:"JWT_PUBLIC_KEY"`
	JWTKeyID     string `env:"JWT_KID, default=midas-default"`
	// AllowAnonymous must be set explicitly to run the gateway without key
	// material. Without it, a missing JWT_PUBLIC_KEY refuses to serve.
	AllowAnonymous bool `env:"GATEWAY_ALLOW_ANONYMOUS, default=false"`

	Backends BackendConfig
}

// IdentityConfig configures cmd/identity.
type IdentityConfig struct {
	Port     string `env:"PORT,      default=3001"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTPrivateKey string        `env:"JWT_PRIVATE_KEY"`
	JWTPublicKey  string        `env:"JWT_PUBLIC_KEY"`
	JWTKeyID      string        `env:"JWT_KID,        default=midas-default"`
	JWTExpiresIn  time.Duration `env:"JWT_EXPIRES_IN, default=1h"`

	Mongo MongoConfig
}

// RegistryConfig configures cmd/registry.
type RegistryConfig struct {
	Port     string `env:"PORT,      default=3002"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
}

// FinanceConfig configures cmd/finance.
type FinanceConfig struct {
	Port     string `env:"PORT,      default=3003"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
}

// MessagingConfig configures cmd/messaging.
type MessagingConfig struct {
	Port     string `env:"PORT,      default=3005"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Workers int `env:"MESSAGING_WORKERS, default=4"`

	Redis RedisConfig
}

func LoadGateway(ctx context.Context) (*GatewayConfig, error) {
	var cfg GatewayConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: load gateway: %w", err)
	}
	return &cfg, nil
}

func LoadIdentity(ctx context.Context) (*IdentityConfig, error) {
	var cfg IdentityConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: load identity: %w", err)
	}
	return &cfg, nil
}

func LoadRegistry(ctx context.Context) (*RegistryConfig, error) {
	var cfg RegistryConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: load registry: %w", err)
	}
	return &cfg, nil
}

func LoadFinance(ctx context.Context) (*FinanceConfig, error) {
	var cfg FinanceConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: load finance: %w", err)
	}
	return &cfg, nil
}

func LoadMessaging(ctx context.Context) (*MessagingConfig, error) {
	var cfg MessagingConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: load messaging: %w", err)
	}
	return &cfg, nil
}
