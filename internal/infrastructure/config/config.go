package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/clinicdesk/emr-api/internal/core/domain"
	"github.com/clinicdesk/emr-api/internal/core/ports"
)

const (
	ProviderStatic = "static"
	ProviderMongo  = "mongo"
)

type Config struct {
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	CORSOrigin string `env:"CORS_ORIGIN, default=*"`

	Auth   AuthConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Tables TableConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET, required"`
	SessionTTL time.Duration `env:"SESSION_TTL,        default=8h"`
	Provider   string        `env:"AUTH_PROVIDER,      default=static"`
	Latency    time.Duration `env:"AUTH_LATENCY,       default=500ms"`
	Seed       bool          `env:"AUTH_SEED_ACCOUNTS, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=emr"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// TableConfig names the collection backing each record endpoint.
type TableConfig struct {
	Patients     string `env:"PATIENTS_TABLE,     default=patients"`
	Appointments string `env:"APPOINTMENTS_TABLE, default=appointments"`
	Billing      string `env:"BILLING_TABLE,      default=billing"`
	Users        string `env:"USERS_TABLE,        default=users"`
}

// RecordTables returns the table names keyed by record kind.
func (t TableConfig) RecordTables() ports.RecordTables {
	return ports.RecordTables{
		domain.KindPatients:     t.Patients,
		domain.KindAppointments: t.Appointments,
		domain.KindBilling:      t.Billing,
		domain.KindUsers:        t.Users,
	}
}

// IsDevelopment reports whether the service runs in a local development setup.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l, then validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.Provider {
	case ProviderStatic, ProviderMongo:
	default:
		return fmt.Errorf("AUTH_PROVIDER must be %q or %q, got %q", ProviderStatic, ProviderMongo, c.Auth.Provider)
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.Auth.Latency < 0 {
		return errors.New("AUTH_LATENCY must not be negative")
	}
	return nil
}
