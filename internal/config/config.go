package config

import (
	"github.com/maxviazov/hockey-match-engine/internal/logger"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Redis    RedisConfig         `mapstructure:"redis"`
	Engine   EngineConfig        `mapstructure:"engine"`
}

type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port    int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	// seconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// PostgresConfig durations are in seconds; the pool converts them.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"gte=0"`
	MinConns          int32  `mapstructure:"min_conns" validate:"gte=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime" validate:"gte=0"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time" validate:"gte=0"`
	HealthCheckPeriod int    `mapstructure:"health_check_period" validate:"gte=0"`
	MigrationsDir     string `mapstructure:"migrations_dir"`
	AutoMigrate       bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Addr         string `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db" validate:"gte=0"`
	StreamPrefix string `mapstructure:"stream_prefix" validate:"required_if=Enabled true"`
	MaxLen       int64  `mapstructure:"max_len" validate:"gte=0"`
}

type EngineConfig struct {
	// upper bound for one simulate call; overtime is sudden death so a
	// game can in theory run forever
	SimulateMaxTurns int `mapstructure:"simulate_max_turns" validate:"gt=0"`
}
