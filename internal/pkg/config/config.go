package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET, default=dev-only-secret"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	Simulation SimulationConfig
	Redis      RedisConfig
}

type SimulationConfig struct {
	// RunDelay is the simulated run time before a submitted simulation
	// reaches its terminal state.
	RunDelay time.Duration `env:"SIMULATION_DELAY,   default=2s"`
	Workers  int           `env:"SIMULATION_WORKERS, default=4"`
}

type RedisConfig struct {
	// Addr enables the Redis-backed login throttle when set. The demo runs
	// standalone without it.
	Addr        string        `env:"REDIS_ADDR"`
	DB          int           `env:"REDIS_DB,               default=0"`
	MaxFailures int           `env:"LOGIN_THROTTLE_MAX,     default=5"`
	Cooldown    time.Duration `env:"LOGIN_THROTTLE_WINDOW,  default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
