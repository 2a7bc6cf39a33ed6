package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPPort string        `env:"HTTP_PORT" envDefault:"8080"`
	Debug    bool          `env:"DEBUG" envDefault:"false"`
	JWT      JWTConfig     `envPrefix:"JWT_"`
	DB       DBConfig      `envPrefix:"DB_"`
	OTLP     string        `env:"OTLP_ENDPOINT"`
	Shutdown time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type JWTConfig struct {
	Secret string        `env:"SECRET,notEmpty"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

type DBConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"kokodi"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME" envDefault:"kokodi"`
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
