package boot

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env     string `env:"ENV,default=dev"`
	DataDir string `env:"DATA_DIR,default=./data"`
	Server  struct {
		Port        string   `env:"PORT,default=8080"`
		MetricsPort string   `env:"METRICS_PORT,default=8081"`
		Origins     []string `env:"ALLOWED_ORIGINS,default=*"`
	}
	Auth struct {
		Secret   string        `env:"JWT_SECRET,required"`
		TokenTTL time.Duration `env:"TOKEN_TTL,default=24h"`
	}
}

func Load() (*Config, error) {
	config := &Config{}
	if err := envconfig.Process(context.Background(), config); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}
	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "dev"
}
