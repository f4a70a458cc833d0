package config

import (
	"strings"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Africa/Johannesburg"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	// Арендатор, обслуживаемый этим экземпляром движка
	Tenant struct {
		ID string `env:"TENANT_ID" envDefault:"default"`
	}

	// Внутренний API платформы бронирования, откуда берется снимок конфигурации
	Directory struct {
		URL      string `env:"DIRECTORY_URL"`
		Username string `env:"DIRECTORY_USERNAME"`
		Password string `env:"DIRECTORY_PASSWORD"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"scheduling_engine:scheduling_engine"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMq struct {
		Enabled bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri string `env:"RABBITMQ_URL"`

		QueueConfig struct {
			AppointmentQueueName string `env:"RABBITMQ_APPOINTMENT_QUEUE" envDefault:"scheduling-engine.appointment"`
			TenantQueueName      string `env:"RABBITMQ_TENANT_QUEUE" envDefault:"scheduling-engine.tenant"`
		}
	}

	Cache struct {
		Enabled                  bool `env:"CACHE_ENABLED"`
		SlotGridSize             int  `env:"CACHE_SLOT_GRID_SIZE" envDefault:"1000"`
		TenantSnapshotTTLMinutes int  `env:"CACHE_TENANT_SNAPSHOT_TTL_MINUTES" envDefault:"30"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Разбор списка basic-клиентов вида "user:pass,user2:pass2"
	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
