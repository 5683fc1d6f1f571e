package config

import (
	"fmt"
	"strings"

	"github.com/paydesk/backoffice/pkg/mq"
	"github.com/paydesk/backoffice/pkg/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	API      APIConfig    `mapstructure:"api"`
	Database mysql.Config `mapstructure:"database"`
	RabbitMQ mq.Config    `mapstructure:"rabbitmq"`
	Stats    StatsConfig  `mapstructure:"stats"`
	Worker   WorkerConfig `mapstructure:"worker"`
}

type APIConfig struct {
	Port string `mapstructure:"port"`
}

type StatsConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type WorkerConfig struct {
	Prefetch int `mapstructure:"prefetch"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.port", "8080")
	v.SetDefault("stats.timezone", "UTC")
	v.SetDefault("worker.prefetch", 10)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
