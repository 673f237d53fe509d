package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Redis  RedisConfig  `mapstructure:"redis"`
	SMTP   SMTPConfig   `mapstructure:"smtp"`
	Auth   AuthConfig   `mapstructure:"auth"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	PoolSize int    `mapstructure:"poolSize"`
}

type SMTPConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	From       string `mapstructure:"from"`
	StoreEmail string `mapstructure:"storeEmail"`
}

type CredentialConfig struct {
	Token      string `mapstructure:"token"`
	Email      string `mapstructure:"email"`
	Privileged bool   `mapstructure:"privileged"`
}

type AuthConfig struct {
	Credentials []CredentialConfig `mapstructure:"credentials"`
}

// LoadConfig reads config.yaml and environment variables. A missing config
// file is fine; defaults and env vars carry it.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("/etc/jersey-backend/")

	v.SetEnvPrefix("JERSEY")
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("db.dsn", "root:root@tcp(localhost:3306)/jerseystore?parseTime=true")
	v.SetDefault("db.maxOpenConns", 50)
	v.SetDefault("db.maxIdleConns", 25)
	v.SetDefault("db.connMaxLifetime", 5*time.Minute)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.poolSize", 100)
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.port", 587)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
