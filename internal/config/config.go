package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type APIConfig struct {
	BaseURL     string
	Timeout     time.Duration
	CountryCode int
}

type SessionConfig struct {
	TTL     time.Duration
	Backend string // "file", "memory" or "redis"
	Dir     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type StorageConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	Region     string
	PresignTTL time.Duration
}

type JanitorConfig struct {
	Enabled  bool
	Schedule string
}

type AppConfig struct {
	Environment string
	API         APIConfig
	Session     SessionConfig
	Redis       RedisConfig
	Storage     StorageConfig
	Janitor     JanitorConfig
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("adminpro")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".adminpro"))
	}

	v.SetEnvPrefix("ADMINPRO")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Session.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve session dir: %w", err)
		}
		cfg.Session.Dir = filepath.Join(home, ".adminpro")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("api.baseurl", "http://127.0.0.1:8080")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.countrycode", 91)

	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.backend", "file")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "adminpro")

	v.SetDefault("storage.bucket", "adminpro-documents")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.presignttl", "15m")

	v.SetDefault("janitor.enabled", true)
	v.SetDefault("janitor.schedule", "0 */5 * * * *")
}
