// Package config loads application settings from configs/config.yml and
// BLOG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "BLOG"

type Config struct {
	Port  string
	DB    DBConfig
	Media MediaConfig
	Log   LogConfig
	Auth  AuthConfig
	Flash FlashConfig
	Redis RedisConfig
	CORS  CORSConfig
}

type DBConfig struct {
	Path string
}

type MediaConfig struct {
	Root string
}

type LogConfig struct {
	Level  string
	Format string
}

type AuthConfig struct {
	SigningKey   string
	TokenTTL     time.Duration
	SecureCookie bool
}

type FlashConfig struct {
	Backend string // cookie | redis
	TTL     time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowOrigins []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "blog.db")
	v.SetDefault("media.root", "media")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.secure_cookie", false)
	v.SetDefault("flash.backend", "cookie")
	v.SetDefault("flash.ttl", "1h")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
}

// Load reads config.yml from dir. A missing file is not an error: defaults
// and environment variables still apply.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:  v.GetString("port"),
		DB:    DBConfig{Path: v.GetString("db.path")},
		Media: MediaConfig{Root: v.GetString("media.root")},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Auth: AuthConfig{
			SigningKey:   v.GetString("auth.signing_key"),
			TokenTTL:     v.GetDuration("auth.token_ttl"),
			SecureCookie: v.GetBool("auth.secure_cookie"),
		},
		Flash: FlashConfig{
			Backend: strings.ToLower(v.GetString("flash.backend")),
			TTL:     v.GetDuration("flash.ttl"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		CORS: CORSConfig{AllowOrigins: v.GetStringSlice("cors.allow_origins")},
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Auth.SigningKey == "" {
		return errors.New("auth.signing_key is required")
	}
	switch c.Flash.Backend {
	case "cookie", "redis":
	default:
		return fmt.Errorf("flash.backend must be cookie or redis, got %q", c.Flash.Backend)
	}
	return nil
}
