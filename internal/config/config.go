package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	TTL string `yaml:"ttl"`
}

type SecurityConfig struct {
	LockThreshold   int    `yaml:"lock_threshold"`
	ResetTTL        string `yaml:"reset_ttl"`
	VerificationTTL string `yaml:"verification_ttl"`
	BcryptCost      int    `yaml:"bcrypt_cost"`
}

type MailgunConfig struct {
	Domain string `yaml:"domain"`
	APIKey string `yaml:"api_key"`
	Sender string `yaml:"sender"`
}

type StreamConfig struct {
	PollInterval string `yaml:"poll_interval"`
}

type RateLimitConfig struct {
	LoginPerSecond float64 `yaml:"login_per_second"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Redis     RedisConfig     `yaml:"redis"`
	Session   SessionConfig   `yaml:"session"`
	Security  SecurityConfig  `yaml:"security"`
	Mailgun   MailgunConfig   `yaml:"mailgun"`
	Stream    StreamConfig    `yaml:"stream"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	BaseURL   string          `yaml:"base_url"`
}

type Config struct {
	Port    string
	GinMode string

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionTTL time.Duration

	LockThreshold   int
	ResetTTL        time.Duration
	VerificationTTL time.Duration
	// BcryptCost of 0 lets the password service pick the library default.
	BcryptCost int

	MailgunDomain string
	MailgunAPIKey string
	MailSender    string

	StreamPollInterval time.Duration
	LoginRatePerSecond float64

	// BaseURL prefixes reset and verification links in outbound mail.
	BaseURL string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for
// deployment secrets.
func Load() (*Config, error) {
	return LoadFile("config/config.yml")
}

func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file ConfigFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	sessionTTL, err := time.ParseDuration(file.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	resetTTL, err := time.ParseDuration(file.Security.ResetTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset token TTL: %w", err)
	}

	verificationTTL, err := time.ParseDuration(file.Security.VerificationTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid verification token TTL: %w", err)
	}

	pollInterval, err := time.ParseDuration(file.Stream.PollInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid stream poll interval: %w", err)
	}

	cfg := &Config{
		Port:               fmt.Sprintf("%d", file.App.Port),
		GinMode:            file.App.GinMode,
		MongoURI:           env("MONGO_URI", file.Mongo.URI),
		MongoDatabase:      file.Mongo.Database,
		RedisAddr:          env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword:      env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:            file.Redis.DB,
		SessionTTL:         sessionTTL,
		LockThreshold:      file.Security.LockThreshold,
		BcryptCost:         file.Security.BcryptCost,
		ResetTTL:           resetTTL,
		VerificationTTL:    verificationTTL,
		MailgunDomain:      env("MAILGUN_DOMAIN", file.Mailgun.Domain),
		MailgunAPIKey:      env("MAILGUN_API_KEY", file.Mailgun.APIKey),
		MailSender:         file.Mailgun.Sender,
		StreamPollInterval: pollInterval,
		LoginRatePerSecond: file.RateLimit.LoginPerSecond,
		BaseURL:            file.BaseURL,
	}

	if file.App.Port <= 0 {
		cfg.Port = "8080"
	}
	if cfg.LockThreshold <= 0 {
		cfg.LockThreshold = 5
	}
	if cfg.LoginRatePerSecond <= 0 {
		cfg.LoginRatePerSecond = 5
	}

	return cfg, nil
}
