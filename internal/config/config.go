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

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	TTL string `yaml:"ttl"`
}

type QRConfig struct {
	TTL           string `yaml:"ttl"`
	PurgeSchedule string `yaml:"purge_schedule"`
}

type ChallengeConfig struct {
	TTL    string `yaml:"ttl"`
	Length int    `yaml:"length"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Session   SessionConfig   `yaml:"session"`
	QR        QRConfig        `yaml:"qr"`
	Challenge ChallengeConfig `yaml:"challenge"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	Casbin    CasbinConfig    `yaml:"casbin"`
}

type Config struct {
	Port            string
	GinMode         string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	SessionTTL      time.Duration
	QRTokenTTL      time.Duration
	QRPurgeSchedule string
	ChallengeTTL    time.Duration
	ChallengeLength int
	TwilioSID       string
	TwilioToken     string
	TwilioFrom      string
	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	sessionTTL, err := time.ParseDuration(configFile.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	qrTTL, err := time.ParseDuration(configFile.QR.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid QR token TTL: %w", err)
	}

	challengeTTL, err := time.ParseDuration(configFile.Challenge.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid challenge TTL: %w", err)
	}

	return &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		DSN:             env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:       env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:         configFile.Redis.DB,
		SessionTTL:      sessionTTL,
		QRTokenTTL:      qrTTL,
		QRPurgeSchedule: configFile.QR.PurgeSchedule,
		ChallengeTTL:    challengeTTL,
		ChallengeLength: configFile.Challenge.Length,
		TwilioSID:       env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:     env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:      env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
		CasbinModelPath: configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
