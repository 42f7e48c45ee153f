package config

import (
	"errors"
	"flag"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/webshop/billing/internal/constants"
)

type Config struct {
	RunAddr         string `env:"RUN_ADDRESS"`
	DatabaseURI     string `env:"DATABASE_URI"`
	RedisAddr       string `env:"REDIS_ADDRESS"`
	JWTSecret       string `env:"JWT_SECRET"`
	PrivateKey      string `env:"PRIVATE_KEY"`
	BaseURL         string `env:"BASE_URL"`
	LegacySignature bool   `env:"LEGACY_SIGNATURE"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{
		RunAddr:    ":8080",
		RedisAddr:  "127.0.0.1:6379",
		JWTSecret:  constants.DefaultJWTSecret,
		PrivateKey: constants.DefaultPrivateKey,
		BaseURL:    "http://127.0.0.1:8080",
	}

	flag.StringVar(&cfg.RunAddr, "a", cfg.RunAddr, "server address")
	flag.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "database URI")
	flag.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	flag.StringVar(&cfg.JWTSecret, "j", cfg.JWTSecret, "JWT secret")
	flag.StringVar(&cfg.PrivateKey, "k", cfg.PrivateKey, "webhook private key")
	flag.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "base URL for activation links")
	flag.BoolVar(&cfg.LegacySignature, "legacy-signature", cfg.LegacySignature, "verify webhook signatures with the legacy SHA1 scheme")
	flag.Parse()

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.DatabaseURI == "" {
		log.Printf("Error: DATABASE_URI is empty")
		return nil, errors.New("DATABASE_URI is required")
	}

	log.Printf("Config loaded: RunAddr=%s, RedisAddr=%s, BaseURL=%s, LegacySignature=%v",
		cfg.RunAddr, cfg.RedisAddr, cfg.BaseURL, cfg.LegacySignature)
	return cfg, nil
}
