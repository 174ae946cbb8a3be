package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config carries every setting the process needs, loaded once at startup
// and passed to constructors. Leaf code never reads the environment.
type Config struct {
	Port        string
	DatabaseDSN string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	AllowedOrigins []string

	AWSRegion      string
	SNSPlatformARN string
	SESSender      string
	S3Bucket       string
	S3PublicURL    string

	AuthRatePerMin int
	AuthBurst      int
}

func Load() (*Config, error) {
	// .env is optional; real deployments use the process environment.
	_ = godotenv.Load()

	cfg := &Config{
		Port: getenv("PORT", "8080"),
		DatabaseDSN: fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getenv("DB_HOST", "localhost"),
			getenv("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			getenv("DB_NAME", "synapse"),
			getenv("DB_PORT", "5432"),
		),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       24 * time.Hour,
		BcryptCost:     bcrypt.DefaultCost,
		AWSRegion:      getenv("AWS_REGION", "ap-south-1"),
		SNSPlatformARN: os.Getenv("SNS_PLATFORM_ARN"),
		SESSender:      os.Getenv("SES_EMAIL"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3PublicURL:    os.Getenv("S3_PUBLIC_URL"),
		AuthRatePerMin: 20,
		AuthBurst:      5,
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		cfg.TokenTTL = ttl
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("invalid BCRYPT_COST %q", v)
		}
		cfg.BcryptCost = cost
	}

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
