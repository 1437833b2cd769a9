package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON   bool   `env:"LOG_JSON" envDefault:"false"`
	LogSource bool   `env:"LOG_SOURCE" envDefault:"false"`

	// JWTSecret enables bearer auth on /api when non-empty.
	JWTSecret          string   `env:"JWT_SECRET"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// MaxContentLength caps the ingest request body, in bytes.
	MaxContentLength int64 `env:"MAX_CONTENT_LENGTH" envDefault:"16777216"`
	// AllowedTypes are the document `type` values accepted on ingest.
	AllowedTypes    []string `env:"ALLOWED_TYPES" envSeparator:"," envDefault:"txt,pdf,json,md,xml,csv,html,doc,docx,odt,rtf"`
	DefaultStrategy string   `env:"DEFAULT_STRATEGY" envDefault:"sentence_chunker"`
	// UseReadability strips boilerplate from HTML before chunking.
	UseReadability bool `env:"USE_READABILITY" envDefault:"false"`

	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`
	AwsRegion    string `env:"AWS_REGION" envDefault:"us-east-2"`
	BucketName   string `env:"BUCKET_NAME"`
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxContentLength <= 0 {
		return fmt.Errorf("MAX_CONTENT_LENGTH must be positive, got %d", c.MaxContentLength)
	}
	if len(c.AllowedTypes) == 0 {
		return fmt.Errorf("ALLOWED_TYPES must not be empty")
	}
	for i, t := range c.AllowedTypes {
		c.AllowedTypes[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return nil
}

// ObjectStorageEnabled reports whether s3:// sources can be fetched.
func (c *Config) ObjectStorageEnabled() bool {
	return c.AwsAccessKey != "" && c.AwsSecretKey != ""
}
