package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type EnvConfig struct {
	Postgres struct {
		HOST     string
		Database string
		Username string
		Password string
		Port     string
		SSLMode  string
	}
	JWT struct {
		SecretKey     string
		AccessExpire  time.Duration
		RefreshExpire time.Duration
	}
	CORS struct {
		AllowDomains string
		GlobalDomain string
	}
	Redis struct {
		Password  string
		Database  int
		RedisHost string
		RedisPort string
		CacheTTL  time.Duration
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Storage struct {
		Driver        string // "s3" or "minio"
		Region        string
		ImageBucket   string
		VideoBucket   string
		AccessKey     string
		SecretKey     string
		Endpoint      string // S3-compatible endpoint, required for minio
		UseSSL        bool
		PublicBaseURL string
	}
	Mail struct {
		Delivery       string // "direct" or "queue"
		Relay          string // "smtp" or "sendgrid"
		SMTPHost       string
		SMTPPort       string
		SMTPUsername   string
		SMTPPassword   string
		SendGridAPIKey string
		FromAddress    string
		Recipient      string
	}
	Admin struct {
		BootstrapName     string
		BootstrapEmail    string
		BootstrapPassword string
	}
	Grafana struct {
		OTLPEndpoint string
		ServiceName  string
	}
	Environment struct {
		Mode  string
		Group string
	}
	Port string
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	// Postgres
	config.Postgres.HOST = os.Getenv("PGPOOL_HOST")
	config.Postgres.Database = os.Getenv("PGPOOL_DB")
	config.Postgres.Username = os.Getenv("PGPOOL_USER")
	config.Postgres.Password = os.Getenv("PGPOOL_PASSWORD")
	config.Postgres.Port = getEnv("PGPOOL_PORT", "5432")
	config.Postgres.SSLMode = getEnv("PGPOOL_SSLMODE", "disable")

	// JWT
	config.JWT.SecretKey = os.Getenv("JWT_SECRET_KEY")
	config.JWT.AccessExpire = getEnvAsDuration("JWT_ACCESS_EXPIRE", 15*time.Minute)
	config.JWT.RefreshExpire = getEnvAsDuration("JWT_REFRESH_EXPIRE", 7*24*time.Hour)

	config.CORS.AllowDomains = os.Getenv("ALLOWED_DOMAINS")
	config.CORS.GlobalDomain = os.Getenv("GLOBAL_DOMAIN")

	// Redis is optional; an empty host disables the list cache
	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))
	config.Redis.RedisHost = os.Getenv("REDIS_HOST")
	config.Redis.RedisPort = getEnv("REDIS_PORT", "6379")
	config.Redis.CacheTTL = getEnvAsDuration("CACHE_TTL", 5*time.Minute)

	// RabbitMQ
	config.RabbitMQ.Host = getEnv("RABBITMQ_HOST", "localhost")
	config.RabbitMQ.Port = getEnv("RABBITMQ_PORT", "5672")
	config.RabbitMQ.Username = getEnv("RABBITMQ_USER", "guest")
	config.RabbitMQ.Password = getEnv("RABBITMQ_PASSWORD", "guest")

	// Object storage
	config.Storage.Driver = strings.ToLower(getEnv("STORAGE_DRIVER", "s3"))
	config.Storage.Region = getEnv("AWS_REGION", "us-east-1")
	config.Storage.ImageBucket = os.Getenv("AWS_BUCKET_NAME")
	config.Storage.VideoBucket = os.Getenv("AWS_VIDEO_BUCKET_NAME")
	config.Storage.AccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	config.Storage.SecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	config.Storage.Endpoint = os.Getenv("STORAGE_ENDPOINT")
	config.Storage.UseSSL = getEnv("STORAGE_USE_SSL", "true") == "true"
	config.Storage.PublicBaseURL = strings.TrimSuffix(os.Getenv("STORAGE_PUBLIC_BASE_URL"), "/")

	// Mail
	config.Mail.Delivery = strings.ToLower(getEnv("MAIL_DELIVERY", "direct"))
	config.Mail.Relay = strings.ToLower(getEnv("MAIL_RELAY", "smtp"))
	config.Mail.SMTPHost = getEnv("SMTP_HOST", "smtp.gmail.com")
	config.Mail.SMTPPort = getEnv("SMTP_PORT", "587")
	config.Mail.SMTPUsername = os.Getenv("SMTP_USERNAME")
	config.Mail.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	config.Mail.SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	config.Mail.FromAddress = os.Getenv("MAIL_FROM_ADDRESS")
	config.Mail.Recipient = os.Getenv("MAIL_RECIPIENT")

	config.Admin.BootstrapName = getEnv("ADMIN_BOOTSTRAP_NAME", "Administrator")
	config.Admin.BootstrapEmail = os.Getenv("ADMIN_BOOTSTRAP_EMAIL")
	config.Admin.BootstrapPassword = os.Getenv("ADMIN_BOOTSTRAP_PASSWORD")

	// Grafana/OpenTelemetry, empty endpoint keeps telemetry local
	grafanaEndpoint := os.Getenv("GRAFANA_OTLP_ENDPOINT")
	// Remove protocol for OpenTelemetry client to avoid duplicate protocols
	grafanaEndpoint = strings.TrimPrefix(grafanaEndpoint, "https://")
	grafanaEndpoint = strings.TrimPrefix(grafanaEndpoint, "http://")
	config.Grafana.OTLPEndpoint = grafanaEndpoint
	config.Grafana.ServiceName = getEnv("SERVICE_NAME", "gau-showcase-service")

	config.Environment.Mode = getEnv("DEPLOY_ENV", "development")
	config.Environment.Group = getEnv("GROUP_NAME", "local")

	config.Port = getEnv("PORT", "8080")

	return &config
}

// Validate reports the first missing setting the service cannot start without.
func (c *EnvConfig) Validate() error {
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Storage.ImageBucket == "" {
		return fmt.Errorf("AWS_BUCKET_NAME is required")
	}
	// listing and deleting by key would mix images and videos in a shared bucket
	if c.Storage.VideoBucket == "" || c.Storage.VideoBucket == c.Storage.ImageBucket {
		return fmt.Errorf("AWS_VIDEO_BUCKET_NAME is required and must differ from AWS_BUCKET_NAME")
	}
	switch c.Storage.Driver {
	case "s3":
	case "minio":
		if c.Storage.Endpoint == "" {
			return fmt.Errorf("STORAGE_ENDPOINT is required for the minio driver")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	switch c.Mail.Delivery {
	case "direct", "queue":
	default:
		return fmt.Errorf("unsupported MAIL_DELIVERY %q", c.Mail.Delivery)
	}
	switch c.Mail.Relay {
	case "smtp", "sendgrid":
	default:
		return fmt.Errorf("unsupported MAIL_RELAY %q", c.Mail.Relay)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("15m") or plain seconds ("900").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
