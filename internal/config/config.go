package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	DB       PostgresConfig
	Kafka    KafkaConfig
	Store    StoreConfig
	Cart     CartConfig
	Webhook  WebhookConfig
	WhatsApp WhatsAppConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type ServerConfig struct {
	Host string
	Port int
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

type KafkaConfig struct {
	Brokers       []string
	OrderTopic    string
	ConsumerGroup string
}

// StoreConfig locates the on-disk key-value store used for the cart
// and the order history.
type StoreConfig struct {
	Dir string
}

type CartConfig struct {
	MaxQuantity int
}

type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

type WhatsAppConfig struct {
	Number string
}

type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "giftshop"),
			Env:  getEnv("APP_ENV", "local"),
		},
		Server: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnvAsInt("HTTP_PORT", 8040),
		},
		DB: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			DBName:   getEnv("POSTGRES_DB", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Kafka: KafkaConfig{
			Brokers:       splitAndTrim(getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092")),
			OrderTopic:    getEnv("KAFKA_ORDER_TOPIC", "shop_orders"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "giftshop"),
		},
		Store: StoreConfig{
			Dir: getEnv("STORE_DIR", "./data"),
		},
		Cart: CartConfig{
			MaxQuantity: getEnvAsInt("CART_MAX_QUANTITY", 50),
		},
		Webhook: WebhookConfig{
			URL:     getEnv("ORDER_WEBHOOK_URL", ""),
			Timeout: time.Duration(getEnvAsInt("ORDER_WEBHOOK_TIMEOUT_MS", 8000)) * time.Millisecond,
		},
		WhatsApp: WhatsAppConfig{
			Number: getEnv("WHATSAPP_NUMBER", "971501234567"),
		},
		Catalog: CatalogConfig{
			BaseURL: getEnv("CATALOG_BASE_URL", ""),
			Timeout: time.Duration(getEnvAsInt("CATALOG_TIMEOUT_MS", 10000)) * time.Millisecond,
		},
	}

	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

/* ================= helpers ================= */

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("HTTP_PORT is invalid")
	}
	if c.DB.Host == "" || c.DB.User == "" || c.DB.DBName == "" {
		return fmt.Errorf("database config is incomplete")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers is empty")
	}
	if c.Cart.MaxQuantity <= 0 {
		return fmt.Errorf("CART_MAX_QUANTITY must be positive")
	}
	// Webhook and Catalog URLs are optional; the sinks they back are
	// best-effort and simply disabled when unset.
	return nil
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if val := strings.TrimSpace(p); val != "" {
			out = append(out, val)
		}
	}
	return out
}
