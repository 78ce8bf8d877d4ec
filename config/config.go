package config

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	Addr           string
	BackendURL     string
	PublicURL      string
	Environment    string
	AllowedOrigins []string

	// CartBackend is "memory" or "redis".
	CartBackend  string
	RedisAddr    string
	CartTTL      time.Duration
	MenuCacheTTL time.Duration

	KafkaBroker string
	KafkaTopic  string
}

// Load reads configuration from the environment, with an optional .env
// file for local development.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARNING: could not load .env file: %v", err)
	}

	return Config{
		Addr:           getEnv("ADDR", ":8080"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8000/api"),
		PublicURL:      getEnv("PUBLIC_URL", "http://localhost:8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"), ","),
		CartBackend:    getEnv("CART_BACKEND", "memory"),
		RedisAddr:      getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		CartTTL:        getDuration("CART_TTL", 2*time.Hour),
		MenuCacheTTL:   getDuration("MENU_CACHE_TTL", 30*time.Second),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "orders.submitted"),
	}
}

func (c Config) Production() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("WARNING: invalid %s %q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func MustInitRedis(addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
