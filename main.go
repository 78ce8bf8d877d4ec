package main

import (
	"log"
	"net/http"
	"time"

	"resto-dashboard/config"
	httpapi "resto-dashboard/internal/api/http"
	"resto-dashboard/internal/backend"
	"resto-dashboard/internal/cart"
	"resto-dashboard/internal/events"
	"resto-dashboard/internal/menu"
	"resto-dashboard/internal/order"
)

func main() {
	cfg := config.Load()

	api := backend.NewClient(cfg.BackendURL, &http.Client{Timeout: 30 * time.Second})

	var carts cart.Store
	var menuCache menu.Cache
	if cfg.CartBackend == "redis" {
		rdb := config.MustInitRedis(cfg.RedisAddr)
		carts = cart.NewRedisStore(rdb, cfg.CartTTL)
		menuCache = menu.NewRedisCache(rdb, cfg.MenuCacheTTL)
		log.Println("Using Redis cart store at", cfg.RedisAddr)
	} else {
		carts = cart.NewMemoryStore()
		log.Println("Using in-memory cart store")
	}

	var publisher order.EventPublisher
	if cfg.KafkaBroker != "" {
		publisher = events.NewKafkaPublisher(config.NewKafkaWriter(cfg.KafkaBroker, cfg.KafkaTopic))
		log.Println("Publishing order events to", cfg.KafkaBroker)
	}

	menuSvc := menu.NewService(api, menuCache)
	composer := order.NewComposer()
	gateway := order.NewGateway(api, carts, publisher)
	qr := order.TrackingQRGenerator{BaseURL: cfg.PublicURL}

	handler := httpapi.NewHandler(api, carts, menuSvc, composer, gateway, qr, cfg.Production())
	router := httpapi.NewRouter(handler, cfg.AllowedOrigins)

	httpapi.StartServer(cfg.Addr, router)
}
