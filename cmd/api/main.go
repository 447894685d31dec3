package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/ec-storefront/internal/api"
	"github.com/example/ec-storefront/internal/auth"
	"github.com/example/ec-storefront/internal/checkout"
	"github.com/example/ec-storefront/internal/config"
	"github.com/example/ec-storefront/internal/domain/cart"
	"github.com/example/ec-storefront/internal/domain/order"
	"github.com/example/ec-storefront/internal/domain/product"
	"github.com/example/ec-storefront/internal/event"
	"github.com/example/ec-storefront/internal/infrastructure/kafka"
	"github.com/example/ec-storefront/internal/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("STOREFRONT_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[API] Invalid configuration: %v", err)
	}

	logCloser := logging.Setup(cfg.App.LogFile)
	defer logCloser.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Println("[API] ========================================")
	log.Println("[API] Storefront - cart & order service")
	log.Println("[API] ========================================")

	kv, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("[API] Failed to open storage: %v", err)
	}
	defer closeStore()

	// Order events are optional; without brokers the ledger publishes nothing
	var publisher event.Publisher
	if cfg.EventsEnabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		publisher = producer
		log.Printf("[API] Kafka: %v topic %s", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		log.Println("[API] Kafka disabled, order events will not be published")
	}

	catalog := product.DefaultCatalog()
	carts := cart.NewRegistry(kv, cfg.App.CartSessions)
	ledger := order.NewLedger(kv, publisher)
	checkoutSvc := checkout.NewService(ledger)

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	operator := auth.Operator{
		Email:        cfg.Auth.OperatorEmail,
		PasswordHash: cfg.Auth.OperatorPasswordHash,
	}
	if operator.PasswordHash == "" {
		log.Println("[API] No operator password hash configured, operator routes are disabled")
	}

	router := api.NewRouter(api.RouterConfig{
		Handlers:     api.NewHandlers(catalog, carts, ledger, checkoutSvc),
		AuthHandlers: api.NewAuthHandlers(operator, jwtService),
		JWTService:   jwtService,
		WebDir:       cfg.App.WebDir,
	})

	server := &http.Server{
		Addr:              cfg.App.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[API] Server started on %s", cfg.App.HTTPAddr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Shutdown error: %v", err)
	}
}
