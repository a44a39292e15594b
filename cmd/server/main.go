package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	cartcache "github.com/AbdelkaderTk/go-shop/internal/cart/cache"
	cartrepo "github.com/AbdelkaderTk/go-shop/internal/cart/repository"
	cartservice "github.com/AbdelkaderTk/go-shop/internal/cart/service"
	catalogrepo "github.com/AbdelkaderTk/go-shop/internal/catalog/repository"
	checkoutservice "github.com/AbdelkaderTk/go-shop/internal/checkout/service"
	"github.com/AbdelkaderTk/go-shop/internal/events"
	shophttp "github.com/AbdelkaderTk/go-shop/internal/http"
	"github.com/AbdelkaderTk/go-shop/internal/invoice"
	orderrepo "github.com/AbdelkaderTk/go-shop/internal/order/repository"
	"github.com/AbdelkaderTk/go-shop/internal/payment"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("go-shop starting...")

	// Configuration
	httpPort := getEnv("HTTP_PORT", "8080")
	requestTimeout := 30 * time.Second
	shutdownTimeout := 10 * time.Second

	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")
	mongoDB := getEnv("MONGO_DB", "shop")
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	catalogDBPath := getEnv("CATALOG_DB_PATH", "./shop.db")
	catalogMigrations := getEnv("CATALOG_MIGRATIONS_PATH", "./internal/catalog/repository/migrations")
	invoiceDir := getEnv("INVOICE_DIR", "./data/invoices")
	stripeKey := getEnv("STRIPE_API_KEY", "")
	kafkaBrokers := getEnv("KAFKA_BROKERS", "")

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "shop")
	ordersMigrations := getEnv("ORDERS_MIGRATIONS_PATH", "./internal/order/repository/migrations")

	port, err := strconv.Atoi(dbPort)
	if err != nil {
		log.Fatalf("Invalid DB_PORT: %v", err)
	}

	// Catalog store (sqlite)
	catalog, err := catalogrepo.NewRepository(catalogDBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer catalog.Close()

	if err := catalog.RunMigrations(catalogMigrations); err != nil {
		log.Fatalf("Failed to run catalog migrations: %v", err)
	}
	log.Println("Catalog migrations completed")

	// Orders store (postgres)
	creds := &orderrepo.Credentials{
		Host:              dbHost,
		Port:              port,
		User:              dbUser,
		Password:          dbPass,
		DBName:            dbName,
		MigrationsDirPath: ordersMigrations,
	}

	orders, err := orderrepo.NewRepository(creds)
	if err != nil {
		log.Fatalf("Failed to connect to orders database: %v", err)
	}
	defer orders.Close()

	if err := orders.RunMigrations(creds); err != nil {
		log.Fatalf("Failed to run orders migrations: %v", err)
	}
	log.Println("Orders migrations completed")

	// Cart store (mongo) + cache (redis)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	mongoDatabase, err := cartrepo.ConnectMongoDB(ctx, mongoURI, mongoDB)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	cartRepository := cartrepo.NewMongoRepository(mongoDatabase)
	log.Printf("Connected to MongoDB at %s", mongoURI)

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	cartCache := cartcache.NewRedisCache(redisClient)

	// Payment gateway
	if stripeKey == "" {
		log.Println("STRIPE_API_KEY not set; charges will fail against the live gateway")
	}
	var gateway payment.Gateway = payment.NewStripeGateway(stripeKey)
	gateway = payment.NewBreakerGateway(gateway)

	// Order placed events
	var publisher checkoutservice.OrderPublisher = events.NoopPublisher{}
	if kafkaBrokers != "" {
		kafkaPublisher := events.NewKafkaPublisher(strings.Split(kafkaBrokers, ",")...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Printf("Publishing order events to %s", kafkaBrokers)
	}

	// Invoice storage
	invoiceStore, err := invoice.NewFileStore(invoiceDir)
	if err != nil {
		log.Fatalf("Failed to create invoice store: %v", err)
	}

	// Services
	cartSvc := cartservice.NewCartService(cartRepository, cartCache, catalog)
	checkoutSvc := checkoutservice.NewCheckoutService(cartSvc, orders, gateway, publisher)
	invoiceSvc := invoice.NewService(orders, invoiceStore)

	// Router
	router := shophttp.NewRouter(shophttp.RouterDeps{
		Products:       shophttp.NewProductHandler(catalog, requestTimeout),
		Cart:           shophttp.NewCartHandler(cartSvc, requestTimeout),
		Checkout:       shophttp.NewCheckoutHandler(checkoutSvc, requestTimeout),
		Invoices:       shophttp.NewInvoiceHandler(invoiceSvc, requestTimeout),
		RequestTimeout: requestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      otelhttp.NewHandler(router, "go-shop"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("go-shop listening on :%s", httpPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
