package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"store-admin-service/handlers"
	"store-admin-service/internal/auth"
	"store-admin-service/internal/billboards"
	"store-admin-service/internal/categories"
	"store-admin-service/internal/colors"
	"store-admin-service/internal/consul"
	"store-admin-service/internal/orders"
	"store-admin-service/internal/products"
	"store-admin-service/internal/sizes"
	"store-admin-service/internal/stores/kafka"
	"store-admin-service/internal/stores/postgres"
	"store-admin-service/internal/tenants"

	"github.com/joho/godotenv"
)

const serviceName = "store-admin-service"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	}))
	slog.SetDefault(logger)

	if err := startApp(); err != nil {
		slog.Error("service shutting down", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func startApp() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on environment")
	}

	keyFile := os.Getenv("AUTH_PUBLIC_KEY_FILE")
	if keyFile == "" {
		keyFile = "pubkey.pem"
	}
	keys, err := auth.NewKeysFromFile(keyFile)
	if err != nil {
		return fmt.Errorf("loading token verification key: %w", err)
	}

	db, err := postgres.OpenDB()
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}
	if err := postgres.RunMigrations(db, migrationsDir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	tenantsConf, err := tenants.NewConf(db)
	if err != nil {
		return err
	}
	billboardsConf, err := billboards.NewConf(db)
	if err != nil {
		return err
	}
	categoriesConf, err := categories.NewConf(db)
	if err != nil {
		return err
	}
	sizesConf, err := sizes.NewConf(db)
	if err != nil {
		return err
	}
	colorsConf, err := colors.NewConf(db)
	if err != nil {
		return err
	}
	productsConf, err := products.NewConf(db)
	if err != nil {
		return err
	}
	ordersConf, err := orders.NewConf(db)
	if err != nil {
		return err
	}

	brokers := strings.Split(os.Getenv("KAFKA_BROKERS"), ",")
	kafkaConf, err := kafka.NewConf(brokers)
	if err != nil {
		return fmt.Errorf("connecting to kafka: %w", err)
	}
	defer kafkaConf.Close()

	h := handlers.NewHandler(tenantsConf, billboardsConf, categoriesConf, sizesConf,
		colorsConf, productsConf, ordersConf, kafkaConf)

	port := os.Getenv("SERVICE_PORT")
	if port == "" {
		port = "8085"
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid SERVICE_PORT %q: %w", port, err)
	}

	// Registration failures are logged but do not stop the service; the API
	// works without discovery.
	consulClient, err := consul.NewClient()
	if err != nil {
		slog.Warn("consul client unavailable", slog.String("error", err.Error()))
	} else {
		serviceID := serviceName + "-" + port
		address := os.Getenv("SERVICE_ADDRESS")
		if address == "" {
			address = "localhost"
		}
		if err := consul.RegisterService(consulClient, serviceID, serviceName, address, portNum); err != nil {
			slog.Warn("consul registration failed", slog.String("error", err.Error()))
		} else {
			defer func() {
				if err := consul.DeregisterService(consulClient, serviceID); err != nil {
					slog.Warn("consul deregistration failed", slog.String("error", err.Error()))
				}
			}()
		}
	}

	prefix := os.Getenv("ENDPOINT_PREFIX")
	if prefix == "" {
		prefix = "/v1"
	}

	api := http.Server{
		Addr:         ":" + port,
		Handler:      handlers.API(prefix, keys, h),
		ReadTimeout:  8 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("api server listening", slog.String("addr", api.Addr))
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			err = api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
