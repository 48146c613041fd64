package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/shopnavy/pos/internal/cache"
	"github.com/shopnavy/pos/internal/config"
	"github.com/shopnavy/pos/internal/event"
	"github.com/shopnavy/pos/internal/http"
	"github.com/shopnavy/pos/internal/log"
	"github.com/shopnavy/pos/internal/relay"
	"github.com/shopnavy/pos/internal/repository"
	"github.com/shopnavy/pos/internal/service"
	"github.com/shopnavy/pos/internal/storage/db"
	"github.com/shopnavy/pos/internal/storage/mq"
	"github.com/shopnavy/pos/internal/telemetry"
	"github.com/shopnavy/pos/pkg/cmdutil"
	"github.com/shopnavy/pos/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running standalone application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Redis    config.Redis
		Relay    config.Relay
		Event    config.Event
		Kafka    config.Kafka
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	if err := db.Migrate(ctx, pgxPool); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	dbClient := db.NewClient(pgxPool)

	var productListCache cache.ProductListCache = cache.NoopProductListCache{}
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("error creating redis client: %w", err)
		}
		defer redisClient.Close() //nolint:errcheck

		productListCache = cache.NewRedisProductListCache(redisClient, cfg.Redis.ProductTTL)
	}

	productRepository := repository.NewProductRepository(dbClient)
	saleRepository := repository.NewSaleRepository(dbClient)
	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient)

	productService := service.NewProductService(dbClient, logger, productRepository, outboxMsgRepository, productListCache)
	saleService := service.NewSaleService(dbClient, logger, productRepository, saleRepository, outboxMsgRepository, productListCache)
	historyService := service.NewHistoryService(saleRepository)

	requestValidator, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	httpSvc := http.New(cfg.HTTP, logger, requestValidator, dbClient, productService, saleService, historyService)
	httpCleanup, err := httpSvc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}
	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	wg.Go(func() {
		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := httpCleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	if cfg.Relay.Enabled {
		kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
		if err != nil {
			return fmt.Errorf("error creating kafka producer: %w", err)
		}
		defer kafkaProducer.Close()

		kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
		if err != nil {
			return fmt.Errorf("error creating kafka consumer: %w", err)
		}

		eventCleanup, err := event.New(cfg.Event, logger, kafkaConsumer).Run(ctx)
		if err != nil {
			kafkaConsumer.Close()
			return fmt.Errorf("error running event service: %w", err)
		}
		logger.InfoContext(ctx, "event service started")

		relayCleanup := relay.NewService(cfg.Relay, logger, dbClient, outboxMsgRepository, kafkaProducer).Run(ctx)
		logger.InfoContext(ctx, "relay service started")

		wg.Go(func() {
			<-interruptChan

			logger.InfoContext(ctx, "relay service is shutting down")
			relayCleanup()
			logger.InfoContext(ctx, "relay service is stopped")

			logger.InfoContext(ctx, "event service is shutting down")
			eventCleanup()
			logger.InfoContext(ctx, "event service is stopped")
		})
	} else {
		logger.InfoContext(ctx, "relay disabled, outbox messages stay in the database")
	}

	wg.Wait()

	return nil
}
