package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/ticketing/api"
	"github.com/Domenick1991/ticketing/config"
	"github.com/Domenick1991/ticketing/internal/auth"
	"github.com/Domenick1991/ticketing/internal/bootstrap"
	"github.com/Domenick1991/ticketing/internal/cache"
	"github.com/Domenick1991/ticketing/internal/kafka"
	"github.com/Domenick1991/ticketing/internal/logger"
	"github.com/Domenick1991/ticketing/internal/repository"
	"github.com/Domenick1991/ticketing/internal/service/catalog"
	"github.com/Domenick1991/ticketing/internal/service/orders"
	"github.com/Domenick1991/ticketing/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		zl.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(
		cfg.Redis,
		time.Duration(cfg.Cache.ListingTTLSeconds)*time.Second,
		time.Duration(cfg.Notification.DeliveredMarkerHours)*time.Hour,
	)
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, zl)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		zl.Warn("kafka not reachable at startup", zap.Error(err))
	}

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	ticketRepo := repository.NewTicketRepository(pool)
	catalogService := catalog.NewCatalogService(
		repository.NewVenueRepository(pool),
		repository.NewEventRepository(pool),
		ticketRepo,
		redisCache,
		zl.Named("catalog"),
	)
	orderService := orders.NewOrderService(
		repository.NewInventoryLedger(pool),
		repository.NewOrderRepository(pool),
		kafka.NewJobQueue(producer, cfg.Kafka.JobsTopic),
		zl.Named("orders"),
	)
	userService := users.NewUserService(repository.NewUserRepository(pool), tokens, cfg.Auth.BcryptCost, zl.Named("users"))

	router := api.NewRouter(zl.Named("http"), tokens, api.Services{
		Orders:  orderService,
		Venues:  catalogService,
		Events:  catalogService,
		Tickets: catalogService,
		Users:   userService,
	})

	probes := map[string]bootstrap.Probe{
		"postgres": pool.Ping,
		"redis":    redisCache.Ping,
		"kafka":    producer.CheckConnection,
	}
	if err := bootstrap.Run(ctx, cfg, router, zl, probes); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}
