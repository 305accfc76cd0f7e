package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/ticketing/config"
	"github.com/Domenick1991/ticketing/internal/cache"
	"github.com/Domenick1991/ticketing/internal/kafka"
	"github.com/Domenick1991/ticketing/internal/logger"
	"github.com/Domenick1991/ticketing/internal/mail"
	"github.com/Domenick1991/ticketing/internal/repository"
	"github.com/Domenick1991/ticketing/internal/service/notify"
	"github.com/Domenick1991/ticketing/internal/worker"
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

	sesClient, err := mail.NewSESClient(ctx, cfg.Mail)
	if err != nil {
		zl.Fatal("init mail client", zap.Error(err))
	}

	redisCache := cache.NewRedisCache(
		cfg.Redis,
		time.Duration(cfg.Cache.ListingTTLSeconds)*time.Second,
		time.Duration(cfg.Notification.DeliveredMarkerHours)*time.Hour,
	)
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, zl)
	defer producer.Close()
	deadLetters := kafka.NewDeadLetterQueue(producer, cfg.Kafka.DeadLetterTopic)

	dispatcher := notify.NewDispatcher(
		repository.NewOrderRepository(pool),
		sesClient,
		cfg.Mail.Sender,
		cfg.Notification.MaxTries,
		cfg.Notification.RetryInterval(),
		notify.WithFailureRecorder(deadLetters),
		notify.WithDeliveryGuard(redisCache),
		notify.WithLogger(zl.Named("notify")),
	)
	handler := worker.NewHandler(dispatcher, deadLetters, zl.Named("worker"))

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.JobsTopic)
	defer consumer.Close()

	zl.Info("worker started", zap.String("topic", cfg.Kafka.JobsTopic), zap.String("group", cfg.Kafka.GroupID))
	if err := consumer.Consume(ctx, handler.Handle); err != nil && ctx.Err() == nil {
		zl.Error("consumer stopped", zap.Error(err))
		return
	}
	zl.Info("worker stopped")
}
