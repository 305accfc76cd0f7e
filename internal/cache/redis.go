package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/ticketing/config"
	"github.com/Domenick1991/ticketing/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	listingTTL time.Duration
	markerTTL  time.Duration
}

func NewRedisCache(cfg config.RedisConfig, listingTTL, markerTTL time.Duration) *RedisCache {
	return NewRedisCacheWithClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		listingTTL,
		markerTTL,
	)
}

func NewRedisCacheWithClient(client *redis.Client, listingTTL, markerTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     client,
		listingTTL: listingTTL,
		markerTTL:  markerTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetEvents returns nil, nil on a cache miss.
func (c *RedisCache) GetEvents(ctx context.Context) ([]domain.Event, error) {
	data, err := c.client.Get(ctx, eventsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *RedisCache) SetEvents(ctx context.Context, events []domain.Event) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, eventsKey(), payload, c.listingTTL).Err()
}

func (c *RedisCache) InvalidateEvents(ctx context.Context) error {
	return c.client.Del(ctx, eventsKey()).Err()
}

// Delivered reports whether a confirmation for orderID was already sent.
func (c *RedisCache) Delivered(ctx context.Context, orderID int64) (bool, error) {
	n, err := c.client.Exists(ctx, deliveredKey(orderID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *RedisCache) MarkDelivered(ctx context.Context, orderID int64) error {
	return c.client.Set(ctx, deliveredKey(orderID), 1, c.markerTTL).Err()
}

func eventsKey() string {
	return "cache:events"
}

func deliveredKey(orderID int64) string {
	return fmt.Sprintf("notify:order:%d:delivered", orderID)
}
