package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const dialTimeout = 5 * time.Second

// Client wraps the go-redis client used for registration snapshots.
type Client struct {
	*redis.Client
	logger *zap.Logger
}

// NewClient creates a Redis client and verifies connectivity.
func NewClient(ctx context.Context, addr, password string, db int, logger *zap.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("Redis client connected", zap.String("addr", addr), zap.Int("db", db))
	return &Client{Client: rdb, logger: logger}, nil
}

// Close closes the connection pool.
func (c *Client) Close() error {
	if err := c.Client.Close(); err != nil {
		c.logger.Warn("redis close", zap.Error(err))
		return err
	}
	return nil
}
