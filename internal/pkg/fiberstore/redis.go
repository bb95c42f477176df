package fiberstore

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const opTimeout = 3 * time.Second

// Redis implements fiber.Storage on plain keys under a common prefix, so that every
// entry expires on its own.
type Redis struct {
	Client *redis.Client
	Prefix string
}

// Redis implements fiber.Storage
var _ fiber.Storage = &Redis{}

// NewRedis returns nil when client is nil, letting fiber middlewares fall back to
// their in-memory storage.
func NewRedis(client *redis.Client, prefix string) fiber.Storage {
	if client == nil {
		return nil
	}
	return &Redis{
		Client: client,
		Prefix: prefix + ":",
	}
}

// NewLimiterStorage is the storage shared by rate limiters of every replica.
func NewLimiterStorage(client *redis.Client) fiber.Storage {
	return NewRedis(client, "limiter")
}

func ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// Close implements fiber.Storage. The client is owned by the infra layer.
func (r *Redis) Close() error {
	return nil
}

// Delete implements fiber.Storage
func (r *Redis) Delete(key string) error {
	c, cancel := ctx()
	defer cancel()
	return r.Client.Del(c, r.Prefix+key).Err()
}

// Get implements fiber.Storage. A missing key yields nil, nil.
func (r *Redis) Get(key string) ([]byte, error) {
	c, cancel := ctx()
	defer cancel()
	b, err := r.Client.Get(c, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

// Reset implements fiber.Storage
func (r *Redis) Reset() error {
	c, cancel := ctx()
	defer cancel()

	iter := r.Client.Scan(c, 0, r.Prefix+"*", 100).Iterator()
	for iter.Next(c) {
		if err := r.Client.Del(c, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Set implements fiber.Storage. A zero exp keeps the key forever.
func (r *Redis) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	c, cancel := ctx()
	defer cancel()
	return r.Client.Set(c, r.Prefix+key, val, exp).Err()
}
