package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"exusiai.dev/roster-backend/internal/app/appconfig"
)

// Redis returns a nil client when no Redis URL is configured; the snapshot cache and
// the sweep lock are then disabled.
func Redis(conf *appconfig.Config) (*redis.Client, error) {
	if conf.RedisURL == "" {
		log.Warn().
			Str("evt.name", "infra.redis.disabled").
			Msg("redis is disabled due to missing URL: snapshot cache and sweep lock are off")
		return nil, nil
	}

	u, err := redis.ParseURL(conf.RedisURL)
	if err != nil {
		log.Error().Err(err).Msg("infra: redis: failed to parse redis url")
		return nil, err
	}

	// Open a Redis Client
	client := redis.NewClient(u)

	// check redis connection
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	ping := client.Ping(ctx)
	if ping.Err() != nil {
		log.Error().Err(ping.Err()).Msg("infra: redis: failed to ping database")
		return nil, ping.Err()
	}

	return client, nil
}
