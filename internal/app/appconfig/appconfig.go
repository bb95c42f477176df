package appconfig

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"exusiai.dev/roster-backend/internal/app/appcontext"
)

const envPrefix = "roster"

func Parse(ctx appcontext.Ctx) (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	var config ConfigSpec
	err = envconfig.Process(envPrefix, &config)
	if err != nil {
		_ = envconfig.Usage(envPrefix, &config)
		return nil, fmt.Errorf("failed to parse configuration: %w. More info on how to configure this backend is located at https://pkg.go.dev/exusiai.dev/roster-backend/internal/app/appconfig#ConfigSpec", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}, nil
}

func (c *ConfigSpec) validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("ROSTER_POSTGRES_DSN is required when storage driver is %q", c.StorageDriver)
		}
	case StorageDriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("ROSTER_MONGO_URI is required when storage driver is %q", c.StorageDriver)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q: expect one of postgres, mongo, memory", c.StorageDriver)
	}

	if c.IDLength < 4 || c.IDLength > 32 {
		return fmt.Errorf("ROSTER_ID_LENGTH must be within [4, 32], got %d", c.IDLength)
	}
	if c.SnapshotTTL <= 0 {
		return fmt.Errorf("ROSTER_SNAPSHOT_TTL must be positive, got %s", c.SnapshotTTL)
	}
	return nil
}
