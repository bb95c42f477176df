package appconfig

import (
	"time"

	"exusiai.dev/roster-backend/internal/app/appcontext"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
	StorageDriverMemory   = "memory"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9010"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFile is the path of an additional JSON log file, rotated by size. Empty disables file logging.
	LogFile string `split_words:"true" default:"logs/app.log"`

	// LogFileMaxSizeMB is the size in megabytes at which LogFile gets rotated.
	LogFileMaxSizeMB int `split_words:"true" default:"100"`

	// LogFileMaxBackups is how many rotated log files are retained.
	LogFileMaxBackups int `split_words:"true" default:"7"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// CORSAllowOrigins is the comma separated list of origins allowed to call the API from a browser.
	CORSAllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`

	// DevMode to indicate development mode. When true, the program would log at trace level and
	// provide a more contextual message when encountered a panic.
	DevMode bool `split_words:"true"`

	// StorageDriver selects where snapshots are persisted.
	// Valid values are: postgres, mongo, memory (for local development only; nothing survives a restart).
	StorageDriver string `required:"true" split_words:"true" default:"postgres"`

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct a PostgreSQL DSN.
	// Required when StorageDriver is postgres.
	PostgresDSN string `split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// MongoURI is the connection string of the MongoDB deployment. Required when StorageDriver is mongo.
	MongoURI string `split_words:"true"`

	MongoDatabase   string `split_words:"true" default:"roster"`
	MongoCollection string `split_words:"true" default:"characterData"`

	// RedisURL is the URL of the Redis server, used for the snapshot read cache and the sweep lock.
	// Leaving this empty disables both. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL.
	RedisURL string `split_words:"true" default:"redis://127.0.0.1:6379/2"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// SnapshotTTL is the expiry horizon of a snapshot, counted from its last save.
	SnapshotTTL time.Duration `envconfig:"SNAPSHOT_TTL" required:"true" default:"43800h"`

	// SnapshotCacheTTL is the maximum time a snapshot stays in the read cache.
	SnapshotCacheTTL time.Duration `envconfig:"SNAPSHOT_CACHE_TTL" default:"24h"`

	// IDLength is the length of newly issued snapshot identifiers.
	IDLength int `envconfig:"ID_LENGTH" default:"6"`

	// NormalizeLegacyZero restores the historical behaviour of replacing a parsed zero by
	// the field default (e.g. level "0" becomes 1). Off by default.
	NormalizeLegacyZero bool `split_words:"true"`

	// SaveRateLimit is the number of saves a single client IP may perform per minute.
	// Counters are shared through Redis when it is configured. 0 disables rate limiting.
	SaveRateLimit int `split_words:"true" default:"60"`

	// SweepEnabled is a flag to indicate whether to run the daily expiry sweep in this process.
	SweepEnabled bool `split_words:"true" default:"true"`

	// SweepTimezone is the IANA time zone whose midnight triggers the daily sweep.
	SweepTimezone Location `split_words:"true" default:"UTC"`

	// SweepLockExpiry bounds how long a replica may hold the sweep lock.
	SweepLockExpiry time.Duration `split_words:"true" default:"10m"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
