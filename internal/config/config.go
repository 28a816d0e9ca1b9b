// Package config provides configuration structures and validation for the application.
// It handles environment-based configuration for all major components including
// server settings, storage backends, message topics, and operational parameters.
package config

import (
	"errors"
	"strings"
	"time"
)

// Storage backend selectors. The backend is chosen once at process start;
// everything above the persistence gateway is backend-agnostic.
const (
	StorageBackendRemote = "remote"
	StorageBackendBolt   = "bolt"
)

// Config holds the complete application configuration with settings for all components.
// Each field represents a major subsystem's configuration (e.g., HTTP server, storage
// backends, message topics) and is validated during application startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Kafka       KafkaConfig
	Storage     StorageConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	Bolt        BoltConfig
	Matching    MatchingConfig
	Sweeper     SweeperConfig
	WorkerPool  WorkerPoolConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// KafkaConfig contains Kafka configuration for the inbound command channel,
// the outbound acknowledgment channel and the dead letter queue.
type KafkaConfig struct {
	Brokers           string
	CommandsTopic     string // Inbound administrative text messages
	AcksTopic         string // Outbound plain-text acknowledgments
	DLQTopic          string // Undecodable inbound payloads
	NumPartitions     int
	ReplicationFactor int
	ConsumerGroup     string
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	StartOffset       int64
}

// StorageConfig selects the persistence gateway implementation.
type StorageConfig struct {
	Backend string // "remote" (Postgres + MongoDB) or "bolt" (local file store)
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string        // Database connection string
	MaxConns        int32         // Maximum number of open connections
	MinConns        int32         // Maximum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	MigrationsPath  string        // Path to migration files
}

// MongoDBConfig contains MongoDB configuration
type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// BoltConfig contains the local durable file store configuration.
type BoltConfig struct {
	Path    string        // Database file path
	Timeout time.Duration // File lock acquisition timeout
}

// MatchingConfig tunes the charge reconciliation lookback window.
type MatchingConfig struct {
	LookbackWindow int // How many recent pending charges are considered for a match
}

// SweeperConfig contains notification retention sweeper configuration.
type SweeperConfig struct {
	Interval  time.Duration // How often a sweep runs
	BatchSize int           // Maximum deletions per sweep
	Retention time.Duration // Read notifications older than this are removed
}

// WorkerPoolConfig contains worker pool configuration
type WorkerPoolConfig struct {
	Size int // Maximum number of workers in the pool
}

// validate performs comprehensive validation of all configuration values,
// ensuring they meet minimum requirements and logical constraints
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	// Validate Kafka config
	if len(c.Kafka.Brokers) == 0 {
		validationErrors = append(validationErrors, "KAFKA_BROKERS is required")
	}
	if c.Kafka.CommandsTopic == "" {
		validationErrors = append(validationErrors, "KAFKA_COMMANDS_TOPIC is required")
	}
	if c.Kafka.AcksTopic == "" {
		validationErrors = append(validationErrors, "KAFKA_ACKS_TOPIC is required")
	}
	if c.Kafka.ConsumerGroup == "" {
		validationErrors = append(validationErrors, "KAFKA_CONSUMER_GROUP is required")
	}
	if c.Kafka.MinBytes <= 0 {
		validationErrors = append(validationErrors, "KAFKA_CONSUMER_MIN_BYTES must be greater than 0")
	}
	if c.Kafka.MaxBytes <= 0 {
		validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_BYTES must be greater than 0")
	}
	if c.Kafka.MaxWait <= 0 {
		validationErrors = append(validationErrors, "KAFKA_CONSUMER_MAX_WAIT must be greater than 0")
	}
	if c.Kafka.DLQTopic == "" {
		validationErrors = append(validationErrors, "KAFKA_DLQ_TOPIC is required")
	}

	// Validate storage config for the selected backend only; the other
	// backend's settings are ignored at runtime.
	switch c.Storage.Backend {
	case StorageBackendRemote:
		if c.Postgres.URL == "" {
			validationErrors = append(validationErrors, "POSTGRES_URL is required")
		}
		if c.Postgres.MaxConns <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MAX_CONNS must be greater than 0")
		}
		if c.Postgres.MinConns <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MIN_CONNS must be greater than 0")
		}
		if c.Postgres.ConnMaxLifetime <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
		}
		if c.Postgres.ConnMaxIdleTime <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
		}
		if c.MongoDB.URI == "" {
			validationErrors = append(validationErrors, "MONGO_URI is required")
		}
		if c.MongoDB.Database == "" {
			validationErrors = append(validationErrors, "MONGO_DATABASE is required")
		}
		if c.MongoDB.Timeout <= 0 {
			validationErrors = append(validationErrors, "MONGO_TIMEOUT must be greater than 0")
		}
		if c.MongoDB.MaxPoolSize <= 0 {
			validationErrors = append(validationErrors, "MONGO_MAX_POOL_SIZE must be greater than 0")
		}
		if c.MongoDB.MinPoolSize <= 0 {
			validationErrors = append(validationErrors, "MONGO_MIN_POOL_SIZE must be greater than 0")
		}
		if c.MongoDB.MaxConnIdleTime <= 0 {
			validationErrors = append(validationErrors, "MONGO_MAX_CONN_IDLE_TIME must be greater than 0")
		}
	case StorageBackendBolt:
		if c.Bolt.Path == "" {
			validationErrors = append(validationErrors, "BOLT_PATH is required")
		}
		if c.Bolt.Timeout <= 0 {
			validationErrors = append(validationErrors, "BOLT_TIMEOUT must be greater than 0")
		}
	default:
		validationErrors = append(validationErrors, "STORAGE_BACKEND must be one of: remote, bolt")
	}

	// Validate Matching config
	if c.Matching.LookbackWindow <= 0 {
		validationErrors = append(validationErrors, "MATCHING_LOOKBACK_WINDOW must be greater than 0")
	}

	// Validate Sweeper config
	if c.Sweeper.Interval <= 0 {
		validationErrors = append(validationErrors, "SWEEPER_INTERVAL must be greater than 0")
	}
	if c.Sweeper.BatchSize <= 0 {
		validationErrors = append(validationErrors, "SWEEPER_BATCH_SIZE must be greater than 0")
	}
	if c.Sweeper.Retention <= 0 {
		validationErrors = append(validationErrors, "SWEEPER_RETENTION must be greater than 0")
	}

	// Validate WorkerPool config
	if c.WorkerPool.Size <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_SIZE must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
