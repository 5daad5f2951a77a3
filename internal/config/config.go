package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// StoreConfig selects and configures the persistence backend
type StoreConfig struct {
	Driver      string `env:"STORE_DRIVER" envDefault:"memory"`
	MongoURI    string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB     string `env:"MONGO_DB" envDefault:"fleet_rental"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLLogLevel string `env:"SQL_LOG_LEVEL" envDefault:"warn"`
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret string        `env:"JWT_SECRET"`
	Expiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// MQTTConfig holds the change event broker settings. An empty broker
// disables publishing.
type MQTTConfig struct {
	Broker   string        `env:"MQTT_BROKER"`
	ClientID string        `env:"MQTT_CLIENT_ID" envDefault:"fleet-rental"`
	Prefix   string        `env:"MQTT_TOPIC_PREFIX" envDefault:"fleet-rental"`
	QoS      byte          `env:"MQTT_QOS" envDefault:"1"`
	Timeout  time.Duration `env:"MQTT_TIMEOUT" envDefault:"5s"`
}

// RateLimitConfig holds per client request limits
type RateLimitConfig struct {
	RequestsPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	Burst             int `env:"RATE_LIMIT_BURST" envDefault:"20"`
	// TrustProxy lets X-Forwarded-For and X-Real-IP identify the client.
	TrustProxy bool `env:"RATE_LIMIT_TRUST_PROXY" envDefault:"false"`
}

// AdminConfig describes the administrator created on an empty store.
type AdminConfig struct {
	Mail      string `env:"ADMIN_MAIL"`
	Password  string `env:"ADMIN_PASSWORD"`
	LastName  string `env:"ADMIN_LAST_NAME" envDefault:"Admin"`
	FirstName string `env:"ADMIN_FIRST_NAME" envDefault:"Root"`
	JobTitle  string `env:"ADMIN_JOB_TITLE" envDefault:"Fleet manager"`
}

// Config holds all configuration
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	JWT       JWTConfig
	Log       LogConfig
	MQTT      MQTTConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not found, using environment variables")
	}
	return Parse(env.Options{})
}

// Parse builds a Config from the environment described by opts.
func Parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the combinations the tags cannot express.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.Store.Driver {
	case DriverMemory, DriverMongo:
	case DriverPostgres, DriverMySQL:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	if c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("rate limit values must be positive")
	}
	if (c.Admin.Mail == "") != (c.Admin.Password == "") {
		return errors.New("ADMIN_MAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// ConfigureLogger applies the level and format to the standard logrus logger.
func (c LogConfig) ConfigureLogger() error {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)
	if strings.EqualFold(c.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// GormLogLevel maps SQL_LOG_LEVEL onto the gorm logger levels.
func (c StoreConfig) GormLogLevel() logger.LogLevel {
	switch strings.ToLower(c.SQLLogLevel) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Fields returns the non-secret settings for startup logging.
func (c *Config) Fields() log.Fields {
	return log.Fields{
		"port":         c.Server.Port,
		"store_driver": c.Store.Driver,
		"mqtt_enabled": c.MQTT.Broker != "",
		"log_level":    c.Log.Level,
	}
}
