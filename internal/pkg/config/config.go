package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server       ServerConfig
	DocStore     DocStoreConfig
	DB           DBConfig
	Queue        QueueConfig
	Connectivity ConnectivityConfig
	Booking      BookingConfig
	MQTT         MQTTConfig
	CORS         CORSConfig
	Log          LogConfig
	JWT          JWTConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

const (
	DocStoreDriverPostgres = "postgres"
	DocStoreDriverMemory   = "memory"
)

type DocStoreConfig struct {
	Driver    string `envconfig:"DOCSTORE_DRIVER" default:"postgres"`
	Namespace string `envconfig:"DOCSTORE_NAMESPACE" default:"FMS"`
}

// DBConfig is only read when DOCSTORE_DRIVER=postgres.
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
}

const (
	QueueDriverSQLite = "sqlite"
	QueueDriverRedis  = "redis"
)

type QueueConfig struct {
	Driver         string        `envconfig:"QUEUE_DRIVER" default:"sqlite"`
	SQLitePath     string        `envconfig:"QUEUE_SQLITE_PATH" default:"data/scratchpad.db"`
	RedisAddr      string        `envconfig:"QUEUE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string        `envconfig:"QUEUE_REDIS_PASSWORD"`
	RedisDB        int           `envconfig:"QUEUE_REDIS_DB" default:"0"`
	RedisPrefix    string        `envconfig:"QUEUE_REDIS_PREFIX" default:"meetroom:"`
	OnDrainFailure string        `envconfig:"QUEUE_ON_DRAIN_FAILURE" default:"drop"`
	RetryBaseDelay time.Duration `envconfig:"QUEUE_RETRY_BASE_DELAY" default:"200ms"`
}

type ConnectivityConfig struct {
	ProbeInterval time.Duration `envconfig:"CONNECTIVITY_PROBE_INTERVAL" default:"5s"`
	ProbeTimeout  time.Duration `envconfig:"CONNECTIVITY_PROBE_TIMEOUT" default:"2s"`
}

type BookingConfig struct {
	ReconcileGrace time.Duration `envconfig:"BOOKING_RECONCILE_GRACE" default:"1m"`
}

// MQTTConfig enables occupancy notifications when Broker is set.
type MQTTConfig struct {
	Broker         string        `envconfig:"MQTT_BROKER"`
	ClientID       string        `envconfig:"MQTT_CLIENT_ID" default:"meetroom"`
	Username       string        `envconfig:"MQTT_USERNAME"`
	Password       string        `envconfig:"MQTT_PASSWORD"`
	TopicPrefix    string        `envconfig:"MQTT_TOPIC_PREFIX" default:"fms"`
	QoS            byte          `envconfig:"MQTT_QOS" default:"1"`
	PublishTimeout time.Duration `envconfig:"MQTT_PUBLISH_TIMEOUT" default:"3s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
	Issuer string `envconfig:"JWT_ISSUER"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	switch c.DocStore.Driver {
	case DocStoreDriverMemory:
	case DocStoreDriverPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("DB_USER and DB_NAME are required when DOCSTORE_DRIVER=%s", DocStoreDriverPostgres)
		}
	default:
		return fmt.Errorf("unknown DOCSTORE_DRIVER %q", c.DocStore.Driver)
	}
	switch c.Queue.Driver {
	case QueueDriverSQLite, QueueDriverRedis:
	default:
		return fmt.Errorf("unknown QUEUE_DRIVER %q", c.Queue.Driver)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DocStore: DocStoreConfig{
			Driver:    DocStoreDriverMemory,
			Namespace: "FMS",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
		},
		Queue: QueueConfig{
			Driver:         QueueDriverSQLite,
			SQLitePath:     ":memory:",
			RedisPrefix:    "meetroom:test:",
			OnDrainFailure: "drop",
			RetryBaseDelay: time.Millisecond,
		},
		Connectivity: ConnectivityConfig{
			ProbeInterval: 50 * time.Millisecond,
			ProbeTimeout:  50 * time.Millisecond,
		},
		Booking: BookingConfig{
			ReconcileGrace: time.Minute,
		},
		MQTT: MQTTConfig{
			ClientID:       "meetroom-test",
			TopicPrefix:    "fms",
			QoS:            1,
			PublishTimeout: time.Second,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret: "test-secret-key-for-meetroom",
		},
	}
}
