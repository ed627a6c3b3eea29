package config

import (
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds everything the server needs at startup so main stays lean.
type Config struct {
	Addr     string `env:"SWIFT_ADDR" env-default:":8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// DatabaseURL selects the postgres store when set; the in-memory store
	// is used otherwise, which is enough for local development and tests.
	DatabaseURL string `env:"DATABASE_URL" env-default:""`

	CSVPath       string        `env:"SWIFT_CSV_PATH" env-default:"data/swift_codes.csv"`
	IngestTimeout time.Duration `env:"INGEST_TIMEOUT" env-default:"2m"`

	// Kafka audit sink is optional; mutations are audited to a nop sink
	// when no brokers are configured.
	KafkaBrokers string `env:"KAFKA_BROKERS" env-default:""`
	KafkaTopic   string `env:"KAFKA_AUDIT_TOPIC" env-default:"swift.audit"`
}

// Brokers returns the configured Kafka brokers, nil when the audit sink is
// disabled.
func (c Config) Brokers() []string {
	if c.KafkaBrokers == "" {
		return nil
	}
	return strings.Split(c.KafkaBrokers, ",")
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
