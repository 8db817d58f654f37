package config

import (
	"os"
	"strings"
)

// Config captures storage and audit wiring for the certificate ledger.
type Config struct {
	// DataFile is the JSON document path used by the file store.
	DataFile string
	// PostgresURL selects the Postgres store when set.
	PostgresURL string
	// RedisURL selects the Redis store when set.
	RedisURL string
	// KafkaSeeds enables the Kafka audit sink when non-empty.
	KafkaSeeds []string
	AuditTopic string
}

// FromEnv builds a Config from environment variables so embedding
// applications stay lean. Defaults suit single-process development.
func FromEnv() Config {
	dataFile := os.Getenv("CERTLEDGER_DATA_FILE")
	if dataFile == "" {
		dataFile = "data/certificates.json"
	}

	auditTopic := os.Getenv("CERTLEDGER_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "certledger.issuance"
	}

	var seeds []string
	if raw := os.Getenv("CERTLEDGER_KAFKA_SEEDS"); raw != "" {
		for _, seed := range strings.Split(raw, ",") {
			if seed = strings.TrimSpace(seed); seed != "" {
				seeds = append(seeds, seed)
			}
		}
	}

	return Config{
		DataFile:    dataFile,
		PostgresURL: os.Getenv("CERTLEDGER_POSTGRES_URL"),
		RedisURL:    os.Getenv("CERTLEDGER_REDIS_URL"),
		KafkaSeeds:  seeds,
		AuditTopic:  auditTopic,
	}
}
