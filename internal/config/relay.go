package config

import "time"

type Relay struct {
	// Enabled turns on publishing outbox messages to Kafka and consuming them back.
	// Outbox messages are written regardless.
	Enabled   bool          `env:"RELAY_ENABLED" envDefault:"false"`
	BatchSize uint32        `env:"RELAY_BATCH_SIZE" envDefault:"100"`
	Interval  time.Duration `env:"RELAY_INTERVAL" envDefault:"1s"`
}

type Event struct {
	LowStockThreshold int `env:"RELAY_LOW_STOCK_THRESHOLD" envDefault:"5"`
}
