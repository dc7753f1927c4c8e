package config

import "time"

// Config holds application configuration.
type Config struct {
	DatabaseURL     string        `env:"DATABASE_URL"`
	BatchSize       uint          `env:"BATCH_SIZE" envDefault:"50"`
	DeleteBatchSize uint          `env:"DELETE_BATCH_SIZE" envDefault:"500"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	FetchRetries    uint64        `env:"FETCH_RETRIES" envDefault:"3"`
	MaxParseErrors  int           `env:"MAX_PARSE_ERRORS" envDefault:"100"`
	StrictShop      bool          `env:"STRICT_SHOP" envDefault:"false"`
	OfferSections   string        `env:"OFFER_SECTIONS" envDefault:"all"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	RabbitMQ RabbitMQ
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL      string `env:"RABBITMQ_URL"`
	Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"mfp-ex"`
	Queue    string `env:"RABBITMQ_QUEUE" envDefault:"market-feed-parser.commands"`
}
