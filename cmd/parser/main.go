package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ayakovlev/market-feed-parser/cmd/parser/config"
	"github.com/ayakovlev/market-feed-parser/internal/decoder"
	"github.com/ayakovlev/market-feed-parser/internal/fetcher"
	"github.com/ayakovlev/market-feed-parser/internal/handler"
	"github.com/ayakovlev/market-feed-parser/internal/parser"
	"github.com/ayakovlev/market-feed-parser/internal/platform/rabbitmq"
	"github.com/ayakovlev/market-feed-parser/internal/platform/storage"
	"github.com/caarlos0/env/v6"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	// UserAgent is user agent header value used when fetching feed file.
	UserAgent = "market-feed-parser/0.0.1"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse log level")
	}
	logger = logger.Level(level)

	sections, err := decoder.ParseSectionPolicy(cfg.OfferSections)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse offer sections policy")
	}

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't prepare RabbitMQ channel")
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}

	if err := pgDB.PingContext(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't connect to Postgres")
	}

	if err := storage.RunMigrations(pgDB); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't apply database migrations")
	}

	par := parser.NewParser(
		fetcher.NewFetcher(&http.Client{Timeout: cfg.HTTPTimeout}, UserAgent, cfg.FetchRetries),
		decoder.NewDecoder(decoder.Config{
			MaxErrors:  cfg.MaxParseErrors,
			StrictShop: cfg.StrictShop,
			Sections:   sections,
		}),
		storage.NewPostgres(pgDB),
		cfg.BatchSize,
		parser.WithDeleteBatchSize(cfg.DeleteBatchSize),
	)

	han := handler.NewHandler(conn, par, &logger)

	// start consuming and handling messages
	err = han.Start(ctx, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	logger.Info().Msg("feed parser up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	// wait for consumer to finish
	<-conn.Done()

	// close connections
	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := pgDB.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close Postgres connection")
		}
	}()

	go func() {
		defer wg.Done()
		if err := amqpConnection.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}()

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}
