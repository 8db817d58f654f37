// Package certledger wires the certificate ledger and content filter from
// configuration. Embedding applications (the web layer that renders forms and
// PDFs) call Open once at startup and keep the returned App for the process
// lifetime.
package certledger

import (
	"context"
	"fmt"

	"certledger/internal/audit"
	auditkafka "certledger/internal/audit/kafka"
	"certledger/internal/filter"
	"certledger/internal/ledger/metrics"
	"certledger/internal/ledger/service"
	"certledger/internal/ledger/store"
	filestore "certledger/internal/ledger/store/file"
	postgresstore "certledger/internal/ledger/store/postgres"
	redisstore "certledger/internal/ledger/store/redis"
	"certledger/internal/platform/config"
	"certledger/internal/platform/logger"
	"certledger/internal/platform/postgres"
	"certledger/internal/platform/redis"
)

// App bundles the assembled components.
type App struct {
	Ledger *service.Service
	Filter *filter.Checker

	closers []func() error
}

// Open assembles the ledger from configuration. Store selection: Postgres
// when configured, then Redis, then the JSON file store. The Kafka audit sink
// is attached only when seed brokers are configured; issuance never depends
// on it. Open registers Prometheus metrics, so call it once per process.
func Open(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{}
	log := logger.New()

	documents, err := app.openStore(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
	}

	if len(cfg.KafkaSeeds) > 0 {
		client, err := auditkafka.NewClient(cfg.KafkaSeeds)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, func() error {
			client.Close()
			return nil
		})
		opts = append(opts, service.WithAuditPublisher(
			audit.NewPublisher(auditkafka.New(client, cfg.AuditTopic)),
		))
	}

	ledger, err := service.New(documents, opts...)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Ledger = ledger
	app.Filter = filter.NewChecker(filter.WithLogger(log))
	return app, nil
}

func (a *App) openStore(ctx context.Context, cfg config.Config) (store.DocumentStore, error) {
	if cfg.PostgresURL != "" {
		db, err := postgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)

		st := postgresstore.New(db)
		if err := st.Migrate(ctx); err != nil {
			return nil, err
		}
		return st, nil
	}

	if cfg.RedisURL != "" {
		client, err := redis.New(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return redisstore.New(client.Client), nil
	}

	if cfg.DataFile == "" {
		return nil, fmt.Errorf("no storage configured")
	}
	return filestore.New(cfg.DataFile), nil
}

// Close releases storage and broker connections.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
