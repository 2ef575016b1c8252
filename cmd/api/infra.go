package main

import (
	"context"
	"database/sql"
	"fmt"

	"push-to-memory/config"
	natsConfig "push-to-memory/config/nats"
	"push-to-memory/config/postgre"
	"push-to-memory/internal/httpserver"
	reflectionRepo "push-to-memory/internal/reflection/repository"
	reflectionMemory "push-to-memory/internal/reflection/repository/memory"
	reflectionNATS "push-to-memory/internal/reflection/repository/nats"
	reflectionPostgre "push-to-memory/internal/reflection/repository/postgre"
	registrationRepo "push-to-memory/internal/registration/repository"
	registrationMemory "push-to-memory/internal/registration/repository/memory"
	registrationNATS "push-to-memory/internal/registration/repository/nats"
	registrationPostgre "push-to-memory/internal/registration/repository/postgre"
	"push-to-memory/pkg/log"
)

// infra holds the process-wide store clients and the repositories built on them.
type infra struct {
	db   *sql.DB
	nats *natsConfig.Client

	registrations registrationRepo.Repository
	reflections   reflectionRepo.Repository
	pingers       map[string]httpserver.Pinger
}

func connectInfra(ctx context.Context, cfg *config.Config, l log.Logger) (*infra, error) {
	in := &infra{pingers: make(map[string]httpserver.Pinger)}

	if cfg.NeedsNATS() {
		client, err := natsConfig.Connect(ctx, natsConfig.Config{URL: cfg.NATS.URL})
		if err != nil {
			return nil, err
		}
		in.nats = client
		in.pingers["nats"] = client.Ping
		l.Infof(ctx, "Connected to NATS at %s", cfg.NATS.URL)
	}

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := postgre.Connect(ctx, postgre.Config{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			in.close(ctx)
			return nil, err
		}
		in.db = db
		if err := postgre.Migrate(ctx, db); err != nil {
			in.close(ctx)
			return nil, err
		}
		in.registrations = registrationPostgre.New(db, l)
		in.reflections = reflectionPostgre.New(db, l)
		in.pingers["postgres"] = db.PingContext
		l.Info(ctx, "Connected to PostgreSQL, migrations applied")

	case config.StorageNATS:
		regKV, err := in.nats.KeyValue(ctx, cfg.NATS.RegistrationBucket)
		if err != nil {
			in.close(ctx)
			return nil, err
		}
		refKV, err := in.nats.KeyValue(ctx, cfg.NATS.ReflectionBucket)
		if err != nil {
			in.close(ctx)
			return nil, err
		}
		in.registrations = registrationNATS.New(regKV, l)
		in.reflections = reflectionNATS.New(refKV, l)
		l.Infof(ctx, "Using NATS KV buckets %s and %s", cfg.NATS.RegistrationBucket, cfg.NATS.ReflectionBucket)

	case config.StorageMemory:
		in.registrations = registrationMemory.New()
		in.reflections = reflectionMemory.New()
		l.Warn(ctx, "Using in-memory storage, data is lost on restart")

	default:
		in.close(ctx)
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return in, nil
}

func (in *infra) close(ctx context.Context) {
	if in.db != nil {
		_ = postgre.Disconnect(ctx, in.db)
	}
	in.nats.Disconnect()
}
