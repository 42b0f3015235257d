package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/survey_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/core/services"
	"github.com/SscSPs/survey_workspace_app/internal/events"
	"github.com/SscSPs/survey_workspace_app/internal/mailer"
	"github.com/SscSPs/survey_workspace_app/internal/platform/config"
	"github.com/SscSPs/survey_workspace_app/internal/platform/id"
	"github.com/SscSPs/survey_workspace_app/internal/platform/logger"
	"github.com/SscSPs/survey_workspace_app/internal/platform/telemetry"
	"github.com/SscSPs/survey_workspace_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/survey_workspace_app/internal/repositories/memstore"
	"github.com/SscSPs/survey_workspace_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// app holds everything a command needs, plus what must be released on exit.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	services  *portssvc.ServiceContainer
	redis     *redis.Client
	pool      *pgxpool.Pool
	telemetry *telemetry.Telemetry

	dispatcher interface{ Wait() }
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	a := &app{cfg: cfg, logger: logger.Setup(cfg)}

	if err := id.Init(cfg.SnowflakeNode); err != nil {
		return nil, fmt.Errorf("initializing id generator: %w", err)
	}

	a.telemetry, err = telemetry.Setup(ctx, cfg)
	if err != nil {
		// Tracing is optional; the API keeps serving without it.
		a.logger.Warn("Failed to set up telemetry", slog.String("error", err.Error()))
	}

	repos, err := a.openStorage(ctx)
	if err != nil {
		a.close(ctx)
		return nil, err
	}

	if cfg.RedisURL != "" {
		a.redis, err = openRedis(ctx, cfg.RedisURL)
		if err != nil {
			a.close(ctx)
			return nil, err
		}
	}

	a.services = services.NewServiceContainer(cfg, repos, mailer.NewLogMailer(), a.newDispatcher)
	return a, nil
}

func (a *app) openStorage(ctx context.Context) (portsrepo.RepositoryProvider, error) {
	if a.cfg.StorageDriver == config.StorageMemory {
		a.logger.Warn("Using in-memory storage, data is lost on restart")
		return memstore.New().Provider(), nil
	}

	pool, err := database.NewPgxPool(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return portsrepo.RepositoryProvider{}, fmt.Errorf("initializing database pool: %w", err)
	}
	a.pool = pool
	return pgsql.NewRepositoryProvider(pool), nil
}

func openRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return client, nil
}

// newDispatcher publishes side effects to the Redis stream when one is configured
// and runs them in-process otherwise.
func (a *app) newDispatcher(handler events.Handler) events.Dispatcher {
	if a.redis != nil {
		d := events.NewStreamDispatcher(a.redis, a.cfg.EventsStream, a.cfg.SideEffectTimeout)
		a.dispatcher = d
		a.logger.Info("Side effects published to stream", slog.String("stream", a.cfg.EventsStream))
		return d
	}
	d := events.NewAsyncDispatcher(handler, a.cfg.SideEffectTimeout)
	a.dispatcher = d
	a.logger.Info("Side effects run in-process")
	return d
}

func (a *app) newConsumer(ctx context.Context) (*events.StreamConsumer, error) {
	if a.redis == nil {
		return nil, errors.New("REDIS_URL is required to consume side-effect events")
	}
	return events.NewStreamConsumer(ctx, a.redis, events.ConsumerConfig{
		Stream:         a.cfg.EventsStream,
		Group:          a.cfg.EventsGroup,
		Consumer:       a.cfg.EventsConsumer,
		DLQStream:      a.cfg.EventsDLQStream,
		MaxAttempts:    a.cfg.EventsMaxAttempts,
		HandlerTimeout: a.cfg.SideEffectTimeout,
	}, a.services.SideEffects, a.logger)
}

// close waits for in-flight side effects, then releases connections.
func (a *app) close(ctx context.Context) {
	if a.dispatcher != nil {
		a.dispatcher.Wait()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}
	database.ClosePgxPool(a.pool)
	if err := a.telemetry.Shutdown(ctx); err != nil {
		a.logger.Error("Error shutting down telemetry", slog.String("error", err.Error()))
	}
}
