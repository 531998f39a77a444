package main

import (
	"context"
	"errors"

	"gearguard/internal/docstore"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// infrastructure - хранилище, шина изменений и кеш, общие для всех команд.
type infrastructure struct {
	store         docstore.Store
	broker        *docstore.Broker
	subscriptions *docstore.Subscriptions
	relay         docstore.Relay
	redis         *redis.Client
	// setupErr не nil, если хранилище не настроено или недоступно.
	setupErr error

	closers []func()
}

// openInfrastructure никогда не падает из-за настроек хранилища: вместо
// этого подставляется docstore.Unconfigured, и каждая операция вернёт
// понятную ошибку настройки. Миграции применяются при каждом открытии.
func openInfrastructure(ctx context.Context, cfg *config.Config, logger *zap.Logger) *infrastructure {
	infra := &infrastructure{}

	var base docstore.Store
	var pool *pgxpool.Pool
	setupErr := cfg.Validate()

	if setupErr == nil {
		switch cfg.Store.Driver {
		case config.StoreDriverPostgres:
			setupErr = docstore.MigratePostgres(ctx, cfg.Store.DSN, logger)
			if setupErr == nil {
				pool, setupErr = postgresql.ConnectDB(ctx, cfg.Store.DSN, logger)
			}
			if setupErr == nil {
				infra.closers = append(infra.closers, pool.Close)
				base = docstore.NewPostgresStore(pool, docstore.Options{})
			}
		case config.StoreDriverSQLite:
			db, err := docstore.OpenSQLite(cfg.Store.DSN)
			if err == nil {
				err = docstore.MigrateSQLite(ctx, db, logger)
			}
			setupErr = err
			if db != nil {
				sqliteStore := docstore.NewSQLiteStore(db, docstore.Options{})
				infra.closers = append(infra.closers, func() { _ = sqliteStore.Close() })
				base = sqliteStore
			}
		}
	}

	if setupErr != nil {
		logger.Warn("Хранилище не настроено, API будет отвечать ошибкой настройки", zap.Error(setupErr))
		base = docstore.Unconfigured{Reason: setupErr}
	}
	infra.setupErr = setupErr

	if cfg.Redis.Address != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := client.Ping(ctx).Result(); err != nil {
			logger.Error("не удалось подключиться к Redis, кеш отключён", zap.Error(err), zap.String("address", cfg.Redis.Address))
			_ = client.Close()
		} else {
			infra.redis = client
			infra.closers = append(infra.closers, func() { _ = client.Close() })
		}
	}

	switch cfg.Feed.Driver {
	case config.FeedDriverRedis:
		if infra.redis != nil {
			infra.relay = docstore.NewRedisRelay(infra.redis, cfg.Feed.Channel, logger)
		}
	case config.FeedDriverPostgres:
		if pool != nil {
			relay, err := docstore.NewPostgresRelay(pool, cfg.Store.DSN, cfg.Feed.Channel, logger)
			if err != nil {
				logger.Error("не удалось запустить ретранслятор PostgreSQL", zap.Error(err))
			} else {
				infra.relay = relay
				infra.closers = append(infra.closers, func() { _ = relay.Close() })
			}
		}
	}

	infra.broker = docstore.NewBroker(logger)
	infra.store = docstore.NewNotifyingStore(base, infra.broker, infra.relay, logger)
	infra.subscriptions = docstore.NewSubscriptions(infra.store, infra.broker, logger)
	return infra
}

// cache возвращает nil-интерфейс, а не типизированный nil, если Redis нет.
func (i *infrastructure) cache() repositories.CacheRepositoryInterface {
	if i.redis == nil {
		return nil
	}
	return repositories.NewRedisCacheRepository(i.redis)
}

// requireStore нужен командам CLI: им без хранилища делать нечего.
func (i *infrastructure) requireStore() error {
	if i.setupErr != nil {
		return errors.Join(docstore.ErrNotConfigured, i.setupErr)
	}
	return nil
}

func (i *infrastructure) Close() {
	for j := len(i.closers) - 1; j >= 0; j-- {
		i.closers[j]()
	}
}
