package app

import (
	"context"
	"fmt"
	"io"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/ports"
	mongostore "github.com/Slganeshkarthik/AgriConnect/internal/infrastructure/db/mongo"
	redisstore "github.com/Slganeshkarthik/AgriConnect/internal/infrastructure/db/redis"
	"github.com/Slganeshkarthik/AgriConnect/internal/infrastructure/db/sqlite"
	"github.com/Slganeshkarthik/AgriConnect/internal/pkg/config"
)

// Storage is a local storage backend the app owns and closes.
type Storage interface {
	ports.KeyValueStore
	ports.Pinger
	io.Closer
}

// OpenStorage connects the backend named by cfg.Storage.Driver.
func OpenStorage(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Storage.SQLitePath})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		return redisstore.NewSnapshotStore(client, cfg.Redis.Prefix), nil
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		return mongostore.NewSnapshotStore(client, db), nil
	}
	return nil, fmt.Errorf("open storage: unknown driver %q", cfg.Storage.Driver)
}
