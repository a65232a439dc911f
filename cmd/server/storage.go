package main

import (
	"context"
	"fmt"
	"time"

	"github.com/heptiolabs/healthcheck"
	"go.uber.org/zap"

	"github.com/forgo/bookshelf/internal/config"
	"github.com/forgo/bookshelf/internal/database"
	"github.com/forgo/bookshelf/internal/handler"
	"github.com/forgo/bookshelf/internal/repository/memory"
	"github.com/forgo/bookshelf/internal/repository/relational"
	"github.com/forgo/bookshelf/internal/repository/statement"
	"github.com/forgo/bookshelf/internal/repository/surreal"
	"github.com/forgo/bookshelf/internal/service"
)

const readyTimeout = time.Second

// storage is the repository pair selected by STORAGE_BACKEND
type storage struct {
	persons service.PersonRepository
	books   service.BookRepository
	ready   map[string]healthcheck.Check
	close   func() error
}

// openStorage connects the configured backend and applies migrations when enabled
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		store := memory.New()
		return &storage{
			persons: store.Persons(),
			books:   store.Books(),
			close:   func() error { return nil },
		}, nil

	case config.BackendSurreal:
		db := database.NewSurrealDB(database.Config{
			Host:      cfg.Surreal.Host,
			Port:      cfg.Surreal.Port,
			User:      cfg.Surreal.User,
			Password:  cfg.Surreal.Password,
			Namespace: cfg.Surreal.Namespace,
			Database:  cfg.Surreal.Database,
		})
		if err := db.Connect(ctx); err != nil {
			return nil, err
		}
		zap.L().Info("connected to database",
			zap.String("backend", cfg.Storage.Backend),
			zap.String("endpoint", db.Endpoint()),
			zap.String("database", cfg.Surreal.Database))

		store := surreal.New(db)
		return &storage{
			persons: store.Persons(),
			books:   store.Books(),
			ready:   map[string]healthcheck.Check{"database": handler.PingCheck(db, readyTimeout)},
			close:   db.Close,
		}, nil

	case config.BackendRelational, config.BackendStatement:
		db, err := database.OpenSQL(ctx, database.SQLConfig{
			Driver:          cfg.Database.Driver,
			DSN:             cfg.Database.DSN,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		zap.L().Info("connected to database",
			zap.String("backend", cfg.Storage.Backend),
			zap.String("driver", cfg.Database.Driver))

		if cfg.Database.Migrate {
			if err := database.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
			zap.L().Info("migrations applied", zap.String("driver", cfg.Database.Driver))
		}

		s := &storage{
			ready: map[string]healthcheck.Check{"database": healthcheck.DatabasePingCheck(db.DB, readyTimeout)},
			close: db.Close,
		}
		if cfg.Storage.Backend == config.BackendRelational {
			store := relational.New(db)
			s.persons, s.books = store.Persons(), store.Books()
		} else {
			store := statement.New(db)
			s.persons, s.books = store.Persons(), store.Books()
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
