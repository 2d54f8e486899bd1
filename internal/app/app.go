// Package app assembles the services shared by the API server and the console.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/homa/internal/ai"
	"github.com/MrJamesThe3rd/homa/internal/ai/gemini"
	"github.com/MrJamesThe3rd/homa/internal/building"
	"github.com/MrJamesThe3rd/homa/internal/config"
	"github.com/MrJamesThe3rd/homa/internal/database"
	"github.com/MrJamesThe3rd/homa/internal/export"
	"github.com/MrJamesThe3rd/homa/internal/importer"
	"github.com/MrJamesThe3rd/homa/internal/snapshot"
	"github.com/MrJamesThe3rd/homa/internal/snapshot/filestore"
	"github.com/MrJamesThe3rd/homa/internal/snapshot/memstore"
	"github.com/MrJamesThe3rd/homa/internal/snapshot/redisstore"
	snapshotStore "github.com/MrJamesThe3rd/homa/internal/snapshot/store"
)

type App struct {
	Buildings *building.Service
	AI        *ai.Service
	Export    *export.Service
	Importer  *importer.Service

	closers []io.Closer
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	store, err := a.openStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	buildings, err := building.NewService(ctx, snapshot.NewRepository(store))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("loading building data: %w", err)
	}

	var gen ai.Generator

	if cfg.Gemini.APIKey != "" {
		client, err := gemini.New(ctx, cfg.Gemini.APIKey)
		if err != nil {
			a.Close()
			return nil, err
		}

		a.closers = append(a.closers, client)
		gen = client
	} else {
		slog.Warn("GEMINI_API_KEY not set, assistant replies are disabled")
	}

	a.Buildings = buildings
	a.AI = ai.NewService(gen, cfg.Gemini.Model, cfg.Gemini.Timeout, cfg.Issuer.Name)
	a.Export = export.NewService(cfg.App.Locale, export.Issuer{
		Name:    cfg.Issuer.Name,
		Address: cfg.Issuer.Address,
		Phone:   cfg.Issuer.Phone,
	}, cfg.PDF.FontFile)
	a.Importer = importer.NewService(buildings)

	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}

		a.closers = append(a.closers, db)

		if err := database.Migrate(ctx, db); err != nil {
			return nil, err
		}

		return snapshotStore.New(db), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		a.closers = append(a.closers, client)

		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("pinging redis: %w", err)
		}

		return redisstore.New(client, cfg.Redis.Prefix), nil
	case "file":
		return filestore.New(cfg.Storage.Dir)
	case "memory":
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			slog.Error("failed to close resource", "error", err)
		}
	}
}
