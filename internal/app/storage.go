package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/dndsheet/internal/adapter/badger"
	"github.com/heartmarshall/dndsheet/internal/adapter/file"
	"github.com/heartmarshall/dndsheet/internal/adapter/postgres"
	"github.com/heartmarshall/dndsheet/internal/adapter/snapshot"
	"github.com/heartmarshall/dndsheet/internal/adapter/sqlite"
	"github.com/heartmarshall/dndsheet/internal/app/seeder"
	"github.com/heartmarshall/dndsheet/internal/app/seeder/dataset"
	"github.com/heartmarshall/dndsheet/internal/config"
	"github.com/heartmarshall/dndsheet/internal/service/sheet"
	"github.com/heartmarshall/dndsheet/pkg/idgen"
)

// OpenSlot opens the snapshot backend selected by cfg.Driver.
// Caller must Close the slot.
func OpenSlot(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (snapshot.Slot, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		return slotOrNil[*badger.Slot](badger.Open(badger.Config{
			Path:           cfg.Path,
			SyncWrites:     cfg.Badger.SyncWrites,
			GCInterval:     cfg.Badger.GCInterval,
			GCDiscardRatio: cfg.Badger.GCDiscardRatio,
			Logger:         log,
		}))
	case config.DriverFile:
		return slotOrNil[*file.Slot](file.Open(cfg.Path))
	case config.DriverSQLite:
		return slotOrNil[*sqlite.Slot](sqlite.Open(ctx, cfg.Path))
	case config.DriverPostgres:
		return slotOrNil[*postgres.Slot](postgres.Open(ctx, cfg.Postgres, log))
	case config.DriverMemory:
		return snapshot.NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// slotOrNil keeps a failed open from leaking a typed nil into the interface.
func slotOrNil[S snapshot.Slot](s S, err error) (snapshot.Slot, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Store bundles the opened slot with the repository and the sheet service
// built on top of it.
type Store struct {
	Slot  snapshot.Slot
	Repo  *snapshot.Repo
	Seeds *seeder.Loader
	Sheet *sheet.Service
}

// OpenStore wires storage, seeding and the sheet service. The service is not
// hydrated; call Store.Sheet.Hydrate when the persisted state is wanted.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Store, error) {
	codec, err := snapshot.CodecByName(cfg.Storage.Codec)
	if err != nil {
		return nil, err
	}

	slot, err := OpenSlot(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}

	repo := snapshot.New(slot, codec, cfg.Storage.Namespace)
	seeds := seeder.NewLoader(log, dataset.Source{Path: cfg.Seed.DatasetPath}, idgen.New)

	log.Info("storage opened",
		slog.String("driver", cfg.Storage.Driver),
		slog.String("codec", codec.Name()),
		slog.String("namespace", repo.Namespace()),
	)

	return &Store{
		Slot:  slot,
		Repo:  repo,
		Seeds: seeds,
		Sheet: sheet.NewService(log, repo, seeds, idgen.New),
	}, nil
}

// Close releases the slot.
func (s *Store) Close() error {
	if s == nil || s.Slot == nil {
		return errors.New("store not open")
	}
	return s.Slot.Close()
}
