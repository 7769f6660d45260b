// Command seeder writes the initial checklist into the configured storage.
// It is intended to be run offline, before the first server start or to
// start over from a new dataset.
//
// Flags:
//
//	--dataset   path to a JSON or YAML sheet (default: seed.dataset_path, then the embedded sheet)
//	--dry-run   parse the dataset and print per-topic counts without writing
//	--force     replace an existing saved state
//
// Without --force an existing state is left untouched.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/dndsheet/internal/app"
	"github.com/heartmarshall/dndsheet/internal/app/seeder"
	"github.com/heartmarshall/dndsheet/internal/app/seeder/dataset"
	"github.com/heartmarshall/dndsheet/internal/config"
	"github.com/heartmarshall/dndsheet/internal/domain"
	"github.com/heartmarshall/dndsheet/pkg/idgen"
)

func main() {
	datasetFlag := flag.String("dataset", "", "path to a JSON or YAML sheet (default: embedded)")
	dryRunFlag := flag.Bool("dry-run", false, "parse the dataset without writing to storage")
	forceFlag := flag.Bool("force", false, "replace an existing saved state")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	// CLI flags override config.
	if *datasetFlag != "" {
		cfg.Seed.DatasetPath = *datasetFlag
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *dryRunFlag {
		if err := dryRun(ctx, logger, cfg.Seed.DatasetPath); err != nil {
			logger.Error("dry run failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if err := seed(ctx, logger, cfg, *forceFlag); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func dryRun(ctx context.Context, logger *slog.Logger, datasetPath string) error {
	loader := seeder.NewLoader(logger, dataset.Source{Path: datasetPath}, idgen.New)
	topics, err := loader.InitialTopics(ctx)
	if err != nil {
		return err
	}

	for _, t := range topics {
		logger.Info("topic",
			slog.String("title", t.Title),
			slog.Int("questions", t.TotalQuestions),
		)
	}
	logger.Info("dry run complete, nothing written", slog.Int("topics", len(topics)))
	return nil
}

func seed(ctx context.Context, logger *slog.Logger, cfg *config.Config, force bool) error {
	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	saved, loadErr := store.Repo.Load(ctx)
	if loadErr == nil {
		loadErr = saved.CheckIDs()
	}
	exists := loadErr == nil

	switch {
	case exists && !force:
		logger.Warn("saved state exists, leaving it alone; pass --force to replace it",
			slog.String("namespace", store.Repo.Namespace()),
		)
		return nil
	case force:
		if err := store.Sheet.Reset(ctx); err != nil {
			return err
		}
	default:
		if loadErr != nil && !errors.Is(loadErr, domain.ErrNotFound) {
			logger.Warn("replacing unreadable saved state", slog.String("error", loadErr.Error()))
		}
		if err := store.Sheet.Hydrate(ctx); err != nil {
			return err
		}
	}

	logger.Info("seeding complete",
		slog.String("namespace", store.Repo.Namespace()),
		slog.Int("topics", len(store.Sheet.State(ctx).Topics)),
	)
	return nil
}
