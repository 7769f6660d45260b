// Package seeder turns the bundled question dataset into the initial topic list.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/heartmarshall/dndsheet/internal/app/seeder/dataset"
	"github.com/heartmarshall/dndsheet/internal/domain"
	"github.com/heartmarshall/dndsheet/pkg/idgen"
)

// datasetSource yields the parsed sheet. Implemented by dataset.Source.
type datasetSource interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
}

// LoadInitialTopics groups records by topic name. Topics come out in the order
// their names are first seen, questions keep their record order. Topic ids are
// fresh; question ids reuse the source id so re-seeding from the same dataset
// reproduces the same question ids.
func LoadInitialTopics(records []domain.SeedRecord, newID idgen.Func) []domain.Topic {
	index := make(map[string]int)
	topics := make([]domain.Topic, 0)

	for _, r := range records {
		i, ok := index[r.Topic]
		if !ok {
			i = len(topics)
			index[r.Topic] = i
			topics = append(topics, domain.Topic{
				ID:        newID(),
				Title:     r.Topic,
				Questions: []domain.Question{},
			})
		}
		topics[i].Questions = append(topics[i].Questions, domain.Question{
			ID:    strconv.FormatInt(r.SourceID, 10),
			Title: r.Title,
			Link:  r.URL,
		})
	}

	for i := range topics {
		topics[i].Recount()
	}
	return topics
}

// Loader provides the initial topics for a fresh store.
type Loader struct {
	log    *slog.Logger
	source datasetSource
	newID  idgen.Func
}

// NewLoader creates a Loader.
func NewLoader(log *slog.Logger, source datasetSource, newID idgen.Func) *Loader {
	return &Loader{
		log:    log.With("component", "seeder"),
		source: source,
		newID:  newID,
	}
}

// InitialTopics loads the dataset and groups it into topics.
func (l *Loader) InitialTopics(ctx context.Context) ([]domain.Topic, error) {
	ds, err := l.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	if ds.Skipped > 0 {
		l.log.WarnContext(ctx, "dataset rows skipped",
			slog.String("sheet", ds.Slug),
			slog.Int("skipped", ds.Skipped),
		)
	}

	topics := LoadInitialTopics(ds.Records, l.newID)

	l.log.InfoContext(ctx, "dataset loaded",
		slog.String("sheet", ds.Slug),
		slog.Int("records", len(ds.Records)),
		slog.Int("topics", len(topics)),
	)

	return topics, nil
}
