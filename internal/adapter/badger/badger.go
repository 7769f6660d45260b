// Package badger stores the sheet snapshot in an embedded BadgerDB, the
// on-disk counterpart of the browser's local storage.
package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// Config holds BadgerDB settings.
type Config struct {
	// Path is the database directory. Ignored when InMemory is true.
	Path string
	// InMemory keeps everything in RAM. Useful for tests.
	InMemory bool
	// SyncWrites fsyncs every write.
	SyncWrites bool
	// GCInterval is how often value-log GC runs; 0 disables it.
	GCInterval time.Duration
	// GCDiscardRatio is the garbage ratio that triggers a rewrite.
	GCDiscardRatio float64
	// Logger receives BadgerDB's internal logs; nil silences them.
	Logger *slog.Logger
}

// DefaultConfig returns production defaults for the given directory.
func DefaultConfig(path string) Config {
	return Config{
		Path:           path,
		SyncWrites:     true,
		GCInterval:     5 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// InMemoryConfig returns a configuration for tests.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Slot is a snapshot.Slot backed by BadgerDB. Each namespace is one key.
type Slot struct {
	db       *badger.DB
	stopGC   chan struct{}
	doneGC   chan struct{}
	log      *slog.Logger
	inMemory bool
}

// Open opens (creating if needed) the database described by cfg.
// Caller must Close the slot.
func Open(cfg Config) (*Slot, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger: path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("badger: create directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger.With("component", "badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open: %w", err)
	}

	s := &Slot{db: db, log: cfg.Logger, inMemory: cfg.InMemory}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		s.stopGC = make(chan struct{})
		s.doneGC = make(chan struct{})
		go s.runGC(cfg.GCInterval, cfg.GCDiscardRatio)
	}
	return s, nil
}

// Get returns the payload stored under namespace.
func (s *Slot) Get(_ context.Context, namespace string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(namespace))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("badger: key %s: %w", namespace, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("badger: get %s: %w", namespace, err)
	}
	return out, nil
}

// Put replaces the payload stored under namespace.
func (s *Slot) Put(_ context.Context, namespace string, payload []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(namespace), payload)
	})
	if err != nil {
		return fmt.Errorf("badger: put %s: %w", namespace, err)
	}
	return nil
}

// Delete removes namespace. Missing keys are not an error.
func (s *Slot) Delete(_ context.Context, namespace string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(namespace))
	})
	if err != nil {
		return fmt.Errorf("badger: delete %s: %w", namespace, err)
	}
	return nil
}

// Ping reports whether the database is still open.
func (s *Slot) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger: database is closed")
	}
	return nil
}

// Close stops GC and closes the database.
func (s *Slot) Close() error {
	if s.stopGC != nil {
		close(s.stopGC)
		<-s.doneGC
	}
	return s.db.Close()
}

func (s *Slot) runGC(interval time.Duration, ratio float64) {
	defer close(s.doneGC)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.C:
			// ErrNoRewrite means there was nothing to collect.
			err := s.db.RunValueLogGC(ratio)
			if err != nil && !errors.Is(err, badger.ErrNoRewrite) && s.log != nil {
				s.log.Warn("badger value log GC error", slog.String("error", err.Error()))
			}
		}
	}
}
