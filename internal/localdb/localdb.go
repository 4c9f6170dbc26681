// Package localdb serializes every read-modify-write of the local snapshot.
package localdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"course-catalog/internal/domain"
	"course-catalog/internal/logger"
	"course-catalog/internal/migrate"
	"course-catalog/internal/store"
)

// DB is the local backend. Each call reconciles the stored snapshot, hands it
// to the callback and, for Update, writes it back, all under one lock.
type DB struct {
	st  store.Store
	mu  sync.Mutex
	now func() time.Time
	log *logger.Logger
}

type Option func(*DB)

// WithClock overrides time.Now, used for seed timestamps and defaults.
func WithClock(now func() time.Time) Option {
	return func(d *DB) { d.now = now }
}

func New(st store.Store, log *logger.Logger, opts ...Option) *DB {
	if log == nil {
		log = logger.Nop()
	}
	d := &DB{st: st, now: time.Now, log: log.With("component", "localdb")}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Now returns the clock reading used for new rows.
func (d *DB) Now() time.Time {
	return d.now()
}

// View runs fn against the reconciled snapshot. Changes made by fn are
// discarded.
func (d *DB) View(ctx context.Context, fn func(db *domain.Database) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	db, _, err := migrate.Reconcile(ctx, d.st, d.now(), d.log)
	if err != nil {
		return err
	}
	return fn(db)
}

// Update runs fn against the reconciled snapshot and persists the result.
// If fn returns an error nothing is written.
func (d *DB) Update(ctx context.Context, fn func(db *domain.Database) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	db, _, err := migrate.Reconcile(ctx, d.st, d.now(), d.log)
	if err != nil {
		return err
	}
	work := db.Clone()
	if err := fn(work); err != nil {
		return err
	}
	if err := d.st.Write(ctx, work); err != nil {
		return fmt.Errorf("localdb: %w", err)
	}
	return nil
}

// Migrate reconciles the snapshot and reports what changed.
func (d *DB) Migrate(ctx context.Context) (migrate.Report, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, rep, err := migrate.Reconcile(ctx, d.st, d.now(), d.log)
	return rep, err
}

// Snapshot returns a reconciled copy of the whole database.
func (d *DB) Snapshot(ctx context.Context) (*domain.Database, error) {
	var out *domain.Database
	err := d.View(ctx, func(db *domain.Database) error {
		out = db.Clone()
		return nil
	})
	return out, err
}
