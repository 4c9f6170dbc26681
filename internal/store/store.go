// Package store persists the local fallback snapshot as a single blob under
// one well-known key. Backends only move bytes; the snapshot codec decides
// what those bytes look like.
package store

import (
	"context"
	"errors"
	"fmt"

	"course-catalog/internal/domain"
	"course-catalog/internal/logger"
)

// Key names the blob holding the whole snapshot, on every backend.
const Key = "_mockdb_v1"

// ErrNotFound is returned by a Blob that holds nothing under Key yet.
var ErrNotFound = errors.New("store: snapshot not found")

// Store is the Local Store contract. A missing or undecodable snapshot is
// reported as absent (ok false, nil error). Any other read failure is
// returned so callers never mistake an unreachable snapshot for an empty one.
type Store interface {
	Read(ctx context.Context) (db *domain.Database, ok bool, err error)
	Write(ctx context.Context, db *domain.Database) error
}

// Blob is a byte-level backend for the snapshot.
type Blob interface {
	Get(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, data []byte) error
	Close() error
}

// Snapshots adapts a Blob and a Codec into a Store.
type Snapshots struct {
	blob  Blob
	codec Codec
	log   *logger.Logger
}

var _ Store = (*Snapshots)(nil)

func New(blob Blob, codec Codec, log *logger.Logger) *Snapshots {
	if codec == nil {
		codec = JSONCodec{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Snapshots{blob: blob, codec: codec, log: log.With("component", "store", "codec", codec.Name())}
}

func (s *Snapshots) Read(ctx context.Context) (*domain.Database, bool, error) {
	raw, err := s.blob.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: read: %w", err)
	}
	db, err := s.codec.Decode(raw)
	if err != nil {
		s.log.Warn("snapshot decode failed, treating as absent", "error", err, "bytes", len(raw))
		return nil, false, nil
	}
	db.EnsureCollections()
	return db, true, nil
}

func (s *Snapshots) Write(ctx context.Context, db *domain.Database) error {
	if db == nil {
		return errors.New("store: nil snapshot")
	}
	raw, err := s.codec.Encode(db)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if err := s.blob.Put(ctx, raw); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	return nil
}

// Raw returns the persisted bytes as-is, for backups.
func (s *Snapshots) Raw(ctx context.Context) ([]byte, error) {
	return s.blob.Get(ctx)
}

func (s *Snapshots) Codec() Codec { return s.codec }

func (s *Snapshots) Close() error {
	return s.blob.Close()
}
