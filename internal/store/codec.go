package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"go.mongodb.org/mongo-driver/bson"

	"course-catalog/internal/domain"
)

// Codec turns a snapshot into bytes and back. Encode must be deterministic:
// equal snapshots produce equal bytes.
type Codec interface {
	Name() string
	Encode(db *domain.Database) ([]byte, error)
	Decode(data []byte) (*domain.Database, error)
}

var errEmptySnapshot = errors.New("empty snapshot")

// JSONCodec stores the snapshot in the same shape the remote API speaks.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(db *domain.Database) ([]byte, error) {
	return json.Marshal(db)
}

func (JSONCodec) Decode(data []byte) (*domain.Database, error) {
	var db *domain.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, err
	}
	if db == nil {
		return nil, errEmptySnapshot
	}
	return db, nil
}

// BSONCodec stores the snapshot as a BSON document. Timestamps keep
// millisecond precision.
type BSONCodec struct{}

func (BSONCodec) Name() string { return "bson" }

func (BSONCodec) Encode(db *domain.Database) ([]byte, error) {
	return bson.Marshal(db)
}

func (BSONCodec) Decode(data []byte) (*domain.Database, error) {
	if len(data) == 0 {
		return nil, errEmptySnapshot
	}
	var db domain.Database
	if err := bson.Unmarshal(data, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// Brotli compresses whatever Inner produces.
type Brotli struct {
	Inner Codec
	Level int
}

func (b Brotli) Name() string { return b.Inner.Name() + "+br" }

func (b Brotli) Encode(db *domain.Database) ([]byte, error) {
	raw, err := b.Inner.Encode(db)
	if err != nil {
		return nil, err
	}
	level := b.Level
	if level == 0 {
		level = brotli.DefaultCompression
	}
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, level)
	if _, err := w.Write(raw); err != nil {
		return nil, fmt.Errorf("brotli: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("brotli: %w", err)
	}
	return buf.Bytes(), nil
}

func (b Brotli) Decode(data []byte) (*domain.Database, error) {
	raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("brotli: %w", err)
	}
	return b.Inner.Decode(raw)
}

// CodecFor resolves a codec by name ("json" or "bson").
func CodecFor(name string, compress bool) (Codec, error) {
	var c Codec
	switch name {
	case "", "json":
		c = JSONCodec{}
	case "bson":
		c = BSONCodec{}
	default:
		return nil, fmt.Errorf("store: unknown codec %q", name)
	}
	if compress {
		c = Brotli{Inner: c}
	}
	return c, nil
}
