package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-catalog/internal/config"
	"course-catalog/internal/domain"
	"course-catalog/internal/logger"
	"course-catalog/internal/seed"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sample() *domain.Database {
	db := seed.Build(fixedNow)
	db.Enrollments = append(db.Enrollments, domain.Enrollment{ID: 1, UserID: 1, CourseID: 2, Progress: 40})
	db.Counters.Enrollments = 1
	return db
}

func assertSameSnapshot(t *testing.T, want, got *domain.Database) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func roundTrip(t *testing.T, s *Snapshots) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Read(ctx)
	require.NoError(t, err)
	require.False(t, ok, "fresh store should be absent")

	want := sample()
	require.NoError(t, s.Write(ctx, want))

	got, ok, err := s.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assertSameSnapshot(t, want, got)
}

func TestSnapshots_MemoryJSON(t *testing.T) {
	roundTrip(t, New(NewMemoryBlob(), JSONCodec{}, logger.Nop()))
}

func TestSnapshots_MemoryBSON(t *testing.T) {
	roundTrip(t, New(NewMemoryBlob(), BSONCodec{}, logger.Nop()))
}

func TestSnapshots_MemoryBrotli(t *testing.T) {
	roundTrip(t, New(NewMemoryBlob(), Brotli{Inner: JSONCodec{}}, logger.Nop()))
	roundTrip(t, New(NewMemoryBlob(), Brotli{Inner: BSONCodec{}}, logger.Nop()))
}

func TestSnapshots_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mockdb.json")
	roundTrip(t, New(NewFileBlob(path), JSONCodec{}, logger.Nop()))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "mockdb.json", entries[0].Name())
}

func TestSnapshots_SQLite(t *testing.T) {
	blob, err := OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = blob.Close() })

	s := New(blob, JSONCodec{}, logger.Nop())
	roundTrip(t, s)

	// a second write replaces the row instead of adding one
	db := sample()
	db.Users[0].Name = "Renamed"
	require.NoError(t, s.Write(context.Background(), db))

	var n int
	require.NoError(t, blob.db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n))
	assert.Equal(t, 1, n)

	got, ok, err := s.Read(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Users[0].Name)
}

func TestSnapshots_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	blob, err := OpenRedis(ctx, addr, "catalog-test-"+t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = blob.rdb.Del(ctx, blob.key).Err()
		_ = blob.Close()
	})
	roundTrip(t, New(blob, JSONCodec{}, logger.Nop()))
}

func TestSnapshots_ReadFailsSoft(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		raw   []byte
	}{
		{"json garbage", JSONCodec{}, []byte("{not json")},
		{"json null", JSONCodec{}, []byte("null")},
		{"json wrong shape", JSONCodec{}, []byte(`{"courses":"nope"}`)},
		{"bson garbage", BSONCodec{}, []byte{0x01, 0x02}},
		{"bson empty", BSONCodec{}, []byte{}},
		{"brotli garbage", Brotli{Inner: JSONCodec{}}, []byte("plain text")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := NewMemoryBlob()
			blob.Set(tt.raw)
			db, ok, err := New(blob, tt.codec, logger.Nop()).Read(context.Background())
			assert.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, db)
		})
	}
}

// failingBlob holds data it cannot currently hand out.
type failingBlob struct{ MemoryBlob }

var errUnavailable = errors.New("i/o timeout")

func (f *failingBlob) Get(context.Context) ([]byte, error) { return nil, errUnavailable }

func TestSnapshots_ReadBackendErrorIsReturned(t *testing.T) {
	db, ok, err := New(&failingBlob{}, JSONCodec{}, logger.Nop()).Read(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errUnavailable)
	assert.False(t, ok)
	assert.Nil(t, db)
}

func TestSnapshots_ReadFillsCollections(t *testing.T) {
	blob := NewMemoryBlob()
	blob.Set([]byte(`{"courses":[{"id":7,"title":"Only"}]}`))

	db, ok, err := New(blob, JSONCodec{}, logger.Nop()).Read(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, db.Courses, 1)
	assert.NotNil(t, db.Users)
	assert.NotNil(t, db.Enrollments)
	assert.Nil(t, db.Meta)
	assert.Equal(t, 1, db.Version())
}

func TestSnapshots_WriteNil(t *testing.T) {
	err := New(NewMemoryBlob(), nil, nil).Write(context.Background(), nil)
	assert.Error(t, err)
}

func TestCodecs_Deterministic(t *testing.T) {
	for _, c := range []Codec{JSONCodec{}, BSONCodec{}, Brotli{Inner: JSONCodec{}}} {
		t.Run(c.Name(), func(t *testing.T) {
			a, err := c.Encode(sample())
			require.NoError(t, err)
			b, err := c.Encode(sample())
			require.NoError(t, err)
			assert.Equal(t, a, b)
		})
	}
}

func TestJSONCodec_WireNames(t *testing.T) {
	raw, err := JSONCodec{}.Encode(sample())
	require.NoError(t, err)
	for _, key := range []string{`"_meta":{"version":2}`, `"_counters":`, `"publishedAt":`, `"userId":1`, `"courseId":2`} {
		assert.Contains(t, string(raw), key)
	}
}

func TestBrotli_Compresses(t *testing.T) {
	plain, err := JSONCodec{}.Encode(sample())
	require.NoError(t, err)
	packed, err := Brotli{Inner: JSONCodec{}}.Encode(sample())
	require.NoError(t, err)
	assert.Less(t, len(packed), len(plain))
}

func TestCodecFor(t *testing.T) {
	c, err := CodecFor("", false)
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	c, err = CodecFor("bson", true)
	require.NoError(t, err)
	assert.Equal(t, "bson+br", c.Name())

	_, err = CodecFor("xml", false)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	cfg := config.Defaults()
	cfg.StoreBackend = "memory"
	s, err := Open(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	roundTrip(t, s)

	cfg = config.Defaults()
	cfg.StorePath = filepath.Join(t.TempDir(), "db.json")
	s, err = Open(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &FileBlob{}, s.blob)

	cfg.StoreBackend = "floppy"
	_, err = Open(ctx, cfg, logger.Nop())
	assert.ErrorContains(t, err, "unknown backend")

	cfg.StoreBackend = "file"
	cfg.StoreCodec = "yaml"
	_, err = Open(ctx, cfg, logger.Nop())
	assert.ErrorContains(t, err, "unknown codec")
}

func TestSnapshots_Raw(t *testing.T) {
	s := New(NewMemoryBlob(), JSONCodec{}, logger.Nop())
	_, err := s.Raw(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Write(context.Background(), sample()))
	raw, err := s.Raw(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"courses":[`)
}
