// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/poiesic/vectorit/core"
)

// registrySchema tracks which collections exist and at what vector size.
// The registry is the source of truth for size-conflict detection.
const registrySchema = `
CREATE TABLE IF NOT EXISTS vector_collections (
	name        text PRIMARY KEY,
	vector_size integer NOT NULL,
	created_at  timestamptz NOT NULL DEFAULT now()
)`

const upsertSQL = `
INSERT INTO %s (id, embedding, payload, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (id) DO UPDATE SET
	embedding  = EXCLUDED.embedding,
	payload    = EXCLUDED.payload,
	updated_at = now()`

// querier is the subset of pgxpool.Pool the store's operations run on,
// seamed so the collection and upsert logic can be tested without a server.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Writer is the surface the pipeline needs from a vector index.
type Writer interface {
	// ResolveCollection maps tenant identity to a collection name.
	ResolveCollection(firmID, userID string) (string, error)

	// EnsureCollection makes the collection available at the given vector
	// size. Idempotent; a size disagreement is a hard conflict.
	EnsureCollection(ctx context.Context, name string, vectorSize int) error

	// Upsert writes one point per chunk/embedding pair and returns the
	// ordered point ids. Point ids are deterministic, so repeating the call
	// overwrites rather than duplicates.
	Upsert(ctx context.Context, collection, fileID string, chunks []core.TextChunk, embeddings []core.ChunkEmbedding) ([]string, error)
}

// Store implements Writer on Postgres with the pgvector extension. Each
// collection is a table of (id, embedding, payload) rows plus a row in the
// collection registry. Safe for concurrent use across jobs.
type Store struct {
	pool   *pgxpool.Pool
	db     querier
	logger *slog.Logger
}

// Option configures a Store during construction.
type Option func(*Store) error

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// NewStore connects to Postgres, enables the vector extension, and prepares
// the collection registry.
func NewStore(ctx context.Context, connString string, opts ...Option) (*Store, error) {
	// RegisterTypes needs the vector type to exist, so the extension is
	// created over a plain connection before the pool's AfterConnect hook
	// can run.
	setup, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to index: %w", err)
	}
	if _, err := setup.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		setup.Close(ctx)
		return nil, fmt.Errorf("enable vector extension: %w", err)
	}
	if _, err := setup.Exec(ctx, registrySchema); err != nil {
		setup.Close(ctx)
		return nil, fmt.Errorf("prepare collection registry: %w", err)
	}
	if err := setup.Close(ctx); err != nil {
		return nil, fmt.Errorf("close setup connection: %w", err)
	}

	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse index dsn: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open index pool: %w", err)
	}

	s := &Store{pool: pool, db: pool, logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			pool.Close()
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "index")

	return s, nil
}

// ResolveCollection implements Writer with the package-level naming rules.
func (s *Store) ResolveCollection(firmID, userID string) (string, error) {
	return ResolveCollection(firmID, userID)
}

// EnsureCollection is a no-op when the collection already exists at the
// requested vector size, creates it when absent, and fails with
// ErrCollectionConflict when it exists at a different size.
func (s *Store) EnsureCollection(ctx context.Context, name string, vectorSize int) error {
	if err := validateCollection(name); err != nil {
		return err
	}
	if vectorSize <= 0 {
		return fmt.Errorf("vector size must be positive, got %d", vectorSize)
	}

	var existing int
	err := s.db.QueryRow(ctx, "SELECT vector_size FROM vector_collections WHERE name = $1", name).Scan(&existing)
	switch {
	case err == nil:
		if existing != vectorSize {
			return fmt.Errorf("%w: %s has %d, want %d", ErrCollectionConflict, name, existing, vectorSize)
		}
		return nil
	case !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("look up collection %s: %w", name, err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create collection: %w", err)
	}
	defer tx.Rollback(ctx)

	// The collection name passed validateCollection, so interpolating it
	// into DDL is safe. Identifiers cannot be bound as parameters.
	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         uuid PRIMARY KEY,
			embedding  vector(%d) NOT NULL,
			payload    jsonb NOT NULL DEFAULT '{}'::jsonb,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`, name, vectorSize)
	if _, err := tx.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)`, name, name)
	if _, err := tx.Exec(ctx, createIndex); err != nil {
		return fmt.Errorf("index collection %s: %w", name, err)
	}

	if _, err := tx.Exec(ctx,
		"INSERT INTO vector_collections (name, vector_size) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING",
		name, vectorSize); err != nil {
		return fmt.Errorf("register collection %s: %w", name, err)
	}

	// A concurrent worker may have won the registration; re-read and
	// compare rather than trusting our own insert.
	if err := tx.QueryRow(ctx, "SELECT vector_size FROM vector_collections WHERE name = $1", name).Scan(&existing); err != nil {
		return fmt.Errorf("confirm collection %s: %w", name, err)
	}
	if existing != vectorSize {
		return fmt.Errorf("%w: %s has %d, want %d", ErrCollectionConflict, name, existing, vectorSize)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit collection %s: %w", name, err)
	}

	s.logger.Info("created collection", "collection", name, "vector_size", vectorSize)
	return nil
}

// Upsert writes all points in a single batched transaction. Either every
// point lands or none do.
func (s *Store) Upsert(ctx context.Context, collection, fileID string, chunks []core.TextChunk, embeddings []core.ChunkEmbedding) ([]string, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	points, err := BuildPoints(fileID, chunks, embeddings)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, nil
	}

	stmt := fmt.Sprintf(upsertSQL, collection)
	batch := &pgx.Batch{}
	ids := make([]string, len(points))
	for i, point := range points {
		ids[i] = point.ID
		batch.Queue(stmt, point.ID, pgvector.NewVector(point.Vector), point.Payload)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	results := tx.SendBatch(ctx, batch)
	var execErr error
	for range points {
		if _, err := results.Exec(); err != nil {
			execErr = err
			break
		}
	}
	if err := results.Close(); err != nil && execErr == nil {
		execErr = err
	}
	if execErr != nil {
		return nil, fmt.Errorf("upsert %d points into %s: %w", len(points), collection, execErr)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit upsert into %s: %w", collection, err)
	}

	s.logger.Debug("upserted points", "collection", collection, "count", len(points), "file_id", fileID)
	return ids, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
