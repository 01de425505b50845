package embed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/poiesic/vectorit/ai"
	"github.com/poiesic/vectorit/core"
)

const defaultRetryBaseDelay = 500 * time.Millisecond

// Config holds the settings for a Generator.
type Config struct {
	// Model is the embedding model identifier stamped onto every embedding.
	Model string

	// Provider names the backend that produced the vectors.
	Provider string

	// BatchSize is the number of chunk texts sent per provider call.
	BatchSize int

	// Retry governs how failed provider calls are repeated.
	Retry RetryPolicy

	// Dimensions, when non-zero, is the expected vector width. Every
	// returned vector is checked against it. When zero, the width of the
	// first vector becomes the expectation for the rest of the job.
	Dimensions int

	// Concurrency is the number of batches embedded at once. Zero or one
	// means batches are sent sequentially.
	Concurrency int

	// RateLimit caps provider calls per second across all of this
	// generator's jobs. Zero disables throttling.
	RateLimit float64

	// Normalize rescales every vector to unit length before it is
	// returned. Useful when the index measures cosine similarity via dot
	// product.
	Normalize bool
}

// Validate checks the configuration for values that can never work.
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, c.BatchSize)
	}
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxAttempts, c.Retry.MaxAttempts)
	}
	return nil
}

// Generator turns ordered chunks into ordered embeddings via batched,
// retrying provider calls. Safe for concurrent use across jobs.
type Generator struct {
	embedder  ai.Embedder
	cfg       Config
	limiter   *rate.Limiter
	normalize bool
	logger    *slog.Logger
}

// Option configures a Generator during construction.
type Option func(*Generator) error

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		if logger != nil {
			g.logger = logger
		}
		return nil
	}
}

// WithRateLimiter throttles provider calls with a caller-owned limiter,
// replacing any limiter built from Config.RateLimit. Each batch waits for
// one token before the call is made.
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(g *Generator) error {
		g.limiter = limiter
		return nil
	}
}

// New creates a Generator. The embedder must be non-nil: a missing provider
// fails here, before any job touches the network.
func New(embedder ai.Embedder, cfg Config, opts ...Option) (*Generator, error) {
	if embedder == nil {
		return nil, ErrNotConfigured
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Retry.BaseDelay <= 0 {
		cfg.Retry.BaseDelay = defaultRetryBaseDelay
	}

	g := &Generator{
		embedder:  embedder,
		cfg:       cfg,
		normalize: cfg.Normalize,
		logger:    slog.Default(),
	}
	if cfg.RateLimit > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	g.logger = g.logger.With("component", "embedder")
	return g, nil
}

// Generate embeds the chunk texts and returns one ChunkEmbedding per chunk,
// in input order. Provider failures are retried per batch; count and
// dimension mismatches are terminal.
func (g *Generator) Generate(ctx context.Context, chunks []core.TextChunk) ([]core.ChunkEmbedding, error) {
	if g == nil || g.embedder == nil {
		return nil, ErrNotConfigured
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	batches := (len(chunks) + g.cfg.BatchSize - 1) / g.cfg.BatchSize
	vectorsByBatch := make([][][]float32, batches)

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(max(g.cfg.Concurrency, 1))

	for b := range batches {
		start := b * g.cfg.BatchSize
		batch := chunks[start:min(start+g.cfg.BatchSize, len(chunks))]
		batchNum := b + 1

		grp.Go(func() error {
			// A failed sibling batch cancels the group; later batches must
			// not reach the provider after that.
			if err := gctx.Err(); err != nil {
				return err
			}

			texts := make([]string, len(batch))
			for i, chunk := range batch {
				texts[i] = chunk.Text
			}

			if g.limiter != nil {
				if err := g.limiter.Wait(gctx); err != nil {
					return fmt.Errorf("embed batch %d/%d: %w", batchNum, batches, err)
				}
			}

			var vectors [][]float32
			err := g.cfg.Retry.Execute(gctx, func() error {
				var callErr error
				vectors, callErr = g.embedder.EmbedTexts(gctx, texts)
				return callErr
			})
			if err != nil {
				return fmt.Errorf("embed batch %d/%d after %d attempts: %w", batchNum, batches, g.cfg.Retry.MaxAttempts, err)
			}

			if len(vectors) != len(batch) {
				return fmt.Errorf("%w: batch %d/%d returned %d vectors for %d texts", ErrCountMismatch, batchNum, batches, len(vectors), len(batch))
			}

			vectorsByBatch[b] = vectors
			g.logger.Debug("embedded batch", "batch", batchNum, "batches", batches, "size", len(batch))
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	// Dimension checks and assembly run over the collected batches in input
	// order, so inference from the first vector stays deterministic even
	// when batches were embedded concurrently.
	expected := g.cfg.Dimensions
	out := make([]core.ChunkEmbedding, 0, len(chunks))
	for b, vectors := range vectorsByBatch {
		batch := chunks[b*g.cfg.BatchSize : min((b+1)*g.cfg.BatchSize, len(chunks))]
		for i, vector := range vectors {
			if expected == 0 {
				expected = len(vector)
			}
			if len(vector) != expected {
				return nil, fmt.Errorf("%w: chunk %d has %d dimensions, want %d", ErrDimensionMismatch, batch[i].Index, len(vector), expected)
			}
			if g.normalize {
				vector = NormalizeVector(vector)
			}
			out = append(out, core.ChunkEmbedding{
				Index:    batch[i].Index,
				ChunkID:  batch[i].ChunkID,
				Vector:   vector,
				Model:    g.cfg.Model,
				Provider: g.cfg.Provider,
				Metadata: batch[i].Metadata,
			})
		}
	}

	return out, nil
}
