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


package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/vectorit/blob"
	"github.com/poiesic/vectorit/core"
	"github.com/poiesic/vectorit/index"
	"github.com/poiesic/vectorit/status"
)

// DocumentParser turns raw file bytes into a normalized document.
// *parser.Parser satisfies this.
type DocumentParser interface {
	Parse(content []byte, fileType core.FileType, filename string) (*core.ParsedDocument, error)
}

// TextChunker splits normalized text into token-bounded chunks.
// *chunker.Chunker satisfies this.
type TextChunker interface {
	Chunk(text string, baseMetadata map[string]string, idPrefix string) ([]core.TextChunk, error)
}

// EmbeddingGenerator turns an ordered chunk sequence into an aligned
// embedding sequence. *embed.Generator satisfies this.
type EmbeddingGenerator interface {
	Generate(ctx context.Context, chunks []core.TextChunk) ([]core.ChunkEmbedding, error)
}

// Orchestrator runs one ingestion job through the full pipeline: download,
// parse, chunk, embed, index, report. Stages run strictly in order and a job
// always ends in a terminal state, indexed or failed; there is no resumable
// intermediate state.
//
// An Orchestrator is immutable after construction and safe for concurrent
// use; the consumer runs one Process call per in-flight delivery.
type Orchestrator struct {
	blobs     blob.Downloader
	parser    DocumentParser
	chunker   TextChunker
	generator EmbeddingGenerator
	writer    index.Writer
	reporter  status.Reporter
	logger    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// New creates an Orchestrator. Every collaborator is required; pass
// status.NoopReporter for local runs that have no owning system to notify.
func New(
	blobs blob.Downloader,
	docParser DocumentParser,
	textChunker TextChunker,
	generator EmbeddingGenerator,
	writer index.Writer,
	reporter status.Reporter,
	opts ...Option,
) (*Orchestrator, error) {
	if blobs == nil {
		return nil, ErrDownloaderRequired
	}
	if docParser == nil {
		return nil, ErrParserRequired
	}
	if textChunker == nil {
		return nil, ErrChunkerRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	if writer == nil {
		return nil, ErrWriterRequired
	}
	if reporter == nil {
		return nil, ErrReporterRequired
	}

	o := &Orchestrator{
		blobs:     blobs,
		parser:    docParser,
		chunker:   textChunker,
		generator: generator,
		writer:    writer,
		reporter:  reporter,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	o.logger = o.logger.With("component", "pipeline")
	return o, nil
}

// Process runs a single job to a terminal state. On success the owning
// system has been told the file is indexed; on failure it has been told the
// file failed (best effort) and the error is returned so the caller can
// dead-letter the message. Every returned error is a *StageError.
func (o *Orchestrator) Process(ctx context.Context, job *core.IngestionJob) error {
	if err := core.ValidateJob(job); err != nil {
		// No status callback for invalid jobs: the file id cannot be trusted.
		return &StageError{Stage: StageValidate, Err: err}
	}

	logger := o.logger.With("file_id", job.FileID, "filename", job.Filename)
	logger.Info("processing ingestion job", "file_type", job.FileType, "blob_path", job.BlobPath)

	// The owning system shows pickup before any heavy work starts.
	if err := o.reporter.UpdateStatus(ctx, job.FileID, core.StatusProcessing, ""); err != nil {
		if errors.Is(err, status.ErrFileNotFound) {
			// The file record is gone; indexing it would strand orphan vectors.
			return &StageError{Stage: StageReport, Err: err}
		}
		logger.Warn("unable to report processing status", "err", err)
	}

	collection, pointIDs, err := o.run(ctx, logger, job)
	if err != nil {
		o.reportFailure(ctx, logger, job.FileID, err)
		return err
	}

	if err := o.reporter.UpdateIndexInfo(ctx, job.FileID, collection, pointIDs); err != nil {
		wrapped := &StageError{Stage: StageReport, Err: err}
		o.reportFailure(ctx, logger, job.FileID, wrapped)
		return wrapped
	}
	if err := o.reporter.UpdateStatus(ctx, job.FileID, core.StatusIndexed, ""); err != nil {
		wrapped := &StageError{Stage: StageReport, Err: err}
		o.reportFailure(ctx, logger, job.FileID, wrapped)
		return wrapped
	}

	logger.Info("file indexed", "collection", collection, "points", len(pointIDs))
	return nil
}

// run executes the download-through-upsert stages and tags each failure
// with its stage.
func (o *Orchestrator) run(ctx context.Context, logger *slog.Logger, job *core.IngestionJob) (string, []string, error) {
	// Resolving the type first keeps an unsupported format from costing a
	// blob download.
	fileType, err := core.ParseFileType(job.FileType)
	if err != nil {
		return "", nil, &StageError{Stage: StageParse, Err: err}
	}

	content, err := o.blobs.Download(ctx, job.BlobPath)
	if err != nil {
		return "", nil, &StageError{Stage: StageDownload, Err: err}
	}
	logger.Debug("downloaded blob", "bytes", len(content))

	doc, err := o.parser.Parse(content, fileType, job.Filename)
	if err != nil {
		return "", nil, &StageError{Stage: StageParse, Err: err}
	}
	logger.Debug("parsed document", "words", doc.Metadata.WordCount, "pages", doc.Metadata.PageCount)

	meta := map[string]string{"filename": job.Filename}
	if doc.Metadata.Title != "" {
		meta["title"] = doc.Metadata.Title
	}

	chunks, err := o.chunker.Chunk(doc.Text, meta, job.FileID)
	if err != nil {
		return "", nil, &StageError{Stage: StageChunk, Err: err}
	}

	embeddings, err := o.generator.Generate(ctx, chunks)
	if err != nil {
		return "", nil, &StageError{Stage: StageEmbed, Err: err}
	}
	if len(embeddings) != len(chunks) {
		return "", nil, &StageError{
			Stage: StageEmbed,
			Err:   fmt.Errorf("embedding result mismatch. expected %d, received %d", len(chunks), len(embeddings)),
		}
	}

	collection, err := o.writer.ResolveCollection(job.FirmID, job.UserID)
	if err != nil {
		return "", nil, &StageError{Stage: StageIndex, Err: err}
	}

	if err := o.writer.EnsureCollection(ctx, collection, len(embeddings[0].Vector)); err != nil {
		return "", nil, &StageError{Stage: StageIndex, Err: err}
	}

	pointIDs, err := o.writer.Upsert(ctx, collection, job.FileID, chunks, embeddings)
	if err != nil {
		return "", nil, &StageError{Stage: StageIndex, Err: err}
	}
	logger.Debug("upserted points", "collection", collection, "points", len(pointIDs))

	return collection, pointIDs, nil
}

// reportFailure records the terminal failed state. Reporting is best effort:
// a failure here is logged and never replaces the original error.
func (o *Orchestrator) reportFailure(ctx context.Context, logger *slog.Logger, fileID string, cause error) {
	// Detached from the job context so a canceled job still gets recorded.
	ctx = context.WithoutCancel(ctx)
	if err := o.reporter.UpdateStatus(ctx, fileID, core.StatusFailed, cause.Error()); err != nil {
		logger.Error("unable to report failed status", "err", err)
	}
}
