package vectorit

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/vectorit/ai/mock"
	"github.com/poiesic/vectorit/chunker"
	"github.com/poiesic/vectorit/core"
	"github.com/poiesic/vectorit/status"
)

// recordingWriter implements index.Writer without a database.
type recordingWriter struct {
	collection  string
	ensuredSize int
	chunks      []core.TextChunk
	embeddings  []core.ChunkEmbedding
}

func (w *recordingWriter) ResolveCollection(firmID, userID string) (string, error) {
	return w.collection, nil
}

func (w *recordingWriter) EnsureCollection(ctx context.Context, name string, vectorSize int) error {
	w.ensuredSize = vectorSize
	return nil
}

func (w *recordingWriter) Upsert(ctx context.Context, collection, fileID string, chunks []core.TextChunk, embeddings []core.ChunkEmbedding) ([]string, error) {
	w.chunks = chunks
	w.embeddings = embeddings
	ids := make([]string, len(chunks))
	for i, chunk := range chunks {
		ids[i] = chunk.ChunkID
	}
	return ids, nil
}

// stubDownloader serves one canned blob.
type stubDownloader struct {
	content []byte
}

func (s stubDownloader) Download(ctx context.Context, blobPath string) ([]byte, error) {
	return s.content, nil
}

// recordingReporter captures status transitions.
type recordingReporter struct {
	statuses []core.JobStatus
	infos    int
}

func (r *recordingReporter) UpdateStatus(ctx context.Context, fileID string, jobStatus core.JobStatus, errorMessage string) error {
	r.statuses = append(r.statuses, jobStatus)
	return nil
}

func (r *recordingReporter) UpdateIndexInfo(ctx context.Context, fileID, collection string, pointIDs []string) error {
	r.infos++
	return nil
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 512, cfg.Chunk.ChunkSize)
	assert.Equal(t, 64, cfg.Chunk.Overlap)
	assert.Equal(t, chunker.MethodSentence, cfg.Chunk.Method)
	assert.Equal(t, chunker.SchemeHeuristic, cfg.Tokenizer)
	assert.Equal(t, 16, cfg.Embed.BatchSize)
	assert.Equal(t, 3, cfg.Embed.Retry.MaxAttempts)
	assert.NotNil(t, cfg.AI)
	assert.Empty(t, cfg.Status.BaseURL, "reporting defaults to disabled")
}

func TestNewService_WithInjectedCollaborators(t *testing.T) {
	svc, err := NewService(context.Background(), DefaultConfig(),
		WithEmbedder(&mock.MockEmbedder{}),
		WithIndexWriter(&recordingWriter{collection: "kb_user_test"}),
		WithDownloader(stubDownloader{content: []byte("hello")}),
		WithReporter(status.NoopReporter{}),
	)
	require.NoError(t, err)
	require.NotNil(t, svc)
	defer svc.Close()

	assert.NotNil(t, svc.Orchestrator())
}

func TestNewService_InvalidChunkConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chunk.Overlap = cfg.Chunk.ChunkSize

	_, err := NewService(context.Background(), cfg,
		WithEmbedder(&mock.MockEmbedder{}),
		WithIndexWriter(&recordingWriter{}),
		WithDownloader(stubDownloader{}),
		WithReporter(status.NoopReporter{}),
	)
	assert.ErrorIs(t, err, chunker.ErrOverlapTooLarge)
}

func TestNewService_UnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AI.Provider = "watermelon"

	_, err := NewService(context.Background(), cfg,
		WithIndexWriter(&recordingWriter{}),
		WithDownloader(stubDownloader{}),
		WithReporter(status.NoopReporter{}),
	)
	assert.Error(t, err)
}

func TestService_ProcessesJobEndToEnd(t *testing.T) {
	text := strings.Repeat("The quarterly revenue grew across all regions. ", 40)
	writer := &recordingWriter{collection: "kb_firm_acme"}
	reporter := &recordingReporter{}

	svc, err := NewService(context.Background(), DefaultConfig(),
		WithEmbedder(&mock.MockEmbedder{}),
		WithIndexWriter(writer),
		WithDownloader(stubDownloader{content: []byte(text)}),
		WithReporter(reporter),
	)
	require.NoError(t, err)
	defer svc.Close()

	job := &core.IngestionJob{
		FileID:   "file-1",
		UserID:   "u-1",
		FirmID:   "acme",
		Filename: "report.txt",
		FileType: "txt",
		BlobPath: "uploads/report.txt",
	}
	err = svc.Orchestrator().Process(context.Background(), job)
	require.NoError(t, err)

	// The document ran through real parsing, chunking, and embedding.
	require.NotEmpty(t, writer.chunks)
	require.Len(t, writer.embeddings, len(writer.chunks))
	for _, chunk := range writer.chunks {
		assert.LessOrEqual(t, chunk.TokenCount, 512)
		assert.Equal(t, "report.txt", chunk.Metadata["filename"])
	}
	for _, emb := range writer.embeddings {
		assert.Len(t, emb.Vector, writer.ensuredSize)
		assert.Equal(t, "nomic-embed-text", emb.Model)
	}

	assert.Equal(t, []core.JobStatus{core.StatusProcessing, core.StatusIndexed}, reporter.statuses)
	assert.Equal(t, 1, reporter.infos)
}

func TestService_Close(t *testing.T) {
	svc, err := NewService(context.Background(), DefaultConfig(),
		WithEmbedder(&mock.MockEmbedder{}),
		WithIndexWriter(&recordingWriter{}),
		WithDownloader(stubDownloader{}),
		WithReporter(status.NoopReporter{}),
	)
	require.NoError(t, err)

	// Close is idempotent.
	assert.NoError(t, svc.Close())
	assert.NoError(t, svc.Close())
}
