package index

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/vectorit/core"
)

func TestPointID_Deterministic(t *testing.T) {
	first := PointID("file-1", 0)
	second := PointID("file-1", 0)
	assert.Equal(t, first, second, "same file and index must hash to the same id")

	_, err := uuid.Parse(first)
	assert.NoError(t, err, "point ids are uuids")
}

func TestPointID_DistinctInputs(t *testing.T) {
	base := PointID("file-1", 0)

	assert.NotEqual(t, base, PointID("file-1", 1), "different index, different id")
	assert.NotEqual(t, base, PointID("file-2", 0), "different file, different id")
}

func TestBuildPoints(t *testing.T) {
	chunks := []core.TextChunk{
		{Index: 0, ChunkID: "file-1:0", Text: "first chunk", Metadata: map[string]string{"filename": "a.txt"}},
		{Index: 1, ChunkID: "file-1:1", Text: "second chunk", Metadata: map[string]string{"filename": "a.txt"}},
	}
	embeddings := []core.ChunkEmbedding{
		{Index: 0, ChunkID: "file-1:0", Vector: []float32{0.1, 0.2}, Model: "nomic-embed-text", Provider: "openai"},
		{Index: 1, ChunkID: "file-1:1", Vector: []float32{0.3, 0.4}, Model: "nomic-embed-text", Provider: "openai"},
	}

	points, err := BuildPoints("file-1", chunks, embeddings)
	require.NoError(t, err)
	require.Len(t, points, 2)

	for i, point := range points {
		assert.Equal(t, PointID("file-1", i), point.ID)
		assert.Equal(t, embeddings[i].Vector, point.Vector)
		assert.Equal(t, "file-1", point.Payload.FileID)
		assert.Equal(t, i, point.Payload.ChunkIndex)
		assert.Equal(t, chunks[i].ChunkID, point.Payload.ChunkID)
		assert.Equal(t, chunks[i].Text, point.Payload.Text)
		assert.Equal(t, "nomic-embed-text", point.Payload.EmbeddingModel)
		assert.Equal(t, "openai", point.Payload.EmbeddingProvider)
		assert.Equal(t, "a.txt", point.Payload.Metadata["filename"])
	}
}

func TestBuildPoints_CountMismatch(t *testing.T) {
	chunks := []core.TextChunk{
		{Index: 0, Text: "first"},
		{Index: 1, Text: "second"},
	}
	embeddings := []core.ChunkEmbedding{
		{Index: 0, Vector: []float32{0.1}},
	}

	_, err := BuildPoints("file-1", chunks, embeddings)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCountMismatch)
}

func TestBuildPoints_RepeatedRunsYieldSameIDs(t *testing.T) {
	chunks := []core.TextChunk{{Index: 0, Text: "stable"}, {Index: 1, Text: "stable too"}}
	embeddings := []core.ChunkEmbedding{
		{Index: 0, Vector: []float32{0.1}},
		{Index: 1, Vector: []float32{0.2}},
	}

	first, err := BuildPoints("file-9", chunks, embeddings)
	require.NoError(t, err)
	second, err := BuildPoints("file-9", chunks, embeddings)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID, "re-ingestion must address the same points")
	}
}
