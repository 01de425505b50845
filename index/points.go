package index

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/poiesic/vectorit/core"
)

// Point is one (id, vector, payload) record destined for the index.
type Point struct {
	ID      string
	Vector  []float32
	Payload Payload
}

// Payload is the metadata stored alongside each vector. It is what a
// retrieval layer gets back with a search hit.
type Payload struct {
	FileID            string            `json:"file_id"`
	ChunkIndex        int               `json:"chunk_index"`
	ChunkID           string            `json:"chunk_id,omitempty"`
	Text              string            `json:"text"`
	EmbeddingModel    string            `json:"embedding_model,omitempty"`
	EmbeddingProvider string            `json:"embedding_provider,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// PointID derives the stable id for a (file, chunk index) pair. Name-based
// UUIDs under a fixed namespace make re-ingestion overwrite instead of
// duplicate: the same file and position always hash to the same id.
func PointID(fileID string, chunkIndex int) string {
	name := fmt.Sprintf("%s:%d", fileID, chunkIndex)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// BuildPoints pairs chunks with their embeddings into index points. The two
// sequences must align 1:1; any length difference fails before anything is
// written.
func BuildPoints(fileID string, chunks []core.TextChunk, embeddings []core.ChunkEmbedding) ([]Point, error) {
	if len(chunks) != len(embeddings) {
		return nil, fmt.Errorf("%w: %d chunks, %d embeddings", ErrCountMismatch, len(chunks), len(embeddings))
	}

	points := make([]Point, len(chunks))
	for i, chunk := range chunks {
		emb := embeddings[i]
		points[i] = Point{
			ID:     PointID(fileID, chunk.Index),
			Vector: emb.Vector,
			Payload: Payload{
				FileID:            fileID,
				ChunkIndex:        chunk.Index,
				ChunkID:           chunk.ChunkID,
				Text:              chunk.Text,
				EmbeddingModel:    emb.Model,
				EmbeddingProvider: emb.Provider,
				Metadata:          chunk.Metadata,
			},
		}
	}
	return points, nil
}
