// Package mock provides a test double implementation of ai.Embedder.
//
// The mock lets tests run without an external embedding service and with
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockEmbedder := mock.NewMockEmbedder()
//	vectors, err := mockEmbedder.EmbedTexts(ctx, []string{"test"})
//
//	// Custom behavior injection
//	mockEmbedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("service unavailable")
//	}
//
//	// Assert on recorded calls
//	count := mockEmbedder.CallCount()
//	batches := mockEmbedder.Batches()
//
// # Default Behavior
//
// Without injected functions the mock returns unit-normalized vectors derived
// from an FNV hash of the input text, so the same text always embeds to the
// same vector.
package mock
