// Package embed turns ordered text chunks into ordered vector embeddings.
//
// The Generator splits chunk texts into fixed-size batches, calls the
// configured ai.Embedder once per batch, and retries failed calls with
// bounded exponential backoff (RetryPolicy). Structural faults in a
// provider response, a vector count that disagrees with the batch size or
// a vector width that disagrees with the configured dimensionality, are
// terminal and never retried.
package embed
