// Package index writes chunk embeddings into tenant-scoped pgvector
// collections.
//
// A collection is one Postgres table of (id, embedding, payload) rows plus
// a row in the vector_collections registry recording its vector size.
// Point ids are name-based UUIDs derived from (file id, chunk index), which
// makes upserts idempotent under at-least-once job delivery: re-processing
// a file overwrites its points instead of duplicating them.
package index
