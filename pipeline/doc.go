// Package pipeline drives a single ingestion job from raw upload to indexed
// vectors.
//
// The Orchestrator owns the stage sequence and nothing else: each stage is
// an injected collaborator (blob download, parsing, chunking, embedding,
// index writing, status reporting) constructed once at startup. A job moves
// through RECEIVED, PROCESSING and ends in INDEXED or FAILED; the processing
// state is reported before parsing begins and the terminal state is always
// reported before the caller acknowledges the message.
//
// Failures are wrapped in a StageError naming the stage that produced them,
// so callers and logs can tell a corrupt document from an unreachable
// embedding provider without string matching.
package pipeline
