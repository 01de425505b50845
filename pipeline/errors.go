package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrDownloaderRequired is returned when a blob downloader is not provided.
	ErrDownloaderRequired = errors.New("blob downloader required")

	// ErrParserRequired is returned when a document parser is not provided.
	ErrParserRequired = errors.New("document parser required")

	// ErrChunkerRequired is returned when a text chunker is not provided.
	ErrChunkerRequired = errors.New("text chunker required")

	// ErrGeneratorRequired is returned when an embedding generator is not provided.
	ErrGeneratorRequired = errors.New("embedding generator required")

	// ErrWriterRequired is returned when an index writer is not provided.
	ErrWriterRequired = errors.New("index writer required")

	// ErrReporterRequired is returned when a status reporter is not provided.
	ErrReporterRequired = errors.New("status reporter required")
)

// Stage identifies the pipeline stage an error originated from. The values
// read as verb phrases so wrapped errors stay legible in logs.
type Stage string

const (
	StageValidate Stage = "validate job"
	StageDownload Stage = "download blob"
	StageParse    Stage = "parse document"
	StageChunk    Stage = "chunk text"
	StageEmbed    Stage = "generate embeddings"
	StageIndex    Stage = "write index"
	StageReport   Stage = "report status"
)

// StageError wraps a failure with the stage that produced it. The underlying
// domain error stays inspectable through errors.Is and errors.As.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
