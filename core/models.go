package core

import (
	"fmt"
	"strings"
	"time"
)

// FileType identifies one of the supported document formats.
// Queue payloads carry the type as a string; ParseFileType resolves it to
// this closed set once at the message boundary so downstream code can
// switch exhaustively.
type FileType int

const (
	// FileTypeUnknown is the zero value and never valid for parsing.
	FileTypeUnknown FileType = iota
	// FileTypeText is plain UTF-8/legacy-encoded text.
	FileTypeText
	// FileTypeMarkdown is markdown, parsed down to plain prose.
	FileTypeMarkdown
	// FileTypePDF is a page-based PDF document.
	FileTypePDF
	// FileTypeDocx is an Office Open XML word-processing document.
	FileTypeDocx
)

// ParseFileType resolves a file-type string (as carried in job messages or
// derived from a filename extension) to a FileType. A leading dot and case
// are ignored.
func ParseFileType(s string) (FileType, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "txt", "text":
		return FileTypeText, nil
	case "md", "markdown":
		return FileTypeMarkdown, nil
	case "pdf":
		return FileTypePDF, nil
	case "docx":
		return FileTypeDocx, nil
	default:
		return FileTypeUnknown, fmt.Errorf("%w: %q", ErrUnknownFileType, s)
	}
}

// String returns the canonical lowercase name for the file type.
func (t FileType) String() string {
	switch t {
	case FileTypeText:
		return "txt"
	case FileTypeMarkdown:
		return "md"
	case FileTypePDF:
		return "pdf"
	case FileTypeDocx:
		return "docx"
	default:
		return "unknown"
	}
}

// JobStatus is the processing state reported to the owning system.
type JobStatus string

const (
	// StatusPending is set by the producer before the job is consumed.
	StatusPending JobStatus = "pending"
	// StatusProcessing is reported before parsing begins.
	StatusProcessing JobStatus = "processing"
	// StatusIndexed is the terminal success state.
	StatusIndexed JobStatus = "indexed"
	// StatusFailed is the terminal failure state.
	StatusFailed JobStatus = "failed"
)

// IngestionJob is one unit of work: a single uploaded file to parse, chunk,
// embed, and index. Jobs are produced externally, delivered at-least-once,
// and immutable for the lifetime of an attempt.
//
// FileType stays a string here; it is resolved to a FileType enum during
// processing so an unsupported value fails the job rather than the decode.
type IngestionJob struct {
	FileID   string `json:"file_id"`
	UserID   string `json:"user_id"`
	FirmID   string `json:"firm_id,omitempty"` // empty when the user has no firm
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
	BlobPath string `json:"blob_path"`
}

// DocumentMetadata carries structural facts extracted alongside the text.
// Zero values mean "not available for this format".
type DocumentMetadata struct {
	PageCount      int
	WordCount      int
	CharacterCount int
	Title          string
	Author         string
	CreatedAt      time.Time
	ModifiedAt     time.Time
	Encoding       string // source encoding for raw-text formats
}

// ParsedDocument is the normalized output of the parsing stage.
// It exists only for the duration of one pipeline run.
type ParsedDocument struct {
	Text     string
	Metadata DocumentMetadata
	FileType FileType
}

// TextChunk is one token-bounded segment of a parsed document.
//
// Index is 0-based and monotonic across the whole document; the embedding
// stage must preserve this order. TokenCount never exceeds the configured
// chunk size.
type TextChunk struct {
	Index      int
	ChunkID    string // "{prefix}:{index}" when an id prefix was supplied
	Text       string
	TokenCount int
	Metadata   map[string]string
}

// ChunkEmbedding pairs a chunk with its vector. Sequences of embeddings
// align 1:1 with the chunk sequence that produced them.
type ChunkEmbedding struct {
	Index    int
	ChunkID  string
	Vector   []float32
	Model    string
	Provider string
	Metadata map[string]string
}
