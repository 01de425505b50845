package chunker

import (
	"fmt"
	"maps"
	"strings"

	"github.com/poiesic/vectorit/core"
)

// Method selects the segmentation strategy.
type Method string

const (
	// MethodSentence packs sentence units greedily up to the token budget.
	MethodSentence Method = "sentence"
	// MethodParagraph packs blank-line-delimited paragraphs the same way.
	MethodParagraph Method = "paragraph"
	// MethodFixed slides a token window across the whole text.
	MethodFixed Method = "fixed"
)

// ParseMethod resolves a method string from configuration.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodSentence:
		return MethodSentence, nil
	case MethodParagraph:
		return MethodParagraph, nil
	case MethodFixed:
		return MethodFixed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Config holds the chunking parameters. ChunkSize and Overlap are measured
// in tokens of the configured tokenizer.
type Config struct {
	ChunkSize int
	Overlap   int
	Method    Method
}

// Validate checks the configuration against the packing invariants.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidChunkSize, c.ChunkSize)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeOverlap, c.Overlap)
	}
	if c.Overlap >= c.ChunkSize {
		return fmt.Errorf("%w: overlap %d, chunk size %d", ErrOverlapTooLarge, c.Overlap, c.ChunkSize)
	}
	switch c.Method {
	case MethodSentence, MethodParagraph, MethodFixed:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMethod, c.Method)
	}
}

// Chunker splits normalized document text into token-bounded chunks.
// A Chunker is immutable after construction and safe for concurrent use.
type Chunker struct {
	cfg Config
	tok Tokenizer
}

// Option configures a Chunker.
type Option func(*Chunker) error

// WithTokenizer sets the tokenizer used for all counting and windowing.
// Default is the heuristic tokenizer.
func WithTokenizer(tok Tokenizer) Option {
	return func(c *Chunker) error {
		if tok != nil {
			c.tok = tok
		}
		return nil
	}
}

// New creates a Chunker, validating the configuration up front so that a
// misconfigured worker fails at startup rather than on its first job.
func New(cfg Config, opts ...Option) (*Chunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Chunker{
		cfg: cfg,
		tok: heuristicTokenizer{},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Chunk splits text into an ordered sequence of chunks. Indexes are 0-based
// and monotonic across the document. When idPrefix is non-empty each chunk
// gets the id "{prefix}:{index}". baseMetadata is copied onto every chunk.
//
// Chunking is deterministic: the same text and configuration always produce
// identical boundaries.
func (c *Chunker) Chunk(text string, baseMetadata map[string]string, idPrefix string) ([]core.TextChunk, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("chunk input: %w", ErrEmptyInput)
	}

	var drafts []draft
	switch c.cfg.Method {
	case MethodFixed:
		drafts = c.fixedDrafts(trimmed)
	case MethodSentence:
		drafts = c.packUnits(splitSentences(trimmed), " ")
	case MethodParagraph:
		drafts = c.packUnits(splitParagraphs(trimmed), "\n\n")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, c.cfg.Method)
	}

	return c.finalize(drafts, baseMetadata, idPrefix)
}

// draft is a chunk before the defensive size check and id assignment.
// Sentence and paragraph drafts keep their units so overflow can be repaired
// by dropping leading (overlap) units.
type draft struct {
	units []unit
	sep   string
}

func (d draft) text() string {
	parts := make([]string, len(d.units))
	for i, u := range d.units {
		parts[i] = u.text
	}
	return strings.Join(parts, d.sep)
}

// finalize re-tokenizes every draft, repairs or rejects any that exceed the
// budget, and assigns indexes, ids, and metadata. Re-tokenizing the joined
// text is the authoritative count; packing sums are only an upper bound.
func (c *Chunker) finalize(drafts []draft, baseMetadata map[string]string, idPrefix string) ([]core.TextChunk, error) {
	chunks := make([]core.TextChunk, 0, len(drafts))
	for _, d := range drafts {
		text, tokens, err := c.fitDraft(d)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		idx := len(chunks)
		chunk := core.TextChunk{
			Index:      idx,
			Text:       text,
			TokenCount: tokens,
			Metadata:   maps.Clone(baseMetadata),
		}
		if idPrefix != "" {
			chunk.ChunkID = fmt.Sprintf("%s:%d", idPrefix, idx)
		}
		chunks = append(chunks, chunk)
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("chunk input: %w", ErrEmptyInput)
	}
	return chunks, nil
}

// fitDraft enforces the chunk-size invariant on one draft. Oversized drafts
// lose leading units one at a time; a draft that cannot fit with a single
// unit left is a fault and fails the whole call rather than silently
// truncating content.
func (c *Chunker) fitDraft(d draft) (string, int, error) {
	text := d.text()
	tokens := c.tok.Count(text)
	for tokens > c.cfg.ChunkSize && len(d.units) > 1 {
		d.units = d.units[1:]
		text = d.text()
		tokens = c.tok.Count(text)
	}
	if tokens > c.cfg.ChunkSize {
		return "", 0, fmt.Errorf("%w: %d tokens against budget %d", ErrChunkOverflow, tokens, c.cfg.ChunkSize)
	}
	return text, tokens, nil
}
