package parser

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/poiesic/vectorit/core"
)

// Parser converts raw file bytes into normalized text plus structural
// metadata. It is stateless apart from its logger and safe for concurrent
// use.
type Parser struct {
	logger *slog.Logger
}

// New creates a Parser. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger.With("component", "parser")}
}

// Parse extracts text and metadata from content according to the declared
// file type. The filename is only used as a title fallback when the format
// carries no title of its own.
//
// Failure modes: unsupported file type, structurally corrupt input, or a
// document whose extracted text is empty after trimming.
func (p *Parser) Parse(content []byte, fileType core.FileType, filename string) (*core.ParsedDocument, error) {
	var (
		text string
		meta core.DocumentMetadata
		err  error
	)

	switch fileType {
	case core.FileTypeText:
		text, meta, err = p.parseText(content)
	case core.FileTypeMarkdown:
		text, meta, err = p.parseMarkdown(content)
	case core.FileTypePDF:
		text, meta, err = p.parsePDF(content, filename)
	case core.FileTypeDocx:
		text, meta, err = p.parseDocx(content)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, fileType)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", fileType, err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("parse %s: %w", fileType, ErrEmptyDocument)
	}

	if meta.Title == "" {
		meta.Title = titleFromFilename(filename)
	}
	meta.WordCount = countWords(text)
	meta.CharacterCount = len([]rune(text))

	return &core.ParsedDocument{
		Text:     text,
		Metadata: meta,
		FileType: fileType,
	}, nil
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

func countWords(text string) int {
	return len(wordPattern.FindAllStringIndex(text, -1))
}

// titleFromFilename derives a readable title from a filename by dropping the
// extension and turning separators into spaces.
func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}
