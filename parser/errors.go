package parser

import "errors"

// Parsing errors
var (
	// ErrUnsupportedFileType indicates a file type outside the supported set.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrEmptyDocument indicates a document whose extracted text is empty or
	// whitespace only.
	ErrEmptyDocument = errors.New("document contains no extractable text")

	// ErrCorruptDocument indicates a structurally damaged document.
	ErrCorruptDocument = errors.New("document is corrupt")

	// ErrUndecodableText indicates raw text that no supported encoding decodes.
	ErrUndecodableText = errors.New("text is not decodable with any supported encoding")
)
