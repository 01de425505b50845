package parser

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/poiesic/vectorit/core"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// parseText decodes raw text content. Encodings are tried in a fixed order:
// UTF-8 (BOM stripped when present), UTF-16 when a BOM announces it, then
// Windows-1252 as the single-byte fallback.
func (p *Parser) parseText(content []byte) (string, core.DocumentMetadata, error) {
	text, encodingName, err := decodeText(content)
	if err != nil {
		return "", core.DocumentMetadata{}, err
	}
	return text, core.DocumentMetadata{Encoding: encodingName}, nil
}

func decodeText(content []byte) (string, string, error) {
	if bytes.HasPrefix(content, bomUTF8) {
		body := bytes.TrimPrefix(content, bomUTF8)
		if utf8.Valid(body) {
			return string(body), "utf-8", nil
		}
	}

	if bytes.HasPrefix(content, bomUTF16LE) {
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder(), content, "utf-16le")
	}
	if bytes.HasPrefix(content, bomUTF16BE) {
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder(), content, "utf-16be")
	}

	if utf8.Valid(content) {
		return string(content), "utf-8", nil
	}

	// Windows-1252 decodes any byte sequence, so this is the terminal
	// fallback for legacy single-byte text.
	return decodeWith(charmap.Windows1252.NewDecoder(), content, "windows-1252")
}

func decodeWith(dec *encoding.Decoder, content []byte, name string) (string, string, error) {
	decoded, err := dec.Bytes(content)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s: %v", ErrUndecodableText, name, err)
	}
	return string(decoded), name, nil
}
