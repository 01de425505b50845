// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/poiesic/vectorit/core"
)

// parsePDF extracts text page by page. A page that fails to decode is
// logged and skipped; the document as a whole fails only when every page
// fails. Pages are joined with blank lines.
func (p *Parser) parsePDF(content []byte, filename string) (string, core.DocumentMetadata, error) {
	reader, err := newPDFReader(content)
	if err != nil {
		return "", core.DocumentMetadata{}, err
	}

	pageCount := reader.NumPage()
	meta := core.DocumentMetadata{
		PageCount: pageCount,
		Title:     pdfInfoString(reader, "Title"),
		Author:    pdfInfoString(reader, "Author"),
	}

	pages := make([]string, 0, pageCount)
	failed := 0
	for i := 1; i <= pageCount; i++ {
		text, err := extractPageText(reader, i)
		if err != nil {
			failed++
			p.logger.Warn("skipping unreadable pdf page",
				"filename", filename,
				"page", i,
				"error", err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}

	if pageCount > 0 && failed == pageCount {
		return "", meta, fmt.Errorf("%w: all %d pages unreadable", ErrCorruptDocument, pageCount)
	}

	return strings.Join(pages, "\n\n"), meta, nil
}

// newPDFReader opens the document. The pdf package panics on some malformed
// inputs, so the recover converts those into a corrupt-document error.
func newPDFReader(content []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			reader = nil
			err = fmt.Errorf("%w: %v", ErrCorruptDocument, r)
		}
	}()

	reader, err = pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return reader, nil
}

// extractPageText pulls the plain text of a single 1-based page, containing
// any panic from the underlying library.
func extractPageText(reader *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("page %d: %v", pageNum, r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d: null page object", pageNum)
	}

	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d: %w", pageNum, err)
	}
	return text, nil
}

// pdfInfoString reads a string entry from the document info dictionary.
// Missing or malformed entries yield "".
func pdfInfoString(reader *pdf.Reader, key string) (value string) {
	defer func() {
		if r := recover(); r != nil {
			value = ""
		}
	}()

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	return strings.TrimSpace(info.Key(key).Text())
}
