package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/poiesic/vectorit/core"
)

// documentXML mirrors the parts of word/document.xml we extract text from.
type documentXML struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
	} `xml:"body"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Texts []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

// docxCoreProps mirrors docProps/core.xml. Element names match by local
// name, so the dc/dcterms namespaces need no special handling.
type docxCoreProps struct {
	Title    string `xml:"title"`
	Creator  string `xml:"creator"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}

// docxAppProps mirrors docProps/app.xml.
type docxAppProps struct {
	Pages int `xml:"Pages"`
}

// parseDocx extracts paragraph text from a DOCX archive. Paragraphs are
// joined with blank lines so paragraph-based chunking sees the document's
// own structure.
func (p *Parser) parseDocx(content []byte) (string, core.DocumentMetadata, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", core.DocumentMetadata{}, fmt.Errorf("%w: not a zip archive: %v", ErrCorruptDocument, err)
	}

	raw, err := readZipFile(reader, "word/document.xml")
	if err != nil {
		return "", core.DocumentMetadata{}, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	var doc documentXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return "", core.DocumentMetadata{}, fmt.Errorf("%w: invalid document xml: %v", ErrCorruptDocument, err)
	}

	paragraphs := make([]string, 0, len(doc.Body.Paragraphs))
	for _, para := range doc.Body.Paragraphs {
		var sb strings.Builder
		for _, run := range para.Runs {
			for _, text := range run.Texts {
				sb.WriteString(text.Content)
			}
		}
		if s := strings.TrimSpace(sb.String()); s != "" {
			paragraphs = append(paragraphs, s)
		}
	}

	return strings.Join(paragraphs, "\n\n"), p.docxMetadata(reader), nil
}

// docxMetadata pulls title, author, timestamps, and page count from the
// document property parts. Property parts are optional; anything missing or
// malformed simply leaves its field zero.
func (p *Parser) docxMetadata(reader *zip.Reader) core.DocumentMetadata {
	var meta core.DocumentMetadata

	if raw, err := readZipFile(reader, "docProps/core.xml"); err == nil {
		var props docxCoreProps
		if err := xml.Unmarshal(raw, &props); err == nil {
			meta.Title = strings.TrimSpace(props.Title)
			meta.Author = strings.TrimSpace(props.Creator)
			meta.CreatedAt = parseDocxTime(props.Created)
			meta.ModifiedAt = parseDocxTime(props.Modified)
		}
	}

	if raw, err := readZipFile(reader, "docProps/app.xml"); err == nil {
		var props docxAppProps
		if err := xml.Unmarshal(raw, &props); err == nil {
			meta.PageCount = props.Pages
		}
	}

	return meta
}

func readZipFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %v", name, err)
		}
		defer rc.Close()

		raw, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %v", name, err)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("missing %s", name)
}

func parseDocxTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}
	}
	return t
}
