package parser

import (
	"regexp"
	"strings"

	"github.com/poiesic/vectorit/core"
)

var (
	mdCodeBlock    = regexp.MustCompile("(?s)```[^`]*```")
	mdInlineCode   = regexp.MustCompile("`[^`]+`")
	mdImage        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLink         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdHeading      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdBlockquote   = regexp.MustCompile(`(?m)^>\s*`)
	mdRule         = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	mdListMarker   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	mdNumberedList = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	mdExtraNewline = regexp.MustCompile(`\n{3,}`)
	mdEmphasis     = strings.NewReplacer("**", "", "__", "", "*", "", "_", " ")
)

// parseMarkdown decodes markdown content like plain text, takes the title
// from the first level-one heading, and strips markup down to prose so the
// chunker sees clean sentences and paragraphs.
func (p *Parser) parseMarkdown(content []byte) (string, core.DocumentMetadata, error) {
	raw, encodingName, err := decodeText(content)
	if err != nil {
		return "", core.DocumentMetadata{}, err
	}

	meta := core.DocumentMetadata{
		Encoding: encodingName,
		Title:    markdownTitle(raw),
	}
	return stripMarkdown(raw), meta, nil
}

// markdownTitle returns the first H1 heading, if any.
func markdownTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return ""
}

// stripMarkdown reduces markdown to plain text. Code blocks and images are
// dropped, links keep their text, and structural markers are removed.
func stripMarkdown(content string) string {
	content = mdCodeBlock.ReplaceAllString(content, "")
	content = mdInlineCode.ReplaceAllString(content, "")
	content = mdImage.ReplaceAllString(content, "")
	content = mdLink.ReplaceAllString(content, "$1")
	content = mdHeading.ReplaceAllString(content, "")
	content = mdEmphasis.Replace(content)
	content = mdBlockquote.ReplaceAllString(content, "")
	content = mdRule.ReplaceAllString(content, "")
	content = mdListMarker.ReplaceAllString(content, "")
	content = mdNumberedList.ReplaceAllString(content, "")
	content = mdExtraNewline.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
