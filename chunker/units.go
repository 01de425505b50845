package chunker

import (
	"regexp"
	"strings"
)

// unit is one segment (sentence or paragraph) with its measured token count.
type unit struct {
	text   string
	tokens int
}

var (
	sentenceBoundary = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
	paragraphBreak   = regexp.MustCompile(`\n[ \t]*\n\s*`)
)

// splitSentences segments text at sentence-ending punctuation followed by
// whitespace (or end of text). Punctuation stays with its sentence; a
// trailing run without terminal punctuation becomes the final unit.
func splitSentences(text string) []string {
	var units []string
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[last:loc[1]]); s != "" {
			units = append(units, s)
		}
		last = loc[1]
	}
	if s := strings.TrimSpace(text[last:]); s != "" {
		units = append(units, s)
	}
	return units
}

// splitParagraphs segments text at blank lines.
func splitParagraphs(text string) []string {
	parts := paragraphBreak.Split(text, -1)
	units := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			units = append(units, s)
		}
	}
	return units
}

// packUnits greedily accumulates units into drafts while the running token
// total stays within the chunk size. When the next unit would overflow, the
// current draft is finalized and the next one is seeded with a trailing
// overlap window. A unit that alone exceeds the chunk size is re-chunked by
// the fixed algorithm; ordering stays monotonic because drafts are appended
// in document order.
func (c *Chunker) packUnits(segments []string, sep string) []draft {
	var drafts []draft
	var cur []unit
	curTokens := 0

	flush := func() {
		if len(cur) > 0 {
			drafts = append(drafts, draft{units: cur, sep: sep})
		}
	}

	for _, seg := range segments {
		u := unit{text: seg, tokens: c.tok.Count(seg)}

		if u.tokens > c.cfg.ChunkSize {
			flush()
			cur, curTokens = nil, 0
			for _, w := range c.fixedWindows(seg) {
				drafts = append(drafts, draft{units: []unit{{text: w, tokens: c.tok.Count(w)}}, sep: sep})
			}
			continue
		}

		if curTokens+u.tokens > c.cfg.ChunkSize && len(cur) > 0 {
			flush()
			cur = c.overlapWindow(cur, u)
			curTokens = 0
			for _, w := range cur {
				curTokens += w.tokens
			}
		}

		cur = append(cur, u)
		curTokens += u.tokens
	}

	flush()
	return drafts
}

// overlapWindow walks backward through the units of a just-finalized draft
// and collects the trailing context that seeds the next one. Every admitted
// unit must leave room for the unit that triggered the flush; beyond the
// first, units must also keep the window within the overlap budget. The most
// recent unit is admitted on the chunk-budget test alone so that a small
// overlap still reproduces trailing context when single units are larger
// than the overlap itself.
func (c *Chunker) overlapWindow(finalized []unit, pending unit) []unit {
	if c.cfg.Overlap <= 0 {
		return nil
	}

	budget := c.cfg.ChunkSize - pending.tokens
	var window []unit
	total := 0
	for i := len(finalized) - 1; i >= 0; i-- {
		u := finalized[i]
		withU := total + u.tokens
		if withU > budget {
			break
		}
		if len(window) > 0 && withU > c.cfg.Overlap {
			break
		}
		window = append([]unit{u}, window...)
		total = withU
		if total >= c.cfg.Overlap {
			break
		}
	}
	return window
}
