package chunker

import "strings"

// fixedDrafts applies the fixed method to the whole text: one draft per
// token window.
func (c *Chunker) fixedDrafts(text string) []draft {
	windows := c.fixedWindows(text)
	drafts := make([]draft, 0, len(windows))
	for _, w := range windows {
		drafts = append(drafts, draft{units: []unit{{text: w, tokens: c.tok.Count(w)}}})
	}
	return drafts
}

// fixedWindows slides a window of ChunkSize tokens across the token stream
// with step ChunkSize-Overlap, decoding each window back into text. The
// last window ends at the stream end; iteration stops once it is emitted.
func (c *Chunker) fixedWindows(text string) []string {
	tokens := c.tok.Encode(text)
	if len(tokens) == 0 {
		return nil
	}

	step := c.cfg.ChunkSize - c.cfg.Overlap
	var windows []string
	for start := 0; start < len(tokens); start += step {
		end := min(start+c.cfg.ChunkSize, len(tokens))
		windows = append(windows, strings.Join(tokens[start:end], ""))
		if end == len(tokens) {
			break
		}
	}
	return windows
}
