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


package chunker

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer scheme names accepted by NewTokenizer.
const (
	// SchemeHeuristic approximates one token per four characters. It is
	// deterministic and needs no external data.
	SchemeHeuristic = "heuristic"
	// SchemeTiktoken uses BPE token counts matching the embedding model.
	SchemeTiktoken = "tiktoken"
)

// Tokenizer turns text into an ordered token sequence. Joining contiguous
// pieces returned by Encode with no separator reconstructs the original span,
// which is what lets the fixed chunking method cut windows out of the stream.
type Tokenizer interface {
	// Encode splits text into its ordered token pieces.
	Encode(text string) []string

	// Count reports how many tokens Encode would produce for text.
	Count(text string) int
}

// NewTokenizer constructs the tokenizer for a scheme. The model name is only
// consulted by the tiktoken scheme, which resolves the model's encoding and
// falls back to cl100k_base for models tiktoken does not know.
func NewTokenizer(scheme, model string) (Tokenizer, error) {
	switch scheme {
	case "", SchemeHeuristic:
		return heuristicTokenizer{}, nil
	case SchemeTiktoken:
		enc, err := tiktoken.EncodingForModel(model)
		if err != nil {
			enc, err = tiktoken.GetEncoding("cl100k_base")
		}
		if err != nil {
			return nil, fmt.Errorf("initialize tiktoken: %w", err)
		}
		return &bpeTokenizer{enc: enc}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTokenizer, scheme)
	}
}

// heuristicRuneWidth is the character width approximating one token.
const heuristicRuneWidth = 4

// heuristicTokenizer counts fixed-width rune groups. The approximation is the
// common four-characters-per-token rule; it keeps chunking fully offline and
// reproducible across processes.
type heuristicTokenizer struct{}

func (heuristicTokenizer) Encode(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	pieces := make([]string, 0, (len(runes)+heuristicRuneWidth-1)/heuristicRuneWidth)
	for start := 0; start < len(runes); start += heuristicRuneWidth {
		end := min(start+heuristicRuneWidth, len(runes))
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}

func (heuristicTokenizer) Count(text string) int {
	n := len([]rune(text))
	return (n + heuristicRuneWidth - 1) / heuristicRuneWidth
}

// bpeTokenizer adapts a tiktoken encoding. Per-piece decoding may split
// multi-byte runes across pieces; contiguous joins restore the original
// bytes, so windows remain exact.
type bpeTokenizer struct {
	enc *tiktoken.Tiktoken
}

func (t *bpeTokenizer) Encode(text string) []string {
	ids := t.enc.Encode(text, nil, nil)
	pieces := make([]string, len(ids))
	for i, id := range ids {
		pieces[i] = t.enc.Decode([]int{id})
	}
	return pieces
}

func (t *bpeTokenizer) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}
