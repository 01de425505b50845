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


// Package chunker splits normalized document text into token-bounded,
// optionally overlapping chunks for embedding.
//
// Three methods are supported:
//   - sentence: greedy packing of sentence units up to the token budget
//   - paragraph: the same packing over blank-line-delimited paragraphs
//   - fixed: a sliding token window over the whole text
//
// Counting is delegated to a Tokenizer; the default heuristic approximates
// one token per four characters, and a tiktoken-backed tokenizer can be
// selected for model-accurate counts. Every chunk returned is guaranteed to
// fit the configured chunk size, enforced by a defensive re-count after
// packing. Chunking is deterministic for a given text and configuration.
package chunker
