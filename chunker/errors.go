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

import "errors"

// Chunking errors
var (
	// ErrInvalidChunkSize indicates a non-positive chunk size.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")

	// ErrNegativeOverlap indicates a negative overlap.
	ErrNegativeOverlap = errors.New("overlap cannot be negative")

	// ErrOverlapTooLarge indicates an overlap >= chunk size, which would
	// prevent the window from advancing.
	ErrOverlapTooLarge = errors.New("overlap must be smaller than chunk size")

	// ErrUnknownMethod indicates a chunking method outside the supported set.
	ErrUnknownMethod = errors.New("unknown chunking method")

	// ErrUnknownTokenizer indicates a tokenizer scheme outside the supported set.
	ErrUnknownTokenizer = errors.New("unknown tokenizer scheme")

	// ErrEmptyInput indicates input text that is empty after trimming.
	ErrEmptyInput = errors.New("input text is empty")

	// ErrChunkOverflow indicates a finalized chunk that still exceeds the
	// chunk size after trimming leading units. This signals a logic or
	// configuration fault, not bad input.
	ErrChunkOverflow = errors.New("chunk exceeds size budget after trimming")
)
