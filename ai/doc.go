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


// Package ai provides abstractions for the embedding services used by the
// indexing pipeline.
//
// The package defines the Embedder interface for turning text into vector
// embeddings, together with the provider configuration shared by all
// implementations. Business logic depends on the interface only, so
// providers can be swapped without touching the pipeline.
//
// # Implementation Packages
//
//   - ai/openai: OpenAI and OpenAI-compatible APIs (Ollama's /v1 endpoint,
//     LocalAI, vLLM) via langchaingo
//   - ai/ollama: the native Ollama API via langchaingo
//   - ai/mock: test doubles for unit testing without external services
//
// # Constructor Return Type Pattern
//
// Production constructors (openai.NewEmbedder, ollama.NewEmbedder) return
// the ai.Embedder INTERFACE to enforce abstraction and keep call sites
// decoupled from concrete implementations.
//
//	embedder, err := openai.NewEmbedder(cfg)  // returns ai.Embedder
//
// Test constructors (mock.NewMockEmbedder) return CONCRETE types so tests
// can inject behavior and assert on recorded calls.
//
//	mockEmbed := mock.NewMockEmbedder()  // returns *mock.MockEmbedder
//	mockEmbed.EmbedTextsFunc = ...       // behavior injection
//	count := mockEmbed.CallCount()       // test assertion
//
// # Usage Example
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithModel("nomic-embed-text"),
//	)
//	embedder, err := openai.NewEmbedder(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vectors, err := embedder.EmbedTexts(ctx, []string{"first", "second"})
package ai
