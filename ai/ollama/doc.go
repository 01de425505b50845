// Package ollama provides an embedding implementation using the native
// Ollama API.
//
// Unlike ai/openai pointed at Ollama's /v1 endpoint, this package speaks
// Ollama's own protocol, which exposes models that are not served through
// the OpenAI-compatible surface.
package ollama
