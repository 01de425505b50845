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


// Package parser turns uploaded file bytes into plain text plus document
// metadata, ready for chunking.
//
// Supported formats are plain text, Markdown, PDF, and DOCX. Text inputs go
// through encoding detection (UTF-8, UTF-16 via BOM, Windows-1252 fallback)
// and Markdown is stripped of its syntax so only prose remains. PDF pages
// that fail to decode are skipped with a warning rather than failing the
// whole document.
//
// All failure modes surface as one of the package's sentinel errors:
// ErrUnsupportedFileType, ErrEmptyDocument, ErrCorruptDocument, or
// ErrUndecodableText.
package parser
