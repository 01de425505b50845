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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidJob indicates an IngestionJob failed validation.
	ErrInvalidJob = errors.New("invalid ingestion job")

	// ErrMissingFileID indicates the FileID field is empty.
	ErrMissingFileID = errors.New("file id cannot be empty")

	// ErrMissingUserID indicates the UserID field is empty.
	ErrMissingUserID = errors.New("user id cannot be empty")

	// ErrMissingFilename indicates the Filename field is empty.
	ErrMissingFilename = errors.New("filename cannot be empty")

	// ErrMissingFileType indicates the FileType field is empty.
	ErrMissingFileType = errors.New("file type cannot be empty")

	// ErrMissingBlobPath indicates the BlobPath field is empty.
	ErrMissingBlobPath = errors.New("blob path cannot be empty")

	// ErrUnknownFileType indicates a file-type string outside the supported set.
	ErrUnknownFileType = errors.New("unknown file type")
)
