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

import "fmt"

// ValidateJob validates an IngestionJob according to domain rules.
//
// Validation rules:
//   - FileID, UserID, Filename, FileType, and BlobPath must not be empty
//
// NOT validated:
//   - FirmID (optional; empty means user-scoped indexing)
//   - FileType membership in the supported set (resolved during parsing so
//     an unsupported type is reported against the file, not dropped as a
//     malformed message)
func ValidateJob(job *IngestionJob) error {
	if job == nil {
		return fmt.Errorf("%w: job is nil", ErrInvalidJob)
	}

	if job.FileID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidJob, ErrMissingFileID)
	}

	if job.UserID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidJob, ErrMissingUserID)
	}

	if job.Filename == "" {
		return fmt.Errorf("%w: %w", ErrInvalidJob, ErrMissingFilename)
	}

	if job.FileType == "" {
		return fmt.Errorf("%w: %w", ErrInvalidJob, ErrMissingFileType)
	}

	if job.BlobPath == "" {
		return fmt.Errorf("%w: %w", ErrInvalidJob, ErrMissingBlobPath)
	}

	return nil
}
