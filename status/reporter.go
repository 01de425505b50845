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


// Package status reports job progress back to the system that owns the
// uploaded files.
//
// The pipeline publishes two kinds of facts: lifecycle status transitions
// (processing, indexed, failed) and, on success, where the vectors landed
// (collection name plus point ids). The Client implementation delivers both
// over the owning system's internal HTTP API; NoopReporter discards them
// for standalone runs.
package status

import (
	"context"

	"github.com/poiesic/vectorit/core"
)

// Reporter is the callback surface the pipeline uses to publish job state.
// Implementations must be safe for concurrent use across jobs.
type Reporter interface {
	// UpdateStatus records a lifecycle transition for the file. The error
	// message accompanies failed status and is empty otherwise.
	UpdateStatus(ctx context.Context, fileID string, jobStatus core.JobStatus, errorMessage string) error

	// UpdateIndexInfo records where the file's vectors were written.
	UpdateIndexInfo(ctx context.Context, fileID, collection string, pointIDs []string) error
}

// NoopReporter satisfies Reporter without talking to anyone. Used when the
// pipeline runs standalone, such as one-shot CLI ingestion.
type NoopReporter struct{}

// UpdateStatus discards the transition.
func (NoopReporter) UpdateStatus(ctx context.Context, fileID string, jobStatus core.JobStatus, errorMessage string) error {
	return nil
}

// UpdateIndexInfo discards the index info.
func (NoopReporter) UpdateIndexInfo(ctx context.Context, fileID, collection string, pointIDs []string) error {
	return nil
}
