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


// Package blob fetches uploaded document bytes from object storage.
//
// The pipeline treats storage as read-only: a job message carries a blob
// path, and the Downloader interface turns that path into the raw file
// content. Two implementations are provided:
//
//   - S3Store talks to Amazon S3 or any S3-compatible service (MinIO,
//     localstack) via the AWS SDK. A custom endpoint switches the client
//     to path-style addressing.
//   - FSStore reads from a rooted local directory, for single-machine
//     deployments and tests. Paths that escape the root are rejected
//     with ErrInvalidPath.
//
// Both implementations map a missing object to ErrNotFound so callers can
// distinguish a bad reference from an infrastructure failure.
package blob
