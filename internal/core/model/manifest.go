// Copyright 2025 Skylark Media, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

// AlignmentManifest is the wire format the upstream stages hand to this
// engine: everything one pipeline run needs, already materialized. The
// extraction stage writes a manifest JSON to the intake bucket once frame
// scoring and transcription have both finished, and the GCS notification for
// that object is what triggers the pipeline.
type AlignmentManifest struct {
	Metadata   VideoMetadata   `json:"metadata"`
	Frames     []*VisualFrame  `json:"frames"`
	Transcript TranscriptBlock `json:"transcript"`
	SourceURI  string          `json:"source_uri,omitempty"` // Filled in by the loader with the manifest's own GCS URI; used for the run ID.
}
