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

// Package model defines the core data structures for the alignment engine.
// This file contains the input-side models: the records this engine consumes
// from its upstream collaborators. Frames arrive pre-scored from the frame
// extraction stage, the transcript arrives as a single untimed text block from
// the transcription stage, and the video metadata arrives from the acquisition
// stage. None of these are produced here; they are treated as immutable once
// received and are passed by value into the pipeline.
package model

import "strings"

// VisualFrame is a single still image sampled from the source video, annotated
// by the upstream visual scoring stage. The engine never opens the frame file
// itself; it reasons only over the scores attached to it. Thresholds for what
// counted as "a frame worth scoring" belong to the upstream stage.
type VisualFrame struct {
	Timestamp        float64  `json:"timestamp" bigquery:"timestamp"`                   // Offset into the video, in seconds. Always >= 0.
	SourcePath       string   `json:"source_path" bigquery:"source_path"`               // Opaque reference to the frame still (local path or GCS URI).
	CodeScore        float64  `json:"code_score" bigquery:"code_score"`                 // Likelihood (0.0-1.0) that the frame shows source code.
	HasCode          bool     `json:"has_code" bigquery:"has_code"`                     // Upstream's hard decision that code is visible.
	DiagramScore     float64  `json:"diagram_score,omitempty" bigquery:"diagram_score"` // Likelihood (0.0-1.0) that the frame shows a diagram. Zero when absent.
	PriorityScore    float64  `json:"priority_score" bigquery:"priority_score"`         // Overall importance (0.0-1.0) assigned upstream.
	DetectionReasons []string `json:"detection_reasons,omitempty" bigquery:"-"`         // Optional short strings explaining the scores.
}

// TranscriptBlock is the complete spoken-word transcript of the video as one
// contiguous string, plus the total duration of the video. The transcript
// carries no internal timing; the engine derives timing from the word count
// and the duration.
type TranscriptBlock struct {
	Text                 string  `json:"text"`
	TotalDurationSeconds float64 `json:"total_duration_seconds"`
}

// WordCount returns the number of whitespace-separated words in the
// transcript. An empty or all-whitespace transcript counts as zero words.
func (t *TranscriptBlock) WordCount() int {
	return len(strings.Fields(t.Text))
}

// Words returns the transcript split into whitespace-separated words. The
// slice indexes are the word indices the temporal estimator maps windows onto.
func (t *TranscriptBlock) Words() []string {
	return strings.Fields(t.Text)
}

// VideoMetadata identifies the source video. These fields are only used for
// report headers and artifact naming, never for alignment decisions.
type VideoMetadata struct {
	Title           string  `json:"title" bigquery:"title"`
	Author          string  `json:"author" bigquery:"author"`
	DurationSeconds float64 `json:"duration_seconds" bigquery:"duration_seconds"`
}
