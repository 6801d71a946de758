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
// This file contains the output-side aggregate: the gap findings produced by
// the gap analyzer and the AnalysisResult root that the report synthesizer
// renders and the persistence layer streams to BigQuery. AnalysisResult is
// the only entity that outlives a pipeline run; everything else is transient
// state scoped to a single execution.
package model

import (
	"time"

	"github.com/google/uuid"
)

// GapKind names the direction of a modality mismatch.
type GapKind string

const (
	// GapVisualNotExplained marks visual content on screen with little or no
	// accompanying narration.
	GapVisualNotExplained GapKind = "visual_not_explained"
	// GapExplainedNotShown marks technical narration with no accompanying
	// visual.
	GapExplainedNotShown GapKind = "explained_not_shown"
)

// Gap is one detected mismatch between the visual and verbal modalities.
type Gap struct {
	Kind            GapKind `json:"kind" bigquery:"kind"`
	Timestamp       float64 `json:"timestamp" bigquery:"timestamp"`
	Priority        float64 `json:"priority" bigquery:"priority"`                             // Frame priority for visual gaps, excerpt salience for verbal gaps.
	Excerpt         string  `json:"excerpt,omitempty" bigquery:"excerpt"`                     // Truncated narration, set for explained_not_shown.
	VisualReference string  `json:"visual_reference,omitempty" bigquery:"visual_reference"`   // Frame source path, set for visual_not_explained.
	Suggestion      string  `json:"suggestion" bigquery:"suggestion"`                         // Templated advisory text.
}

// Statistics summarizes a classified segment list. The per-type and per-tier
// counts always sum to TotalSegments; the report renderers rely on that
// invariant to stay mutually consistent.
type Statistics struct {
	TotalSegments       int                      `json:"total_segments" bigquery:"total_segments"`
	SegmentTypeCounts   map[SegmentType]int      `json:"segment_type_counts" bigquery:"-"`
	QualityTierCounts   map[AlignmentQuality]int `json:"quality_tier_counts" bigquery:"-"`
	VisualGapCount      int                      `json:"visual_gap_count" bigquery:"visual_gap_count"`
	VerbalGapCount      int                      `json:"verbal_gap_count" bigquery:"verbal_gap_count"`
	Recommendations     []string                 `json:"recommendations" bigquery:"recommendations"`
	HighlightTimestamps []float64                `json:"highlight_timestamps" bigquery:"highlight_timestamps"` // Reference-quality moments surfaced by the gap analyzer.
}

// AnalysisResult is the aggregate root of a single pipeline run: the ordered
// classified segments, the gap findings, and the statistics summary, plus the
// identity of the run itself. It is the sole input of the report synthesizer
// and the only record persisted downstream.
type AnalysisResult struct {
	Id         string               `json:"id" bigquery:"id"`
	Metadata   VideoMetadata        `json:"metadata" bigquery:"metadata"`
	Segments   []*ClassifiedSegment `json:"segments" bigquery:"segments"`
	Gaps       []*Gap               `json:"gaps" bigquery:"gaps"`
	Stats      Statistics           `json:"stats" bigquery:"stats"`
	CreateDate time.Time            `json:"create_date" bigquery:"create_date"`
}

// NewAnalysisResult creates an empty result for the given source reference.
// The ID is a UUIDv5 hash of the source URI so re-analyzing the same manifest
// produces the same identity, and the slice fields are initialized so a run
// with zero frames still serializes as a valid, fully-populated record.
func NewAnalysisResult(sourceURI string) *AnalysisResult {
	return &AnalysisResult{
		Id:         uuid.NewSHA1(uuid.NameSpaceURL, []byte(sourceURI)).String(),
		Segments:   make([]*ClassifiedSegment, 0),
		Gaps:       make([]*Gap, 0),
		CreateDate: time.Now(),
		Stats: Statistics{
			SegmentTypeCounts: make(map[SegmentType]int),
			QualityTierCounts: make(map[AlignmentQuality]int),
			Recommendations:   make([]string, 0),
		},
	}
}
