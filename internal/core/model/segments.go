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
// This file contains the derived, per-frame pipeline state: the aligned
// segment produced by the frame-transcript aligner and the classified segment
// produced by the classifier/scorer. Both are immutable after creation; later
// stages read them but never mutate them.
package model

// SegmentType labels the relationship between a frame's visual content and
// its aligned transcript excerpt.
type SegmentType string

// The full segment type enumeration. The three "*_only" and "spoken_only"
// types are the gap candidates the gap analyzer looks for.
const (
	SegmentCodeExplanation       SegmentType = "code_explanation"
	SegmentCodeWithDiscussion    SegmentType = "code_with_discussion"
	SegmentCodeOnly              SegmentType = "code_only"
	SegmentArchitectureOverview  SegmentType = "architecture_overview"
	SegmentDiagramWithDiscussion SegmentType = "diagram_with_discussion"
	SegmentDiagramOnly           SegmentType = "diagram_only"
	SegmentSpokenOnly            SegmentType = "spoken_only"
	SegmentGeneral               SegmentType = "general"
)

// AlignmentQuality is the four-tier summary of how well a frame's visual
// content and its aligned excerpt corroborate each other.
type AlignmentQuality string

const (
	QualityExcellent AlignmentQuality = "excellent"
	QualityGood      AlignmentQuality = "good"
	QualityFair      AlignmentQuality = "fair"
	QualityPoor      AlignmentQuality = "poor"
)

// QualityForScore buckets an alignment score into its quality tier. This is
// the single place the tier boundaries live; the classifier and every report
// rendering go through it so the mapping cannot drift.
func QualityForScore(score int) AlignmentQuality {
	switch {
	case score >= 6:
		return QualityExcellent
	case score >= 4:
		return QualityGood
	case score >= 2:
		return QualityFair
	default:
		return QualityPoor
	}
}

// AudioExcerpt is the slice of transcript text that falls inside a frame's
// alignment window, together with the window bounds the slice was cut from.
type AudioExcerpt struct {
	Text               string  `json:"text" bigquery:"text"`
	WordCount          int     `json:"word_count" bigquery:"word_count"`
	WindowStartSeconds float64 `json:"window_start_seconds" bigquery:"window_start_seconds"`
	WindowEndSeconds   float64 `json:"window_end_seconds" bigquery:"window_end_seconds"`
}

// AlignedSegment pairs one visual frame with its audio excerpt. The aligner
// produces exactly one AlignedSegment per input frame, in input order, and
// Timestamp always equals Frame.Timestamp.
type AlignedSegment struct {
	Timestamp float64      `json:"timestamp" bigquery:"timestamp"`
	Frame     VisualFrame  `json:"frame" bigquery:"frame"`
	Excerpt   AudioExcerpt `json:"excerpt" bigquery:"excerpt"`
}

// ClassifiedSegment extends an aligned segment with the classifier's output.
// AlignmentQuality is always QualityForScore(AlignmentScore).
type ClassifiedSegment struct {
	AlignedSegment
	SegmentType      SegmentType      `json:"segment_type" bigquery:"segment_type"`
	AlignmentScore   int              `json:"alignment_score" bigquery:"alignment_score"` // Additive rule score; may be negative.
	AlignmentQuality AlignmentQuality `json:"alignment_quality" bigquery:"alignment_quality"`
}
