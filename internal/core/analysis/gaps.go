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

// Package analysis contains the pure computation of the alignment engine.
// This file implements the gap analyzer: a single pass over the classified
// segment list that finds visual content with insufficient narration,
// technical narration with no accompanying visual, aggregate-level
// recommendations, and the reference-quality highlights worth calling out.
// The analyzer never mutates the segments it reads.
package analysis

import (
	"sort"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// Gap analysis thresholds fixed by the rule set.
const (
	DefaultExcerptCap = 500 // Max characters of narration carried on a verbal gap.

	visualGapRatioThreshold = 0.20 // Above this share of visual gaps, recommend more narration.
	verbalGapRatioThreshold = 0.15 // Above this share of verbal gaps, recommend more visuals.
	highlightPriority       = 0.70 // Frames at or above this priority can be highlights.
)

// Advisory texts attached to findings. Kept as constants so the report
// renderers and the tests agree on the exact wording.
const (
	SuggestionExplainCode    = "Add a verbal explanation of the code shown at this point in the video."
	SuggestionExplainDiagram = "Add a verbal explanation of the diagram shown at this point in the video."
	SuggestionAddVisual      = "Add a visual example to accompany this technical narration."

	RecommendMoreNarration = "A large share of visual content has little or no narration; add more verbal explanation."
	RecommendMoreVisuals   = "A large share of technical narration has no accompanying visual; add more visual examples."
)

// GapReport is the analyzer's full output for one run.
type GapReport struct {
	Gaps            []*model.Gap
	Recommendations []string
	Highlights      []*model.ClassifiedSegment // Reference-quality segments; surfaced, not gaps.
}

// GapAnalyzer scans classified segments for modality mismatches.
type GapAnalyzer struct {
	ExcerptCap int // Characters of narration to carry on explained_not_shown findings.
}

// NewGapAnalyzer builds an analyzer with the default excerpt cap when none is
// given.
func NewGapAnalyzer(excerptCap int) *GapAnalyzer {
	if excerptCap <= 0 {
		excerptCap = DefaultExcerptCap
	}
	return &GapAnalyzer{ExcerptCap: excerptCap}
}

// Analyze performs the single pass over the classified list. Visual gaps are
// ordered by descending frame priority; verbal gaps follow in timeline order.
// An empty segment list yields an empty, valid report.
func (g *GapAnalyzer) Analyze(segments []*model.ClassifiedSegment) *GapReport {
	report := &GapReport{
		Gaps:            make([]*model.Gap, 0),
		Recommendations: make([]string, 0),
		Highlights:      make([]*model.ClassifiedSegment, 0),
	}

	visual := make([]*model.Gap, 0)
	verbal := make([]*model.Gap, 0)

	for _, segment := range segments {
		switch segment.SegmentType {
		case model.SegmentCodeOnly:
			visual = append(visual, g.visualGap(segment, SuggestionExplainCode))
		case model.SegmentDiagramOnly:
			visual = append(visual, g.visualGap(segment, SuggestionExplainDiagram))
		case model.SegmentSpokenOnly:
			// spoken_only already implies technical narration, but the
			// keyword check is repeated here so the finding stands on its
			// own even if the type rules evolve.
			if HasTechnicalKeywords(segment.Excerpt.Text) {
				verbal = append(verbal, g.verbalGap(segment))
			}
		}

		if segment.Frame.PriorityScore >= highlightPriority && segment.AlignmentQuality == model.QualityExcellent {
			report.Highlights = append(report.Highlights, segment)
		}
	}

	// Stable sort keeps timeline order among equal priorities deterministic.
	sort.SliceStable(visual, func(i, j int) bool {
		return visual[i].Priority > visual[j].Priority
	})

	report.Gaps = append(report.Gaps, visual...)
	report.Gaps = append(report.Gaps, verbal...)

	if total := len(segments); total > 0 {
		if float64(len(visual))/float64(total) > visualGapRatioThreshold {
			report.Recommendations = append(report.Recommendations, RecommendMoreNarration)
		}
		if float64(len(verbal))/float64(total) > verbalGapRatioThreshold {
			report.Recommendations = append(report.Recommendations, RecommendMoreVisuals)
		}
	}

	return report
}

func (g *GapAnalyzer) visualGap(segment *model.ClassifiedSegment, suggestion string) *model.Gap {
	return &model.Gap{
		Kind:            model.GapVisualNotExplained,
		Timestamp:       segment.Timestamp,
		Priority:        segment.Frame.PriorityScore,
		VisualReference: segment.Frame.SourcePath,
		Suggestion:      suggestion,
	}
}

func (g *GapAnalyzer) verbalGap(segment *model.ClassifiedSegment) *model.Gap {
	// The cap counts characters, not bytes, so a multi-byte rune at the
	// boundary is never split.
	excerpt := segment.Excerpt.Text
	if runes := []rune(excerpt); len(runes) > g.ExcerptCap {
		excerpt = string(runes[:g.ExcerptCap]) + "..."
	}
	return &model.Gap{
		Kind:       model.GapExplainedNotShown,
		Timestamp:  segment.Timestamp,
		Priority:   TechnicalDensity(segment.Excerpt.Text),
		Excerpt:    excerpt,
		Suggestion: SuggestionAddVisual,
	}
}

// BuildStatistics folds a classified list and its gap report into the
// summary the AnalysisResult carries. The per-type and per-tier counts sum
// to the segment total by construction.
func BuildStatistics(segments []*model.ClassifiedSegment, report *GapReport) model.Statistics {
	stats := model.Statistics{
		TotalSegments:       len(segments),
		SegmentTypeCounts:   make(map[model.SegmentType]int),
		QualityTierCounts:   make(map[model.AlignmentQuality]int),
		Recommendations:     append([]string(nil), report.Recommendations...),
		HighlightTimestamps: make([]float64, 0, len(report.Highlights)),
	}

	for _, segment := range segments {
		stats.SegmentTypeCounts[segment.SegmentType]++
		stats.QualityTierCounts[segment.AlignmentQuality]++
	}
	for _, gap := range report.Gaps {
		switch gap.Kind {
		case model.GapVisualNotExplained:
			stats.VisualGapCount++
		case model.GapExplainedNotShown:
			stats.VerbalGapCount++
		}
	}
	for _, highlight := range report.Highlights {
		stats.HighlightTimestamps = append(stats.HighlightTimestamps, highlight.Timestamp)
	}
	return stats
}
