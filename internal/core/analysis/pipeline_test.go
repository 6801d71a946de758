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

// End-to-end test of the pure computation: the example manifest run through
// alignment, classification, and gap analysis, with the full aggregate
// checked at each stage.
package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/analysis"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

func TestExampleManifestEndToEnd(t *testing.T) {
	manifest := model.GetExampleManifest()

	aligner := analysis.NewAligner(analysis.DefaultWindowSeconds, analysis.DefaultWorkers)
	aligned, err := aligner.Align(manifest.Frames, &manifest.Transcript)
	assert.NoError(t, err)
	assert.Len(t, aligned, 3)

	classifier := analysis.NewClassifier(analysis.DefaultDiagramThreshold, analysis.DefaultSubstantialWordCount)
	classified := classifier.ClassifyAll(aligned)

	// The code frame at t=10 lands in the code-heavy opening minute.
	assert.Equal(t, model.SegmentCodeExplanation, classified[0].SegmentType)
	assert.Equal(t, model.QualityExcellent, classified[0].AlignmentQuality)

	// The diagram frame at t=100 gets substantial narration, but the
	// architecture vocabulary sits just past its window.
	assert.Equal(t, model.SegmentDiagramWithDiscussion, classified[1].SegmentType)
	assert.Equal(t, model.QualityFair, classified[1].AlignmentQuality)

	// The closing frame has no visual signal and no technical narration.
	assert.Equal(t, model.SegmentGeneral, classified[2].SegmentType)
	assert.Equal(t, model.QualityPoor, classified[2].AlignmentQuality)

	analyzer := analysis.NewGapAnalyzer(0)
	report := analyzer.Analyze(classified)

	// None of the example segments is a gap candidate type, and the
	// high-priority code frame is the single reference-quality moment.
	assert.Empty(t, report.Gaps)
	assert.Empty(t, report.Recommendations)
	assert.Len(t, report.Highlights, 1)
	assert.Equal(t, 10.0, report.Highlights[0].Timestamp)

	stats := analysis.BuildStatistics(classified, report)
	assert.Equal(t, 3, stats.TotalSegments)
	assert.Equal(t, 0, stats.VisualGapCount)
	assert.Equal(t, 0, stats.VerbalGapCount)
	assert.Equal(t, 1, stats.SegmentTypeCounts[model.SegmentCodeExplanation])
	assert.Equal(t, 1, stats.SegmentTypeCounts[model.SegmentDiagramWithDiscussion])
	assert.Equal(t, 1, stats.SegmentTypeCounts[model.SegmentGeneral])
	assert.Equal(t, []float64{10}, stats.HighlightTimestamps)
}

// TestEmptyManifestEndToEnd runs a manifest with no frames and no
// transcript through every computation stage: the run completes and yields
// a well-formed aggregate with every count at zero.
func TestEmptyManifestEndToEnd(t *testing.T) {
	transcript := model.TranscriptBlock{Text: "", TotalDurationSeconds: 0}

	aligner := analysis.NewAligner(analysis.DefaultWindowSeconds, analysis.DefaultWorkers)
	aligned, err := aligner.Align(nil, &transcript)
	assert.NoError(t, err)
	assert.NotNil(t, aligned)
	assert.Empty(t, aligned)

	classifier := analysis.NewClassifier(analysis.DefaultDiagramThreshold, analysis.DefaultSubstantialWordCount)
	classified := classifier.ClassifyAll(aligned)
	assert.Empty(t, classified)

	analyzer := analysis.NewGapAnalyzer(0)
	report := analyzer.Analyze(classified)
	assert.Empty(t, report.Gaps)
	assert.Empty(t, report.Recommendations)
	assert.Empty(t, report.Highlights)

	result := model.NewAnalysisResult("gs://intake/empty.manifest.json")
	result.Segments = classified
	result.Stats = analysis.BuildStatistics(classified, report)

	assert.NotEmpty(t, result.Id)
	assert.Equal(t, 0, result.Stats.TotalSegments)
	assert.Equal(t, 0, result.Stats.VisualGapCount)
	assert.Equal(t, 0, result.Stats.VerbalGapCount)
	assert.Empty(t, result.Stats.SegmentTypeCounts)
	assert.Empty(t, result.Stats.QualityTierCounts)
	assert.Empty(t, result.Stats.Recommendations)
	assert.Empty(t, result.Stats.HighlightTimestamps)
}
