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

// Unit tests for the report renderers, the artifact sinks, and the
// synthesizer. The renderers are checked against one shared result built
// from the example manifest, so the tests also prove the five artifacts
// stay mutually consistent.
package report_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/analysis"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/report"
)

// exampleResult runs the example manifest through the pure pipeline stages
// and folds everything into the aggregate the renderers consume.
func exampleResult(t *testing.T) *model.AnalysisResult {
	t.Helper()
	manifest := model.GetExampleManifest()

	aligner := analysis.NewAligner(0, 0)
	aligned, err := aligner.Align(manifest.Frames, &manifest.Transcript)
	assert.NoError(t, err)

	classifier := analysis.NewClassifier(0, 0)
	classified := classifier.ClassifyAll(aligned)

	analyzer := analysis.NewGapAnalyzer(0)
	gapReport := analyzer.Analyze(classified)

	result := model.NewAnalysisResult(manifest.SourceURI)
	result.Metadata = manifest.Metadata
	result.Segments = classified
	result.Gaps = gapReport.Gaps
	result.Stats = analysis.BuildStatistics(classified, gapReport)
	return result
}

func TestRecordRendererRoundTrip(t *testing.T) {
	result := exampleResult(t)
	data, err := report.NewRecordRenderer().Render(result)
	assert.NoError(t, err)

	var decoded model.AnalysisResult
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result.Id, decoded.Id)
	assert.Equal(t, result.Metadata.Title, decoded.Metadata.Title)
	assert.Len(t, decoded.Segments, len(result.Segments))
	assert.Equal(t, result.Stats.TotalSegments, decoded.Stats.TotalSegments)
}

func TestRenderersAgreeOnSegmentCount(t *testing.T) {
	result := exampleResult(t)

	narrative, err := report.NewNarrativeRenderer().Render(result)
	assert.NoError(t, err)
	assert.Contains(t, string(narrative), fmt.Sprintf("Total segments: %d", result.Stats.TotalSegments))
	assert.Equal(t, len(result.Segments), strings.Count(string(narrative), "### "))

	comparison, err := report.NewComparisonRenderer().Render(result)
	assert.NoError(t, err)
	// Two header rows, then one table row per segment.
	assert.Equal(t, len(result.Segments)+2, strings.Count(string(comparison), "\n|"))

	timeline, err := report.NewTimelineRenderer().Render(result)
	assert.NoError(t, err)
	assert.Equal(t, len(result.Segments), strings.Count(string(timeline), `<div class="entry`))
}

func TestNarrativeRendererUsesPlaceholders(t *testing.T) {
	result := exampleResult(t)
	result.Metadata.Title = ""
	result.Metadata.Author = ""

	data, err := report.NewNarrativeRenderer().Render(result)
	assert.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "# Alignment Narrative: "+report.Placeholder)
	assert.Contains(t, out, "- Author: "+report.Placeholder)
}

func TestComparisonRendererRowContent(t *testing.T) {
	result := exampleResult(t)
	data, err := report.NewComparisonRenderer().Render(result)
	assert.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "| Time | Quality | Score | Type | Words | Visual |")
	for _, segment := range result.Segments {
		assert.Contains(t, out, string(segment.SegmentType))
		assert.Contains(t, out, report.QualityGlyph(segment.AlignmentQuality))
	}
}

func TestTimelineRendererCategoriesAndThumbnails(t *testing.T) {
	result := exampleResult(t)
	data, err := report.NewTimelineRenderer().Render(result)
	assert.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `data-category="code"`)
	assert.Contains(t, out, `data-category="diagram"`)
	assert.Contains(t, out, `data-category="other"`)
	// The example frame paths do not resolve to local image files, so no
	// thumbnails are embedded.
	assert.NotContains(t, out, "<img")
}

func TestRequestRendererCapsAndRanks(t *testing.T) {
	result := model.NewAnalysisResult("gs://bucket/ranked.json")
	for i := 0; i < 25; i++ {
		result.Segments = append(result.Segments, &model.ClassifiedSegment{
			AlignedSegment: model.AlignedSegment{
				Timestamp: float64(i * 10),
				Frame:     model.VisualFrame{PriorityScore: float64(i%5) / 10},
			},
			SegmentType:      model.SegmentGeneral,
			AlignmentQuality: model.QualityFair,
		})
	}
	result.Stats.TotalSegments = len(result.Segments)

	data, err := report.NewRequestRenderer(0).Render(result)
	assert.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "the 20 highest-priority listed below")
	assert.Contains(t, out, "20. [")
	assert.NotContains(t, out, "21. [")

	// Highest priority first; the first tie breaks toward the earlier
	// timestamp. Priority 0.4 first occurs at i=4, t=40.
	assert.Contains(t, out, "1. [0:40]")
}

func TestLocalSinkWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	sink := report.NewLocalSink(dir)

	location, err := sink.Write(context.Background(), "run-1", report.ArtifactRecord, "application/json", []byte(`{"ok":true}`))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run-1", report.ArtifactRecord), location)

	content, err := os.ReadFile(location)
	assert.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(content))

	// No staging temp files are left behind.
	entries, err := os.ReadDir(filepath.Join(dir, "run-1"))
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGCSSinkObjectName(t *testing.T) {
	sink := report.NewGCSSink(nil, "artifacts", "reports")
	assert.Equal(t, "reports/run-1/record.json", sink.ObjectName("run-1", report.ArtifactRecord))

	bare := report.NewGCSSink(nil, "artifacts", "")
	assert.Equal(t, "run-1/record.json", bare.ObjectName("run-1", report.ArtifactRecord))
}

func TestSynthesizerWritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	synthesizer := report.NewSynthesizer(report.NewLocalSink(dir), 0)

	out := synthesizer.Synthesize(context.Background(), exampleResult(t))
	assert.True(t, out.Complete())
	assert.Len(t, out.Written, len(report.ArtifactNames()))
	for _, name := range report.ArtifactNames() {
		location, ok := out.Written[name]
		assert.True(t, ok, "missing artifact %s", name)
		_, err := os.Stat(location)
		assert.NoError(t, err)
	}
}

// failingSink rejects one artifact by name and delegates the rest.
type failingSink struct {
	inner    report.Sink
	failName string
}

func (s *failingSink) Write(ctx context.Context, analysisID string, name string, contentType string, data []byte) (string, error) {
	if name == s.failName {
		return "", errors.New("sink unavailable")
	}
	return s.inner.Write(ctx, analysisID, name, contentType, data)
}

func TestSynthesizerIsolatesArtifactFailures(t *testing.T) {
	dir := t.TempDir()
	sink := &failingSink{inner: report.NewLocalSink(dir), failName: report.ArtifactTimeline}
	synthesizer := report.NewSynthesizer(sink, 0)

	out := synthesizer.Synthesize(context.Background(), exampleResult(t))
	assert.False(t, out.Complete())
	assert.Len(t, out.Failed, 1)
	assert.Len(t, out.Written, len(report.ArtifactNames())-1)
	assert.Contains(t, out.Failed, report.ArtifactTimeline)
	assert.NotContains(t, out.Written, report.ArtifactTimeline)
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "0:00", report.FormatTimestamp(0))
	assert.Equal(t, "0:09", report.FormatTimestamp(9.7))
	assert.Equal(t, "1:40", report.FormatTimestamp(100))
	assert.Equal(t, "10:00", report.FormatTimestamp(600))
}
