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

package report

import (
	"bytes"
	"fmt"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// ComparisonRenderer emits the compact tabular artifact: one row per
// segment with a quality glyph, the type label, and the excerpt word
// count. It is the at-a-glance companion to the narrative document.
type ComparisonRenderer struct{}

// NewComparisonRenderer returns the comparison table renderer.
func NewComparisonRenderer() *ComparisonRenderer {
	return &ComparisonRenderer{}
}

func (r *ComparisonRenderer) Name() string { return ArtifactComparison }

func (r *ComparisonRenderer) ContentType() string { return "text/markdown" }

func (r *ComparisonRenderer) Render(result *model.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Segment Comparison: %s\n\n", orPlaceholder(result.Metadata.Title))
	fmt.Fprintf(&buf, "Total segments: %d\n\n", result.Stats.TotalSegments)
	buf.WriteString("| Time | Quality | Score | Type | Words | Visual |\n")
	buf.WriteString("|------|---------|-------|------|-------|--------|\n")

	for _, segment := range result.Segments {
		fmt.Fprintf(&buf, "| %s | %s %s | %d | %s | %d | %s |\n",
			FormatTimestamp(segment.Timestamp),
			QualityGlyph(segment.AlignmentQuality),
			segment.AlignmentQuality,
			segment.AlignmentScore,
			segment.SegmentType,
			segment.Excerpt.WordCount,
			orPlaceholder(segment.Frame.SourcePath))
	}

	fmt.Fprintf(&buf, "\nGaps: %d visual, %d verbal\n",
		result.Stats.VisualGapCount, result.Stats.VerbalGapCount)

	return buf.Bytes(), nil
}
