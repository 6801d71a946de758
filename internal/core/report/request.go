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
	"sort"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// DefaultMaxRequestItems caps the analysis-request artifact so it never
// grows with the video length.
const DefaultMaxRequestItems = 20

// RequestRenderer emits the bounded analysis-request document: the highest
// priority segments formatted as a prompt for a downstream narrative
// generation collaborator. This engine only produces the document; it never
// calls that collaborator itself.
type RequestRenderer struct {
	MaxItems int
}

// NewRequestRenderer builds the request renderer with the default cap when
// maxItems is non-positive.
func NewRequestRenderer(maxItems int) *RequestRenderer {
	if maxItems <= 0 {
		maxItems = DefaultMaxRequestItems
	}
	return &RequestRenderer{MaxItems: maxItems}
}

func (r *RequestRenderer) Name() string { return ArtifactRequest }

func (r *RequestRenderer) ContentType() string { return "text/plain" }

func (r *RequestRenderer) Render(result *model.AnalysisResult) ([]byte, error) {
	// Order by descending frame priority; equal priorities keep timeline
	// order so the selection is deterministic.
	ranked := append([]*model.ClassifiedSegment(nil), result.Segments...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Frame.PriorityScore != ranked[j].Frame.PriorityScore {
			return ranked[i].Frame.PriorityScore > ranked[j].Frame.PriorityScore
		}
		return ranked[i].Timestamp < ranked[j].Timestamp
	})
	if len(ranked) > r.MaxItems {
		ranked = ranked[:r.MaxItems]
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Narrative generation request for %q by %s.\n",
		orPlaceholder(result.Metadata.Title), orPlaceholder(result.Metadata.Author))
	fmt.Fprintf(&buf, "Analysis %s: %d segments total, the %d highest-priority listed below.\n\n",
		result.Id, result.Stats.TotalSegments, len(ranked))

	for i, segment := range ranked {
		fmt.Fprintf(&buf, "%d. [%s] %s (quality %s, priority %.2f)\n",
			i+1,
			FormatTimestamp(segment.Timestamp),
			segment.SegmentType,
			segment.AlignmentQuality,
			segment.Frame.PriorityScore)
		fmt.Fprintf(&buf, "   Visual: %s\n", orPlaceholder(segment.Frame.SourcePath))
		fmt.Fprintf(&buf, "   Narration: %s\n\n", orPlaceholder(segment.Excerpt.Text))
	}

	return buf.Bytes(), nil
}
