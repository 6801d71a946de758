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

// Unit tests for the segment classifier: one case per decision-table row,
// the code-over-diagram precedence, and the additive scoring rules with
// their quality-tier boundaries.
package analysis_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/analysis"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// excerptOf builds an excerpt of exactly total words: the given keywords
// first, padded with neutral filler.
func excerptOf(total int, keywords ...string) model.AudioExcerpt {
	words := append([]string(nil), keywords...)
	for len(words) < total {
		words = append(words, "filler")
	}
	return model.AudioExcerpt{
		Text:      strings.Join(words, " "),
		WordCount: len(words),
	}
}

func TestClassifyDecisionTable(t *testing.T) {
	classifier := analysis.NewClassifier(0.5, 30)

	cases := []struct {
		name     string
		segment  model.AlignedSegment
		wantType model.SegmentType
		wantTier model.AlignmentQuality
		want     int
	}{
		{
			name: "code frame with code narration",
			segment: model.AlignedSegment{
				Frame:   model.VisualFrame{HasCode: true, PriorityScore: 0.5},
				Excerpt: excerptOf(31, "function"),
			},
			wantType: model.SegmentCodeExplanation,
			want:     6, // +3 code match, +2 substantial, +1 priority
			wantTier: model.QualityExcellent,
		},
		{
			name: "code frame with code narration below priority",
			segment: model.AlignedSegment{
				Frame:   model.VisualFrame{HasCode: true, PriorityScore: 0.4},
				Excerpt: excerptOf(31, "function"),
			},
			wantType: model.SegmentCodeExplanation,
			want:     5,
			wantTier: model.QualityGood,
		},
		{
			name: "code frame with unrelated discussion",
			segment: model.AlignedSegment{
				Frame:   model.VisualFrame{HasCode: true},
				Excerpt: excerptOf(31),
			},
			wantType: model.SegmentCodeWithDiscussion,
			want:     2,
			wantTier: model.QualityFair,
		},
		{
			name: "code frame with almost no narration",
			segment: model.AlignedSegment{
				Frame:   model.VisualFrame{HasCode: true},
				Excerpt: excerptOf(5),
			},
			wantType: model.SegmentCodeOnly,
			want:     -2, // sparse-narration penalty
			wantTier: model.QualityPoor,
		},
		{
			name: "diagram frame with architecture narration",
			segment: model.AlignedSegment{
				Frame:   model.VisualFrame{DiagramScore: 0.6},
				Excerpt: excerptOf(31, "architecture"),
			},
			wantType: model.SegmentArchitectureOverview,
			want:     5,
			wantTier: model.QualityGood,
		},
		{
			name: "diagram frame with unrelated discussion",
			segment: model.AlignedSegment{
				Frame:   model.VisualFrame{DiagramScore: 0.6},
				Excerpt: excerptOf(31),
			},
			wantType: model.SegmentDiagramWithDiscussion,
			want:     2,
			wantTier: model.QualityFair,
		},
		{
			name: "diagram frame with almost no narration",
			segment: model.AlignedSegment{
				Frame:   model.VisualFrame{DiagramScore: 0.6},
				Excerpt: excerptOf(5),
			},
			wantType: model.SegmentDiagramOnly,
			want:     -2,
			wantTier: model.QualityPoor,
		},
		{
			name: "technical narration with no visual",
			segment: model.AlignedSegment{
				Frame:   model.VisualFrame{},
				Excerpt: excerptOf(31, "database"),
			},
			wantType: model.SegmentSpokenOnly,
			want:     2,
			wantTier: model.QualityFair,
		},
		{
			name: "long plain talk with no visual",
			segment: model.AlignedSegment{
				Frame:   model.VisualFrame{},
				Excerpt: excerptOf(85),
			},
			wantType: model.SegmentGeneral,
			want:     1, // +2 substantial, -1 long talk without a visual
			wantTier: model.QualityPoor,
		},
		{
			name: "short plain talk with no visual",
			segment: model.AlignedSegment{
				Frame:   model.VisualFrame{},
				Excerpt: excerptOf(5),
			},
			wantType: model.SegmentGeneral,
			want:     0,
			wantTier: model.QualityPoor,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := classifier.Classify(&tc.segment)
			assert.Equal(t, tc.wantType, out.SegmentType)
			assert.Equal(t, tc.want, out.AlignmentScore)
			assert.Equal(t, tc.wantTier, out.AlignmentQuality)
		})
	}
}

func TestClassifyCodeTakesPrecedenceOverDiagram(t *testing.T) {
	classifier := analysis.NewClassifier(0.5, 30)

	// A frame carrying both signals classifies by the hard code decision,
	// but the score still credits both modality matches.
	segment := &model.AlignedSegment{
		Frame:   model.VisualFrame{HasCode: true, DiagramScore: 0.9, PriorityScore: 0.5},
		Excerpt: excerptOf(31, "function", "architecture"),
	}
	out := classifier.Classify(segment)
	assert.Equal(t, model.SegmentCodeExplanation, out.SegmentType)
	assert.Equal(t, 9, out.AlignmentScore) // +3 code, +3 diagram, +2 substantial, +1 priority
	assert.Equal(t, model.QualityExcellent, out.AlignmentQuality)
}

func TestClassifyDoesNotMutateInput(t *testing.T) {
	classifier := analysis.NewClassifier(0.5, 30)
	segment := &model.AlignedSegment{
		Timestamp: 42,
		Frame:     model.VisualFrame{HasCode: true, PriorityScore: 0.8},
		Excerpt:   excerptOf(31, "function"),
	}
	before := *segment
	_ = classifier.Classify(segment)
	assert.Equal(t, before, *segment)
}

func TestClassifyAllPreservesOrder(t *testing.T) {
	classifier := analysis.NewClassifier(0.5, 30)
	segments := []*model.AlignedSegment{
		{Timestamp: 10, Frame: model.VisualFrame{HasCode: true}, Excerpt: excerptOf(5)},
		{Timestamp: 20, Frame: model.VisualFrame{DiagramScore: 0.7}, Excerpt: excerptOf(5)},
		{Timestamp: 30, Excerpt: excerptOf(5)},
	}

	out := classifier.ClassifyAll(segments)
	assert.Len(t, out, len(segments))
	for i, classified := range out {
		assert.Equal(t, segments[i].Timestamp, classified.Timestamp)
	}
	assert.Equal(t, model.SegmentCodeOnly, out[0].SegmentType)
	assert.Equal(t, model.SegmentDiagramOnly, out[1].SegmentType)
	assert.Equal(t, model.SegmentGeneral, out[2].SegmentType)
}

func TestQualityTierBoundaries(t *testing.T) {
	assert.Equal(t, model.QualityExcellent, model.QualityForScore(6))
	assert.Equal(t, model.QualityGood, model.QualityForScore(5))
	assert.Equal(t, model.QualityGood, model.QualityForScore(4))
	assert.Equal(t, model.QualityFair, model.QualityForScore(3))
	assert.Equal(t, model.QualityFair, model.QualityForScore(2))
	assert.Equal(t, model.QualityPoor, model.QualityForScore(1))
	assert.Equal(t, model.QualityPoor, model.QualityForScore(-3))
}
