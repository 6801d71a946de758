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

// Package report renders a completed analysis into its delivery artifacts.
// Each artifact is an independent, deterministic rendering of the same
// in-memory result: none of them recompute anything, so they can never
// disagree on counts, timestamps, or classifications. This file defines the
// Renderer interface the synthesizer drives, plus the formatting helpers
// all renderings share.
package report

import (
	"fmt"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// Canonical artifact names. The synthesizer writes under these names and
// the API resolves artifact URL requests against them.
const (
	ArtifactRecord     = "record.json"
	ArtifactNarrative  = "narrative.md"
	ArtifactComparison = "comparison.md"
	ArtifactTimeline   = "timeline.html"
	ArtifactRequest    = "request.txt"
)

// Placeholder stands in for any optional field that is absent; renderings
// never fail on missing data.
const Placeholder = "not available"

// Renderer turns one analysis result into the bytes of one artifact.
type Renderer interface {
	// Name returns the canonical artifact file name.
	Name() string

	// ContentType returns the MIME type the artifact is served with.
	ContentType() string

	// Render produces the artifact bytes. Implementations only fail on
	// marshaling or template execution errors, never on data content.
	Render(result *model.AnalysisResult) ([]byte, error)
}

// ArtifactNames lists every artifact the standard renderer set produces.
func ArtifactNames() []string {
	return []string{
		ArtifactRecord,
		ArtifactNarrative,
		ArtifactComparison,
		ArtifactTimeline,
		ArtifactRequest,
	}
}

// QualityGlyph maps a quality tier to its single-character table indicator.
func QualityGlyph(quality model.AlignmentQuality) string {
	switch quality {
	case model.QualityExcellent:
		return "●"
	case model.QualityGood:
		return "◕"
	case model.QualityFair:
		return "◐"
	case model.QualityPoor:
		return "○"
	default:
		return "?"
	}
}

// FormatTimestamp renders a second offset as m:ss for human-facing
// artifacts.
func FormatTimestamp(seconds float64) string {
	whole := int(seconds)
	return fmt.Sprintf("%d:%02d", whole/60, whole%60)
}

// orPlaceholder substitutes the placeholder for empty optional strings.
func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
