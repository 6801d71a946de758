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

// This file drives the full artifact set. Each renderer runs independently
// against the same result, so one failing artifact never blocks the other
// four; failures are collected per artifact and reported together.
package report

import (
	"context"
	"log/slog"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// SynthesisReport records where each artifact landed and which artifacts
// failed. Written and Failed are disjoint; together they cover every
// renderer the synthesizer ran.
type SynthesisReport struct {
	Written map[string]string // Artifact name to location.
	Failed  map[string]error  // Artifact name to render or write failure.
}

// Complete reports whether every artifact was written.
func (r *SynthesisReport) Complete() bool {
	return len(r.Failed) == 0
}

// Synthesizer renders an analysis result through every registered renderer
// and delivers the artifacts to one sink.
type Synthesizer struct {
	renderers []Renderer
	sink      Sink
}

// NewSynthesizer builds a synthesizer over the standard five renderers.
//
// Inputs:
//   - sink: The destination for rendered artifacts.
//   - maxRequestItems: The row cap for the analysis-request artifact;
//     non-positive selects the default.
//
// Outputs:
//   - *Synthesizer: The configured synthesizer.
func NewSynthesizer(sink Sink, maxRequestItems int) *Synthesizer {
	return &Synthesizer{
		sink: sink,
		renderers: []Renderer{
			NewRecordRenderer(),
			NewNarrativeRenderer(),
			NewComparisonRenderer(),
			NewTimelineRenderer(),
			NewRequestRenderer(maxRequestItems),
		},
	}
}

// Synthesize renders and writes every artifact. A failure in one artifact
// is recorded and the rest still run; callers inspect the report to decide
// whether partial success is acceptable.
func (s *Synthesizer) Synthesize(ctx context.Context, result *model.AnalysisResult) *SynthesisReport {
	report := &SynthesisReport{
		Written: make(map[string]string),
		Failed:  make(map[string]error),
	}

	for _, renderer := range s.renderers {
		data, err := renderer.Render(result)
		if err != nil {
			slog.ErrorContext(ctx, "artifact render failed",
				"analysis_id", result.Id, "artifact", renderer.Name(), "error", err)
			report.Failed[renderer.Name()] = err
			continue
		}

		location, err := s.sink.Write(ctx, result.Id, renderer.Name(), renderer.ContentType(), data)
		if err != nil {
			slog.ErrorContext(ctx, "artifact write failed",
				"analysis_id", result.Id, "artifact", renderer.Name(), "error", err)
			report.Failed[renderer.Name()] = err
			continue
		}

		slog.InfoContext(ctx, "artifact written",
			"analysis_id", result.Id, "artifact", renderer.Name(), "location", location)
		report.Written[renderer.Name()] = location
	}

	return report
}
