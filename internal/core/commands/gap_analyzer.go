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

// This file defines the command that runs gap analysis over the classified
// segment list: modality mismatches, aggregate recommendations, and the
// reference-quality highlights.
package commands

import (
	"log"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/analysis"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/cor"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// GapAnalyzerCommand runs the gap analysis stage.
type GapAnalyzerCommand struct {
	cor.BaseCommand
	analyzer *analysis.GapAnalyzer
}

// NewGapAnalyzerCommand is the constructor for the gap analysis command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - analyzer: The configured gap analyzer.
//
// Outputs:
//   - *GapAnalyzerCommand: A pointer to the newly instantiated command.
func NewGapAnalyzerCommand(name string, analyzer *analysis.GapAnalyzer) *GapAnalyzerCommand {
	return &GapAnalyzerCommand{BaseCommand: *cor.NewBaseCommand(name), analyzer: analyzer}
}

// Execute scans the classified segments and pipes the gap report onward.
func (c *GapAnalyzerCommand) Execute(context cor.Context) {
	segments := context.Get(c.GetInputParam()).([]*model.ClassifiedSegment)

	report := c.analyzer.Analyze(segments)

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	log.Printf("gap analysis: %d gaps, %d recommendations, %d highlights",
		len(report.Gaps), len(report.Recommendations), len(report.Highlights))
	context.Add(c.GetOutputParam(), report)
}
