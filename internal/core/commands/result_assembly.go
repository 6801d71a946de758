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

// This file defines the command that folds the pipeline's intermediate
// products into the final AnalysisResult aggregate: the manifest identity
// and metadata, the classified segments, the gap findings, and the
// statistics summary. Everything downstream (persistence, reports, the
// API) consumes this one aggregate.
package commands

import (
	"log"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/analysis"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/cor"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// ResultAssembly builds the AnalysisResult from the context's accumulated
// pipeline state.
type ResultAssembly struct {
	cor.BaseCommand
}

// NewResultAssembly is the constructor for the assembly command.
//
// Inputs:
//   - name: A string name for this command instance.
//
// Outputs:
//   - *ResultAssembly: A pointer to the newly instantiated command.
func NewResultAssembly(name string) *ResultAssembly {
	return &ResultAssembly{BaseCommand: *cor.NewBaseCommand(name)}
}

// IsExecutable additionally requires the manifest and classified segments
// stored by the earlier stages.
func (c *ResultAssembly) IsExecutable(context cor.Context) bool {
	return c.BaseCommand.IsExecutable(context) &&
		context.Get(GetManifestName()) != nil &&
		context.Get(GetSegmentsName()) != nil
}

// Execute assembles the aggregate and pipes it to persistence and reports.
func (c *ResultAssembly) Execute(context cor.Context) {
	gapReport := context.Get(c.GetInputParam()).(*analysis.GapReport)
	manifest := context.Get(GetManifestName()).(*model.AlignmentManifest)
	segments := context.Get(GetSegmentsName()).([]*model.ClassifiedSegment)

	result := model.NewAnalysisResult(manifest.SourceURI)
	result.Metadata = manifest.Metadata
	result.Segments = segments
	result.Gaps = gapReport.Gaps
	result.Stats = analysis.BuildStatistics(segments, gapReport)

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	log.Printf("assembled analysis %s: %d segments, %d gaps", result.Id, len(result.Segments), len(result.Gaps))
	context.Add(c.GetOutputParam(), result)
}
