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

// This file defines the command that pairs every scored frame with its
// transcript excerpt. The heavy lifting lives in the analysis package; the
// command adapts it to the chain: input manifest in, ordered aligned
// segment list out, with a negative duration surfacing as a hard pipeline
// error.
package commands

import (
	"fmt"
	"log"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/analysis"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/cor"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// FrameAligner runs the frame-to-transcript alignment stage.
type FrameAligner struct {
	cor.BaseCommand
	aligner *analysis.Aligner
}

// NewFrameAligner is the constructor for the aligner command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - aligner: The configured alignment engine.
//
// Outputs:
//   - *FrameAligner: A pointer to the newly instantiated command.
func NewFrameAligner(name string, aligner *analysis.Aligner) *FrameAligner {
	return &FrameAligner{BaseCommand: *cor.NewBaseCommand(name), aligner: aligner}
}

// Execute aligns every manifest frame against the transcript.
func (c *FrameAligner) Execute(context cor.Context) {
	manifest := context.Get(c.GetInputParam()).(*model.AlignmentManifest)

	segments, err := c.aligner.Align(manifest.Frames, &manifest.Transcript)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("alignment failed for %s: %w", manifest.SourceURI, err))
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	log.Printf("aligned %d segments for %s", len(segments), manifest.SourceURI)
	context.Add(c.GetOutputParam(), segments)
}
