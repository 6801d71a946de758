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

// This file defines the command that classifies and scores every aligned
// segment. Classification is a pure function, so the command cannot fail;
// it exists to give the stage its own span and counters in the chain.
package commands

import (
	"log"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/analysis"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/cor"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// GetSegmentsName returns the context key the classified segment list is
// stored under for the assembly command.
func GetSegmentsName() string {
	return "__SEGMENTS__"
}

// SegmentClassifier runs the classification and scoring stage.
type SegmentClassifier struct {
	cor.BaseCommand
	classifier *analysis.Classifier
}

// NewSegmentClassifier is the constructor for the classifier command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - classifier: The configured decision-table classifier.
//
// Outputs:
//   - *SegmentClassifier: A pointer to the newly instantiated command.
func NewSegmentClassifier(name string, classifier *analysis.Classifier) *SegmentClassifier {
	return &SegmentClassifier{BaseCommand: *cor.NewBaseCommand(name), classifier: classifier}
}

// Execute classifies the aligned segment list, preserving order.
func (c *SegmentClassifier) Execute(context cor.Context) {
	segments := context.Get(c.GetInputParam()).([]*model.AlignedSegment)

	classified := c.classifier.ClassifyAll(segments)

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	log.Printf("classified %d segments", len(classified))
	context.Add(GetSegmentsName(), classified)
	context.Add(c.GetOutputParam(), classified)
}
