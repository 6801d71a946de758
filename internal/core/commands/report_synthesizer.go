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

// This file defines the final alignment workflow command: rendering the
// artifact set for the completed analysis. Partial success is deliberate
// here. An analysis with four of five artifacts delivered is still useful,
// so individual artifact failures are logged and counted but do not fail
// the chain; only losing every artifact does.
package commands

import (
	"fmt"
	"log"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/cor"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/report"
)

// GetSynthesisReportName returns the context key the synthesis report is
// stored under after execution.
func GetSynthesisReportName() string {
	return "__SYNTHESIS__"
}

// ReportSynthesizer renders and delivers the artifact set.
type ReportSynthesizer struct {
	cor.BaseCommand
	synthesizer *report.Synthesizer
}

// NewReportSynthesizer is the constructor for the synthesis command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - synthesizer: The configured artifact synthesizer.
//
// Outputs:
//   - *ReportSynthesizer: A pointer to the newly instantiated command.
func NewReportSynthesizer(name string, synthesizer *report.Synthesizer) *ReportSynthesizer {
	return &ReportSynthesizer{BaseCommand: *cor.NewBaseCommand(name), synthesizer: synthesizer}
}

// Execute renders every artifact and records the outcome per artifact.
func (c *ReportSynthesizer) Execute(context cor.Context) {
	result := context.Get(c.GetInputParam()).(*model.AnalysisResult)

	synthesis := c.synthesizer.Synthesize(context.GetContext(), result)
	context.Add(GetSynthesisReportName(), synthesis)

	for artifact, err := range synthesis.Failed {
		log.Printf("artifact %s failed for analysis %s: %v", artifact, result.Id, err)
	}

	if len(synthesis.Written) == 0 {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("all artifacts failed for analysis '%s'", result.Id))
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	log.Printf("synthesized %d/%d artifacts for analysis %s",
		len(synthesis.Written), len(synthesis.Written)+len(synthesis.Failed), result.Id)
	context.Add(c.GetOutputParam(), result)
}
