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

// White-box test for the pipeline constructors: the triggered workflow has
// to pick its artifact sink from the configuration.
package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/cloud"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/report"
)

func TestTriggeredPipelineSinkSelection(t *testing.T) {
	config := &cloud.Config{}
	clients := &cloud.ServiceClients{}

	config.Reports.LocalOutputDir = t.TempDir()
	pipeline := NewTriggeredAlignmentPipeline(config, clients)
	_, isLocal := pipeline.sink.(*report.LocalSink)
	assert.True(t, isLocal)

	config.Reports.LocalOutputDir = ""
	pipeline = NewTriggeredAlignmentPipeline(config, clients)
	_, isGCS := pipeline.sink.(*report.GCSSink)
	assert.True(t, isGCS)
}
