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
	"encoding/json"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// RecordRenderer emits the lossless machine-readable artifact: the whole
// analysis result as indented JSON. Every other artifact is a projection of
// what this one carries.
type RecordRenderer struct{}

// NewRecordRenderer returns the JSON record renderer.
func NewRecordRenderer() *RecordRenderer {
	return &RecordRenderer{}
}

func (r *RecordRenderer) Name() string { return ArtifactRecord }

func (r *RecordRenderer) ContentType() string { return "application/json" }

// Render marshals the full result. Marshaling a fully initialized result
// cannot fail in practice; the error path exists for the interface.
func (r *RecordRenderer) Render(result *model.AnalysisResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
