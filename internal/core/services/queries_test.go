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

// Pins the placeholder discipline of the service SQL: Sprintf verbs fill
// in table names only, and request-scoped values bind as query parameters.
package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/services"
)

func TestQueryPlaceholderDiscipline(t *testing.T) {
	// The analysis ID comes straight off a URL parameter, so it binds as
	// @id rather than interpolating into the statement.
	assert.Contains(t, services.QryFindAnalysisById, "@id")
	assert.NotContains(t, services.QryFindAnalysisById, "'%s'")
	assert.Equal(t, 1, strings.Count(services.QryFindAnalysisById, "%s"))

	assert.Equal(t, 1, strings.Count(services.QryListAnalyses, "%s"))
	assert.Equal(t, 1, strings.Count(services.QryEngineStats, "%s"))
}
