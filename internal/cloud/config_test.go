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

// Tests for the hierarchical TOML configuration loader: base values, the
// runtime override file, and the default runtime selection.
package cloud_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/cloud"
)

const baseConfigTOML = `
[application]
name = "modal-align"
google_project_id = "base-project"
location = "us-central1"
thread_pool_size = 4
signer_service_account_email = "signer@base-project.iam.gserviceaccount.com"

[storage]
manifest_input_bucket = "align_manifest_intake"
artifact_output_bucket = "align_artifacts"

[big_query_data_source]
dataset = "modal_align"
analysis_table = "analyses"
segment_table = "segments"
max_inserts_per_sec = 10

[alignment]
window_seconds = 30.0
substantial_word_count = 30
diagram_score_threshold = 0.5
worker_count = 4

[reports]
gcs_prefix = "reports"
signed_url_ttl_minutes = 15
excerpt_cap = 500
max_request_items = 20

[topic_subscriptions]
[topic_subscriptions.ManifestTopic]
name = "manifest-intake-sub"
dead_letter_topic = "manifest-intake-dead"
timeout_in_seconds = 60
`

const testOverrideTOML = `
[application]
google_project_id = "test-project"

[reports]
local_output_dir = "/tmp/modal-align-artifacts"
`

func writeConfigFiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, ".env.toml"), []byte(baseConfigTOML), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test.toml"), []byte(testOverrideTOML), 0o644))
	return dir
}

func TestLoadConfigAppliesRuntimeOverride(t *testing.T) {
	dir := writeConfigFiles(t)
	t.Setenv(cloud.EnvConfigFilePrefix, dir)
	t.Setenv(cloud.EnvConfigRuntime, "test")

	config := cloud.NewConfig()
	cloud.LoadConfig(&config)

	// Overridden by the runtime file.
	assert.Equal(t, "test-project", config.Application.GoogleProjectId)
	assert.Equal(t, "/tmp/modal-align-artifacts", config.Reports.LocalOutputDir)

	// Carried from the base file.
	assert.Equal(t, "modal-align", config.Application.Name)
	assert.Equal(t, "align_manifest_intake", config.Storage.ManifestInputBucket)
	assert.Equal(t, "modal_align", config.BigQueryDataSource.DatasetName)
	assert.Equal(t, 10, config.BigQueryDataSource.MaxInsertsPerSec)
	assert.Equal(t, 30.0, config.Alignment.WindowSeconds)
	assert.Equal(t, 20, config.Reports.MaxRequestItems)

	subscription, ok := config.TopicSubscriptions["ManifestTopic"]
	assert.True(t, ok)
	assert.Equal(t, "manifest-intake-sub", subscription.Name)
	assert.Equal(t, 60, subscription.TimeoutInSeconds)
}

func TestLoadConfigDefaultsToTestRuntime(t *testing.T) {
	dir := writeConfigFiles(t)
	t.Setenv(cloud.EnvConfigFilePrefix, dir)
	t.Setenv(cloud.EnvConfigRuntime, "")

	config := cloud.NewConfig()
	cloud.LoadConfig(&config)

	// With no runtime set the loader still applies the test overrides.
	assert.Equal(t, "test-project", config.Application.GoogleProjectId)
}

func TestLoadConfigUnknownRuntimeKeepsBase(t *testing.T) {
	dir := writeConfigFiles(t)
	t.Setenv(cloud.EnvConfigFilePrefix, dir)
	t.Setenv(cloud.EnvConfigRuntime, "prod")

	config := cloud.NewConfig()
	cloud.LoadConfig(&config)

	// No .env.prod.toml exists, so only the base file applies.
	assert.Equal(t, "base-project", config.Application.GoogleProjectId)
	assert.Equal(t, "", config.Reports.LocalOutputDir)
}
