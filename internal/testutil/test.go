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

// Package test provides utility functions and mock data to support the
// application's test suite: a cached test configuration and a sample GCS
// notification payload for exercising the manifest-triggered pipeline.
package test

import (
	"log"
	"os"
	"testing"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/cloud"
)

// StateManager caches the application configuration during test runs so the
// configuration files are loaded only once per test binary.
type StateManager struct {
	config *cloud.Config
}

var state = &StateManager{}

// HandleErr fails the test when err is non-nil. A convenience to cut
// boilerplate error checks in tests.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("Error reading config file: %v", err)
	}
}

// GetTestManifestMessageText returns a hardcoded JSON string simulating the
// Pub/Sub notification Google Cloud Storage publishes when an alignment
// manifest is finalized in the intake bucket. It is used to test the
// manifest-triggered pipeline entry point.
func GetTestManifestMessageText() string {
	return `{
  "kind": "storage#object",
  "id": "align_manifest_intake/go-conc-tutorial-042.manifest.json/1756368000123456",
  "selfLink": "https://www.googleapis.com/storage/v1/b/align_manifest_intake/o/go-conc-tutorial-042.manifest.json",
  "name": "go-conc-tutorial-042.manifest.json",
  "bucket": "align_manifest_intake",
  "generation": "1756368000123456",
  "metageneration": "1",
  "contentType": "application/json",
  "timeCreated": "2025-08-28T09:12:41.309Z",
  "updated": "2025-08-28T09:12:41.309Z",
  "storageClass": "STANDARD",
  "timeStorageClassUpdated": "2025-08-28T09:12:41.309Z",
  "size": "48211",
  "md5Hash": "q0W7hVxPiR2mF4cD81krTg==",
  "mediaLink": "https://storage.googleapis.com/download/storage/v1/b/align_manifest_intake/o/go-conc-tutorial-042.manifest.json?generation=1756368000123456&alt=media",
  "metadata": { "touch": "3" },
  "crc32c": "Zk13Qw==",
  "etag": "CMDuv5K0u4kDEAE="
	}`
}

// SetupOS configures the environment variables the configuration loader
// depends on, pointing it at the test configuration files (e.g.
// configs/.env.test.toml) instead of production ones.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	// Runtime "test" makes the loader apply .env.test.toml overrides.
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration. The TOML
// files are read on first call and cached for the rest of the test run.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}
