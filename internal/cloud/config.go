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

// Package cloud holds the configuration structures for the alignment engine,
// loaded from hierarchical TOML files, plus the Google Cloud client wiring
// built from them.
//
// Structs:
//   - BigQueryDataSource: Dataset and table names for persisted analyses.
//   - TopicSubscription: A single Pub/Sub subscription the engine listens on.
//   - Storage: The GCS buckets for manifest intake and report artifacts.
//   - Alignment: Tunables for the window and classification pass.
//   - Reports: Where synthesized report artifacts land.
//   - Config: The root container the TOML files decode into.
package cloud

// BigQueryDataSource names the dataset and tables analyses are written to
// and queried from.
type BigQueryDataSource struct {
	DatasetName      string `toml:"dataset"`             // The BigQuery dataset holding engine tables.
	AnalysisTable    string `toml:"analysis_table"`      // The table holding one row per completed analysis.
	SegmentTable     string `toml:"segment_table"`       // The table holding one row per classified segment.
	MaxInsertsPerSec int    `toml:"max_inserts_per_sec"` // Streaming insert budget enforced by the quota-aware inserter.
}

// TopicSubscription configures one Pub/Sub subscription.
type TopicSubscription struct {
	Name             string `toml:"name"`               // The Pub/Sub subscription ID.
	DeadLetterTopic  string `toml:"dead_letter_topic"`  // The dead-letter topic for repeatedly failing messages.
	TimeoutInSeconds int    `toml:"timeout_in_seconds"` // The receive timeout in seconds.
}

// Storage names the GCS buckets the engine reads manifests from and writes
// report artifacts to.
type Storage struct {
	ManifestInputBucket  string `toml:"manifest_input_bucket"`  // Bucket watched for alignment manifests.
	ArtifactOutputBucket string `toml:"artifact_output_bucket"` // Bucket that receives synthesized report artifacts.
}

// Alignment holds the tunables of the alignment and classification pass.
// Zero values fall back to the engine defaults.
type Alignment struct {
	WindowSeconds         float64 `toml:"window_seconds"`          // Half-width of the transcript window around each frame.
	SubstantialWordCount  int     `toml:"substantial_word_count"`  // Word count at which narration counts as substantial.
	DiagramScoreThreshold float64 `toml:"diagram_score_threshold"` // Diagram score at which a frame counts as a diagram.
	WorkerCount           int     `toml:"worker_count"`            // Size of the frame alignment worker pool.
}

// Reports controls where synthesized report artifacts are written.
type Reports struct {
	LocalOutputDir      string `toml:"local_output_dir"`       // Directory for locally written artifacts; empty disables the local sink.
	GCSPrefix           string `toml:"gcs_prefix"`             // Object name prefix inside the artifact bucket.
	SignedURLTTLMinutes int    `toml:"signed_url_ttl_minutes"` // Lifetime of signed download URLs.
	ExcerptCap          int    `toml:"excerpt_cap"`            // Character cap on narration excerpts carried in gap findings.
	MaxRequestItems     int    `toml:"max_request_items"`      // Row cap for the improvement request artifact.
}

// Config is the root configuration for the engine, loaded from TOML files.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name                      string `toml:"name"`                         // The name of the application.
		GoogleProjectId           string `toml:"google_project_id"`            // The Google Cloud project ID.
		GoogleLocation            string `toml:"location"`                     // The Google Cloud location.
		ThreadPoolSize            int    `toml:"thread_pool_size"`             // Worker pool size for parallel work outside the aligner.
		SignerServiceAccountEmail string `toml:"signer_service_account_email"` // Service account used to sign GCS download URLs.
	} `toml:"application"`
	Storage            Storage                      `toml:"storage"`
	BigQueryDataSource BigQueryDataSource           `toml:"big_query_data_source"`
	Alignment          Alignment                    `toml:"alignment"`
	Reports            Reports                      `toml:"reports"`
	TopicSubscriptions map[string]TopicSubscription `toml:"topic_subscriptions"` // Keyed by a logical name, e.g. "ManifestTopic".
}

// NewConfig returns a Config with its map fields initialized so the TOML
// decoder can populate them directly.
func NewConfig() *Config {
	return &Config{
		TopicSubscriptions: make(map[string]TopicSubscription),
	}
}
