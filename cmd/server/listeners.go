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

package main

import (
	"context"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/cloud"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/workflow"
)

// SetupListeners attaches the end-to-end alignment pipeline to the manifest
// topic subscription and starts consuming. Each GCS notification on the
// topic drives one full analysis run: manifest load, alignment,
// classification, gap analysis, persistence, and report synthesis.
//
// Inputs:
//   - config: The application's configuration.
//   - cloudClients: The initialized Google Cloud service clients.
//   - ctx: The application's root context, governing listener lifetime.
func SetupListeners(config *cloud.Config, cloudClients *cloud.ServiceClients, ctx context.Context) {
	alignmentPipeline := workflow.NewTriggeredAlignmentPipeline(config, cloudClients)

	manifestListener := cloudClients.PubSubListeners["ManifestTopic"]
	manifestListener.SetCommand(alignmentPipeline)
	// Start the listener in a background goroutine. It begins receiving
	// and processing messages from its subscription immediately.
	manifestListener.Listen(ctx)
}
