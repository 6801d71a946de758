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

// This file holds the server's state initialization: configuration
// loading, Google Cloud client construction, the analysis service, and the
// synchronous pipeline the API drives directly.
//
// Functions:
//   - SetupOS: Points the configuration loader at the configs directory
//     and the local runtime.
//   - GetConfig: Loads the configuration once and caches it.
//   - InitState: Builds every shared dependency and starts the listeners.
package main

import (
	"context"
	"log"
	"os"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/cloud"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/report"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/services"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/workflow"
)

// StateManager is the container for the server's shared dependencies,
// built once at startup.
type StateManager struct {
	config          *cloud.Config
	cloud           *cloud.ServiceClients
	analysisService *services.AnalysisService
	inlinePipeline  *workflow.AlignmentWorkflow
	artifactSink    *report.GCSSink
}

// state is the single server-wide StateManager instance.
var state = &StateManager{}

// SetupOS points the configuration loader at the configs directory and the
// "local" runtime, so .env.local.toml overrides the base file.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "local")
	return err
}

// GetConfig loads the configuration on first call and returns the cached
// instance afterwards.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to set up environment: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// InitState builds the cloud clients, the analysis service, and the inline
// pipeline, then starts the manifest listeners.
//
// Inputs:
//   - ctx: The root context governing client and listener lifetime.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		panic(err)
	}
	state.cloud = cloudClients

	state.analysisService = &services.AnalysisService{
		BigqueryClient: cloudClients.BigQueryClient,
		StorageClient:  cloudClients.StorageClient,
		IAMClient:      cloudClients.IAMClient,
		SignerEmail:    config.Application.SignerServiceAccountEmail,
		DatasetName:    config.BigQueryDataSource.DatasetName,
		AnalysisTable:  config.BigQueryDataSource.AnalysisTable,
	}

	// The inline pipeline serves synchronous API requests; the listener
	// pipeline handles manifest uploads in the background.
	state.inlinePipeline = workflow.NewInlineAlignmentPipeline(config, cloudClients)

	state.artifactSink = &report.GCSSink{
		Client: cloudClients.StorageClient,
		Bucket: config.Storage.ArtifactOutputBucket,
		Prefix: config.Reports.GCSPrefix,
	}

	SetupListeners(config, cloudClients, ctx)
}
