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

// This file initializes every Google Cloud client the engine needs and
// bundles them into one ServiceClients struct that the workflows, services,
// and HTTP handlers share.
//
// Logic Flow:
//  1. NewCloudServiceClients runs once at startup with the loaded Config.
//  2. Clients for Storage, Pub/Sub, BigQuery, and IAM credentials are
//     created against the configured project.
//  3. A PubSubListener is built per configured subscription; their commands
//     are attached later, after the pipeline chains exist.
//  4. Rate-limited BigQuery inserters are built for the analysis and
//     segment tables.
//
// Structs:
//   - ServiceClients: The container for all initialized clients, listeners,
//     and inserters.
package cloud

import (
	"context"

	"cloud.google.com/go/bigquery"
	credentials "cloud.google.com/go/iam/credentials/apiv1"
	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
)

// Logical inserter names in the ServiceClients.Inserters map.
const (
	AnalysisInserter = "analysis"
	SegmentInserter  = "segments"
)

// ServiceClients holds every external client connection the engine uses.
// One instance is created at startup and shared.
type ServiceClients struct {
	StorageClient   *storage.Client                   // Google Cloud Storage, for manifests and report artifacts.
	PubsubClient    *pubsub.Client                    // Pub/Sub, for manifest upload notifications.
	BigQueryClient  *bigquery.Client                  // BigQuery, for persisted analyses.
	IAMClient       *credentials.IamCredentialsClient // IAM credentials, for signing GCS download URLs.
	PubSubListeners map[string]*PubSubListener        // Active listeners keyed by logical topic name from the config.
	Inserters       map[string]*QuotaAwareInserter    // Rate-limited BigQuery inserters keyed by logical table name.
}

// Close shuts down every client connection. Primarily useful in tests and
// controlled shutdowns; the root context normally manages client lifetime.
func (c *ServiceClients) Close() {
	_ = c.StorageClient.Close()
	_ = c.PubsubClient.Close()
	_ = c.BigQueryClient.Close()
	_ = c.IAMClient.Close()
}

// NewCloudServiceClients initializes all Google Cloud clients from the
// given configuration.
//
// Inputs:
//   - ctx: The root context governing client lifetime.
//   - config: The loaded engine configuration.
//
// Outputs:
//   - *ServiceClients: The fully initialized client container.
//   - error: The first client initialization failure.
func NewCloudServiceClients(ctx context.Context, config *Config) (cloud *ServiceClients, err error) {
	sc, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	pc, err := pubsub.NewClient(ctx, config.Application.GoogleProjectId)
	if err != nil {
		return nil, err
	}

	bc, err := bigquery.NewClient(ctx, config.Application.GoogleProjectId)
	if err != nil {
		return nil, err
	}

	ic, err := credentials.NewIamCredentialsClient(ctx)
	if err != nil {
		return nil, err
	}

	// Listeners start without a command: the pipeline chain that will
	// process messages is assembled after the clients exist.
	subscriptions := make(map[string]*PubSubListener)
	for subKey := range config.TopicSubscriptions {
		values := config.TopicSubscriptions[subKey]
		actual, err := NewPubSubListener(pc, values.Name, nil)
		if err != nil {
			return nil, err
		}
		subscriptions[subKey] = actual
	}

	ds := bc.Dataset(config.BigQueryDataSource.DatasetName)
	inserters := map[string]*QuotaAwareInserter{
		AnalysisInserter: NewQuotaAwareInserter(
			ds.Table(config.BigQueryDataSource.AnalysisTable),
			config.BigQueryDataSource.MaxInsertsPerSec),
		SegmentInserter: NewQuotaAwareInserter(
			ds.Table(config.BigQueryDataSource.SegmentTable),
			config.BigQueryDataSource.MaxInsertsPerSec),
	}

	cloud = &ServiceClients{
		StorageClient:   sc,
		PubsubClient:    pc,
		BigQueryClient:  bc,
		IAMClient:       ic,
		PubSubListeners: subscriptions,
		Inserters:       inserters,
	}

	return cloud, err
}
