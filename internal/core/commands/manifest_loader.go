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

// This file defines the command that fetches an alignment manifest from GCS
// and decodes it into the in-memory structure the pipeline runs on.
//
// Logic Flow:
//  1. The GCSObject from the trigger command identifies the manifest.
//  2. The object is streamed from GCS and unmarshaled.
//  3. The manifest's SourceURI is stamped with its own gs:// address when
//     the upstream writer left it empty; the run ID is derived from it.
//  4. The manifest is stored under a well-known context key for the
//     assembly command and piped to the aligner.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"cloud.google.com/go/storage"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/cloud"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/cor"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// GetManifestName returns the context key the loaded manifest is stored
// under for the rest of the chain.
func GetManifestName() string {
	return "__MANIFEST__"
}

// ManifestLoader downloads and decodes an alignment manifest from GCS.
type ManifestLoader struct {
	cor.BaseCommand
	client *storage.Client
}

// NewManifestLoader is the constructor for the manifest loader command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - client: An initialized *storage.Client.
//
// Outputs:
//   - *ManifestLoader: A pointer to the newly instantiated command.
func NewManifestLoader(name string, client *storage.Client) *ManifestLoader {
	return &ManifestLoader{BaseCommand: *cor.NewBaseCommand(name), client: client}
}

// Execute streams the manifest object and decodes it.
func (c *ManifestLoader) Execute(context cor.Context) {
	msg := context.Get(c.GetInputParam()).(*cloud.GCSObject)

	reader, err := c.client.Bucket(msg.Bucket).Object(msg.Name).NewReader(context.GetContext())
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to open gs://%s/%s: %w", msg.Bucket, msg.Name, err))
		return
	}
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("failed to close GCS reader: %v\n", err)
		}
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to read gs://%s/%s: %w", msg.Bucket, msg.Name, err))
		return
	}

	var manifest model.AlignmentManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("malformed manifest gs://%s/%s: %w", msg.Bucket, msg.Name, err))
		return
	}

	if manifest.SourceURI == "" {
		manifest.SourceURI = fmt.Sprintf("gs://%s/%s", msg.Bucket, msg.Name)
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	log.Printf("loaded manifest %s: %d frames, %d transcript words",
		manifest.SourceURI, len(manifest.Frames), manifest.Transcript.WordCount())

	context.Add(GetManifestName(), &manifest)
	context.Add(c.GetOutputParam(), &manifest)
}
