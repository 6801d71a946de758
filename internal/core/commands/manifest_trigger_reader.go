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

// Package commands provides the concrete pipeline commands of the
// alignment engine. This file defines the entry command of the alignment
// workflow: parsing the GCS upload notification that fires when an
// alignment manifest lands in the intake bucket.
//
// Logic Flow:
//  1. The raw Pub/Sub message body (a GCS notification JSON) arrives as the
//     command's input.
//  2. The notification is unmarshaled and reduced to a GCSObject carrying
//     just the bucket, object name, and content type.
//  3. The GCSObject is published under a well-known context key and as the
//     command's output, so the manifest loader can fetch the object without
//     knowing anything about the notification format.
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/cloud"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/cor"
)

// ManifestTriggerToGCSObject parses a GCS Pub/Sub notification into the
// object reference of the uploaded manifest.
type ManifestTriggerToGCSObject struct {
	cor.BaseCommand
}

// NewManifestTriggerToGCSObject is the constructor for the trigger command.
//
// Inputs:
//   - name: A string name for this command instance.
//
// Outputs:
//   - *ManifestTriggerToGCSObject: A pointer to the newly instantiated command.
func NewManifestTriggerToGCSObject(name string) *ManifestTriggerToGCSObject {
	return &ManifestTriggerToGCSObject{BaseCommand: *cor.NewBaseCommand(name)}
}

// Execute unmarshals the notification and publishes the object reference.
func (c *ManifestTriggerToGCSObject) Execute(context cor.Context) {
	in := context.Get(c.GetInputParam()).(string)

	var out cloud.GCSPubSubNotification
	err := json.Unmarshal([]byte(in), &out)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to unmarshal GCS notification: %w", err))
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)

	msg := &cloud.GCSObject{Bucket: out.Bucket, Name: out.Name, MIMEType: out.ContentType}

	context.Add(cloud.GetGCSObjectName(), msg)
	context.Add(c.GetOutputParam(), msg)
}
