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

// This file defines where rendered artifacts land. Both sinks guarantee
// that a reader never observes a partially written artifact: the local sink
// stages into a temp file and renames, and GCS objects only become visible
// when the writer is closed successfully.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
)

// Sink stores one rendered artifact and returns its location.
type Sink interface {
	// Write stores data under name for the given analysis and returns a
	// location string (a file path or object URI).
	Write(ctx context.Context, analysisID string, name string, contentType string, data []byte) (string, error)
}

// LocalSink writes artifacts under baseDir/<analysisID>/<name>.
type LocalSink struct {
	BaseDir string
}

// NewLocalSink returns a sink rooted at baseDir.
func NewLocalSink(baseDir string) *LocalSink {
	return &LocalSink{BaseDir: baseDir}
}

// Write stages the artifact in a temp file in the destination directory and
// renames it into place, so a crash mid-write leaves no partial artifact
// under the final name.
func (s *LocalSink) Write(_ context.Context, analysisID string, name string, _ string, data []byte) (string, error) {
	dir := filepath.Join(s.BaseDir, analysisID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, name+".*")
	if err != nil {
		return "", fmt.Errorf("stage artifact: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close artifact: %w", err)
	}

	final := filepath.Join(dir, name)
	if err := os.Rename(tmpName, final); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("publish artifact: %w", err)
	}
	return final, nil
}

// GCSSink writes artifacts to bucket/<prefix>/<analysisID>/<name>. GCS
// object creation is atomic on Close, so partial uploads never surface.
type GCSSink struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

// NewGCSSink returns a sink targeting the given bucket and prefix.
func NewGCSSink(client *storage.Client, bucket string, prefix string) *GCSSink {
	return &GCSSink{Client: client, Bucket: bucket, Prefix: prefix}
}

// ObjectName returns the object path for an artifact of the given analysis.
func (s *GCSSink) ObjectName(analysisID string, name string) string {
	if s.Prefix == "" {
		return analysisID + "/" + name
	}
	return s.Prefix + "/" + analysisID + "/" + name
}

func (s *GCSSink) Write(ctx context.Context, analysisID string, name string, contentType string, data []byte) (string, error) {
	object := s.ObjectName(analysisID, name)
	w := s.Client.Bucket(s.Bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write gs://%s/%s: %w", s.Bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close gs://%s/%s: %w", s.Bucket, object, err)
	}
	return fmt.Sprintf("gs://%s/%s", s.Bucket, object), nil
}
