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

// This file defines the AnalysisService: lookups and summaries over the
// persisted analyses in BigQuery, plus signed download URLs for report
// artifacts in GCS.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	credentials "cloud.google.com/go/iam/credentials/apiv1"
	"cloud.google.com/go/storage"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
	"google.golang.org/api/iterator"
)

// AnalysisSummary is the listing projection: enough to render a dashboard
// row without loading the nested segment and gap records.
type AnalysisSummary struct {
	Id             string    `bigquery:"id" json:"id"`
	Title          string    `bigquery:"title" json:"title"`
	Author         string    `bigquery:"author" json:"author"`
	CreateDate     time.Time `bigquery:"create_date" json:"create_date"`
	TotalSegments  int       `bigquery:"total_segments" json:"total_segments"`
	VisualGapCount int       `bigquery:"visual_gap_count" json:"visual_gap_count"`
	VerbalGapCount int       `bigquery:"verbal_gap_count" json:"verbal_gap_count"`
}

// EngineStats aggregates across every persisted analysis.
type EngineStats struct {
	AnalysisCount  int64 `bigquery:"analysis_count" json:"analysis_count"`
	SegmentCount   int64 `bigquery:"segment_count" json:"segment_count"`
	VisualGapCount int64 `bigquery:"visual_gap_count" json:"visual_gap_count"`
	VerbalGapCount int64 `bigquery:"verbal_gap_count" json:"verbal_gap_count"`
}

// AnalysisService is the data access layer over persisted analyses and
// their report artifacts.
type AnalysisService struct {
	BigqueryClient *bigquery.Client
	StorageClient  *storage.Client
	IAMClient      *credentials.IamCredentialsClient
	SignerEmail    string // Service account used for V4 URL signing.
	DatasetName    string
	AnalysisTable  string
}

// GetFQN returns the dot-separated fully qualified analysis table name
// usable inside standard SQL.
func (s *AnalysisService) GetFQN() string {
	fqn := s.BigqueryClient.Dataset(s.DatasetName).Table(s.AnalysisTable).FullyQualifiedName()
	return strings.Replace(fqn, ":", ".", -1)
}

// Get retrieves one analysis by ID.
func (s *AnalysisService) Get(ctx context.Context, id string) (result *model.AnalysisResult, err error) {
	queryText := fmt.Sprintf(QryFindAnalysisById, s.GetFQN())
	q := s.BigqueryClient.Query(queryText)
	q.Parameters = []bigquery.QueryParameter{{Name: "id", Value: id}}
	itr, err := q.Read(ctx)
	if err != nil {
		return result, err
	}
	// The ID is unique, so at most one row comes back.
	result = &model.AnalysisResult{}
	err = itr.Next(result)
	return result, err
}

// List returns the most recent analyses, newest first.
func (s *AnalysisService) List(ctx context.Context, limit int) ([]*AnalysisSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	queryText := fmt.Sprintf(QryListAnalyses, s.GetFQN(), limit)
	q := s.BigqueryClient.Query(queryText)
	itr, err := q.Read(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*AnalysisSummary, 0, limit)
	for {
		summary := &AnalysisSummary{}
		err := itr.Next(summary)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Stats computes the aggregate counters across all persisted analyses.
func (s *AnalysisService) Stats(ctx context.Context) (*EngineStats, error) {
	queryText := fmt.Sprintf(QryEngineStats, s.GetFQN())
	q := s.BigqueryClient.Query(queryText)
	itr, err := q.Read(ctx)
	if err != nil {
		return nil, err
	}
	stats := &EngineStats{}
	err = itr.Next(stats)
	return stats, err
}

// GenerateSignedURL creates a time-limited V4 signed URL for a report
// artifact, so clients download directly from GCS without credentials of
// their own. Accepts a gs://bucket/object URI.
func (s *AnalysisService) GenerateSignedURL(_ context.Context, gcsURI string, expires time.Duration) (string, error) {
	const prefix = "gs://"
	if !strings.HasPrefix(gcsURI, prefix) {
		return "", fmt.Errorf("invalid GCS URI format: %s", gcsURI)
	}
	path := strings.TrimPrefix(gcsURI, prefix)
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid GCS URI: unable to determine bucket and object from %s", gcsURI)
	}
	bucketName := parts[0]
	objectName := parts[1]

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "GET",
		Expires:        time.Now().Add(expires),
		GoogleAccessID: s.SignerEmail,
	}

	u, err := s.StorageClient.Bucket(bucketName).SignedURL(objectName, opts)
	if err != nil {
		return "", fmt.Errorf("Bucket(%q).Object(%q).SignedURL: %w", bucketName, objectName, err)
	}
	return u, nil
}
