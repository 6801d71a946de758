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

// This file defines the persistence command. The assembled AnalysisResult
// is streamed into BigQuery through the rate-limited inserters: one row in
// the analysis table for the aggregate, one row per classified segment in
// the segment table for per-segment queries. The Go client maps struct
// fields to columns via the bigquery tags on the model types.
package commands

import (
	"fmt"
	"log"

	"github.com/skylarkmedia/gcp-go-modal-align/internal/cloud"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/cor"
	"github.com/skylarkmedia/gcp-go-modal-align/internal/core/model"
)

// SegmentRow is the per-segment BigQuery row, keyed back to its analysis.
type SegmentRow struct {
	AnalysisId string                  `bigquery:"analysis_id"`
	Segment    model.ClassifiedSegment `bigquery:"segment"`
}

// AnalysisPersistToBigQuery streams a completed analysis into BigQuery.
type AnalysisPersistToBigQuery struct {
	cor.BaseCommand
	analysisInserter *cloud.QuotaAwareInserter
	segmentInserter  *cloud.QuotaAwareInserter
}

// NewAnalysisPersistToBigQuery is the constructor for the persistence
// command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - analysisInserter: The rate-limited inserter for the analysis table.
//   - segmentInserter: The rate-limited inserter for the segment table.
//
// Outputs:
//   - *AnalysisPersistToBigQuery: A pointer to the newly instantiated command.
func NewAnalysisPersistToBigQuery(name string, analysisInserter *cloud.QuotaAwareInserter, segmentInserter *cloud.QuotaAwareInserter) *AnalysisPersistToBigQuery {
	return &AnalysisPersistToBigQuery{
		BaseCommand:      *cor.NewBaseCommand(name),
		analysisInserter: analysisInserter,
		segmentInserter:  segmentInserter,
	}
}

// Execute writes the aggregate row and the per-segment rows.
func (c *AnalysisPersistToBigQuery) Execute(context cor.Context) {
	log.Println("persisting analysis to BigQuery...")

	result := context.Get(c.GetInputParam()).(*model.AnalysisResult)

	if err := c.analysisInserter.Put(context.GetContext(), result); err != nil {
		log.Printf("failed to write analysis %s: %s\n", result.Id, err)
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("bigquery insert failed for analysis '%s': %w", result.Id, err))
		return
	}

	if len(result.Segments) > 0 {
		rows := make([]*SegmentRow, 0, len(result.Segments))
		for _, segment := range result.Segments {
			rows = append(rows, &SegmentRow{AnalysisId: result.Id, Segment: *segment})
		}
		if err := c.segmentInserter.Put(context.GetContext(), rows); err != nil {
			log.Printf("failed to write segments for analysis %s: %s\n", result.Id, err)
			c.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(c.GetName(), fmt.Errorf("bigquery segment insert failed for analysis '%s': %w", result.Id, err))
			return
		}
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(cor.CtxOut, result)
	log.Printf("persisted analysis %s (%d segments)", result.Id, len(result.Segments))
}
